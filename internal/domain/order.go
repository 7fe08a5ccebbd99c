package domain

// Order is the demand to be fulfilled. Its identity is always 0.
type Order struct {
	ID    int
	Items ItemDemand
}

// NewOrder builds an Order, stripping non-positive item quantities.
func NewOrder(items map[string]float64) *Order {
	return &Order{ID: 0, Items: NewItemDemand(items)}
}
