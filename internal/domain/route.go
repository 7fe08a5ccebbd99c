package domain

import "math"

// Route ties a chosen rider to an ordered sequence of suppliers to
// visit before returning to the order.
type Route struct {
	Order *Order
	Rider *Rider

	Suppliers []*Supplier

	// TotalItems is a cumulative, "optimistic" per-item counter: it is
	// incremented by a supplier's full inventory of an item even when
	// the per-supplier pick list clamps the actual contribution. It is
	// NOT the sum of ItemsForEachSupplier.
	TotalItems ItemDemand

	// ItemsForEachSupplier is the pick list actually attached to the
	// route, keyed by supplier id.
	ItemsForEachSupplier map[int]ItemDemand

	// NumSupplierEachCluster histograms chosen suppliers by their
	// cluster center's id.
	NumSupplierEachCluster map[int]int

	Cost float64
}

// NewRoute builds an empty route awaiting a rider and supplier visits.
func NewRoute(order *Order) *Route {
	return &Route{
		Order:                  order,
		TotalItems:             make(ItemDemand),
		ItemsForEachSupplier:   make(map[int]ItemDemand),
		NumSupplierEachCluster: make(map[int]int),
		Cost:                   math.Inf(1),
	}
}

// SetRider assigns the chosen rider, normally the nearest rider of the
// first supplier in visiting order.
func (r *Route) SetRider(rider *Rider) {
	r.Rider = rider
}

// IsEnoughSuppliers reports whether every requested item's demand has
// been met by TotalItems — the route's feasibility bar. This checks
// against the cumulative full-inventory counter, not the clamped pick
// lists.
func (r *Route) IsEnoughSuppliers() bool {
	for item, qty := range r.Order.Items {
		if r.TotalItems.Get(item) < qty {
			return false
		}
	}
	return true
}

// AddSupplier attempts to add supplier to the route. It early-rejects
// if the route is already feasible. Otherwise it computes a clamped
// pick list per item, unconditionally bumps the optimistic TotalItems
// counter, and only commits the supplier if its pick list sums to
// something positive.
func (r *Route) AddSupplier(s *Supplier) bool {
	if r.IsEnoughSuppliers() {
		return false
	}

	pick := make(ItemDemand, len(r.Order.Items))
	for item, demand := range r.Order.Items {
		have := r.TotalItems.Get(item)
		switch {
		case have > demand:
			pick[item] = 0
		case have+s.Items.Get(item) > demand:
			pick[item] = demand - have
		default:
			pick[item] = s.Items.Get(item)
		}
		r.TotalItems[item] = have + s.Items.Get(item)
	}

	sum := 0.0
	for _, qty := range pick {
		sum += qty
	}
	if sum <= 0 {
		return false
	}

	r.ItemsForEachSupplier[s.ID] = pick
	r.Suppliers = append(r.Suppliers, s)
	if s.ClusterCenter != nil {
		r.NumSupplierEachCluster[s.ClusterCenter.ID]++
	}
	return true
}
