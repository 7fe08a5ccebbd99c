package scheduler

// Request is the scheduler's input, stripped of any wire concern —
// assembling one from a transport payload is the service layer's job,
// see internal/assembler.
type Request struct {
	// Items is the order's item demand.
	Items map[string]float64
	// ItemLists carries, in order, each supplier's own inventory:
	// ItemLists[k] is supplier k+1's items.
	ItemLists []map[string]float64
	// NumDeliverer is R, the candidate rider count.
	NumDeliverer int
	// Distance is the flat distance sequence, in the layout domain.Oracle expects.
	Distance []float64
}

// Reply is the CORE's output.
type Reply struct {
	// DelivererID is the chosen rider's external 1-based id, or 0 if
	// no rider was chosen (infeasible request).
	DelivererID int
	Route       []RouteEntry
}

// RouteEntry is one visited supplier with its pick list.
type RouteEntry struct {
	SupplierID int
	Items      map[string]float64
}
