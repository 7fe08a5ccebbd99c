package domain

// Rider is a candidate deliverer. Identity is S+1..S+R; ExternalID is
// the 1-based id surfaced to the transport layer in a reply.
type Rider struct {
	ID         int
	ExternalID int

	NearestSupplier         *Supplier
	NearestSupplierDistance float64
}

// NewRider builds a Rider with its external (1-based) response id.
func NewRider(id, externalID int) *Rider {
	return &Rider{ID: id, ExternalID: externalID}
}

// SetNearestSupplier records the supplier closest to this rider,
// computed once during neighbourhood construction.
func (r *Rider) SetNearestSupplier(s *Supplier, distance float64) {
	r.NearestSupplier = s
	r.NearestSupplierDistance = distance
}
