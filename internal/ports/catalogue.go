package ports

import "context"

// SupplierRecord is a supplier's persisted master data: its address
// (for geocoding) and its full inventory.
type SupplierRecord struct {
	ID      int
	Address string
	Items   map[string]float64
}

// RiderRecord is a candidate deliverer's persisted master data.
// ExternalID is the identifier returned to callers in a schedule
// reply; it may differ from the catalogue's own primary
// key once riders are shared across services.
type RiderRecord struct {
	ID         int
	ExternalID int
	Address    string
}

// CatalogueRepository resolves supplier/rider ids to their persisted
// master data. It is the only way the service layer touches storage
// on the way into a schedule request — the CORE scheduler never sees
// it.
type CatalogueRepository interface {
	GetSuppliers(ctx context.Context, ids []int) ([]SupplierRecord, error)
	GetRiders(ctx context.Context, ids []int) ([]RiderRecord, error)
}
