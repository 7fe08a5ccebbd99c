// Package assembler turns a catalogue-id-based schedule request into
// the flattened distance array the route scheduler consumes. It
// resolves string-keyed distances for a delivery plan the same way
// the rest of this codebase does: cache-then-provider lookups,
// instrumented with obs.Time, fed concurrently behind a bounded
// semaphore.
package assembler

import (
	"context"
	"dvpr-route-scheduler/internal/platform/obs"
	"dvpr-route-scheduler/internal/ports"
	"dvpr-route-scheduler/internal/scheduler"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// maxConcurrentRows bounds how many origin rows (order + each
// supplier) are fetched from the distance provider at once.
const maxConcurrentRows = 8

// ScheduleRequest is the inbound, catalogue-id-based request the
// transport layer receives: an order (address + requested items) and
// the candidate supplier/rider ids to build a route from.
type ScheduleRequest struct {
	OrderAddress string
	OrderItems   map[string]float64
	SupplierIDs  []int
	RiderIDs     []int
	NumDeliverer int
}

// Assembler resolves a ScheduleRequest's catalogue ids to addresses,
// builds the pairwise distance matrix, and invokes the CORE scheduler.
type Assembler struct {
	Catalogue ports.CatalogueRepository
	Distances ports.DistanceMatrixProvider
}

func New(catalogue ports.CatalogueRepository, distances ports.DistanceMatrixProvider) *Assembler {
	return &Assembler{Catalogue: catalogue, Distances: distances}
}

// Schedule resolves req against the catalogue, assembles the flat
// distance array, and runs it through rs.Schedule.
func (a *Assembler) Schedule(ctx context.Context, rs *scheduler.RouteScheduler, req *ScheduleRequest) (_ *scheduler.Reply, err error) {
	defer obs.Time(ctx, "assembler.Schedule")(&err)

	supplierRecords, err := a.Catalogue.GetSuppliers(ctx, req.SupplierIDs)
	if err != nil {
		return nil, fmt.Errorf("assemble schedule: get suppliers: %w", err)
	}
	riderRecords, err := a.Catalogue.GetRiders(ctx, req.RiderIDs)
	if err != nil {
		return nil, fmt.Errorf("assemble schedule: get riders: %w", err)
	}

	suppliers, err := orderSuppliers(supplierRecords, req.SupplierIDs)
	if err != nil {
		return nil, fmt.Errorf("assemble schedule: %w", err)
	}
	riders, err := orderRiders(riderRecords, req.RiderIDs)
	if err != nil {
		return nil, fmt.Errorf("assemble schedule: %w", err)
	}

	flat, err := a.buildFlatDistances(ctx, req.OrderAddress, suppliers, riders)
	if err != nil {
		return nil, fmt.Errorf("assemble schedule: build distance matrix: %w", err)
	}

	itemLists := make([]map[string]float64, len(suppliers))
	for i, s := range suppliers {
		itemLists[i] = s.Items
	}

	schedulerReq := &scheduler.Request{
		Items:        req.OrderItems,
		ItemLists:    itemLists,
		NumDeliverer: req.NumDeliverer,
		Distance:     flat,
	}

	reply, err := rs.Schedule(schedulerReq)
	if err != nil {
		return nil, fmt.Errorf("assemble schedule: run scheduler: %w", err)
	}

	// The scheduler numbers riders 1..R in request order; callers get
	// the catalogue's external id for the chosen rider instead.
	if reply.DelivererID > 0 && reply.DelivererID <= len(riders) {
		reply.DelivererID = riders[reply.DelivererID-1].ExternalID
	}

	return reply, nil
}

// orderSuppliers rebuilds records in the exact order of ids (SQL IN
// clauses make no ordering guarantee), and fails if any requested id
// was not found in the catalogue.
func orderSuppliers(records []ports.SupplierRecord, ids []int) ([]ports.SupplierRecord, error) {
	byID := make(map[int]ports.SupplierRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	out := make([]ports.SupplierRecord, len(ids))
	for i, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("supplier id %d not found in catalogue", id)
		}
		out[i] = rec
	}
	return out, nil
}

func orderRiders(records []ports.RiderRecord, ids []int) ([]ports.RiderRecord, error) {
	byID := make(map[int]ports.RiderRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	out := make([]ports.RiderRecord, len(ids))
	for i, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("rider id %d not found in catalogue", id)
		}
		out[i] = rec
	}
	return out, nil
}
