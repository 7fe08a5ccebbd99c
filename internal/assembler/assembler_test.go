package assembler

import (
	"context"
	"dvpr-route-scheduler/internal/ports"
	"dvpr-route-scheduler/internal/scheduler"
	"math/rand"
	"testing"
)

type fakeCatalogue struct {
	suppliers map[int]ports.SupplierRecord
	riders    map[int]ports.RiderRecord
}

func (f *fakeCatalogue) GetSuppliers(ctx context.Context, ids []int) ([]ports.SupplierRecord, error) {
	out := make([]ports.SupplierRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.suppliers[id])
	}
	return out, nil
}

func (f *fakeCatalogue) GetRiders(ctx context.Context, ids []int) ([]ports.RiderRecord, error) {
	out := make([]ports.RiderRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.riders[id])
	}
	return out, nil
}

// fakeMatrixProvider answers GetDistances from a fixed origin->dest
// meter table, keyed by address strings, so buildFlatDistances can be
// exercised without any network access.
type fakeMatrixProvider struct {
	meters map[[2]string]int
}

func (f *fakeMatrixProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	return ports.DistanceResult{DistanceMeters: f.meters[[2]string{origin, destination}]}, nil
}

func (f *fakeMatrixProvider) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		out[d] = ports.DistanceResult{DistanceMeters: f.meters[[2]string{origin, d}]}
	}
	return out, nil
}

func TestAssemblerScheduleEndToEnd(t *testing.T) {
	catalogue := &fakeCatalogue{
		suppliers: map[int]ports.SupplierRecord{
			1: {ID: 1, Address: "supplier-1", Items: map[string]float64{"a": 2}},
		},
		riders: map[int]ports.RiderRecord{
			1: {ID: 1, ExternalID: 7, Address: "rider-1"},
		},
	}
	matrix := &fakeMatrixProvider{meters: map[[2]string]int{
		{"order", "supplier-1"}:    3,
		{"supplier-1", "rider-1"}: 5,
	}}

	a := New(catalogue, matrix)
	rs := scheduler.New(scheduler.DefaultAroundScope, scheduler.DefaultMaxIteration, rand.New(rand.NewSource(0)))

	req := &ScheduleRequest{
		OrderAddress: "order",
		OrderItems:   map[string]float64{"a": 1},
		SupplierIDs:  []int{1},
		RiderIDs:     []int{1},
		NumDeliverer: 1,
	}

	reply, err := a.Schedule(context.Background(), rs, req)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if reply.DelivererID != 7 {
		t.Fatalf("deliverer_id = %d, want 7", reply.DelivererID)
	}
	if len(reply.Route) != 1 || reply.Route[0].SupplierID != 1 {
		t.Fatalf("unexpected route: %+v", reply.Route)
	}
}

func TestAssemblerUnknownSupplierIDErrors(t *testing.T) {
	catalogue := &fakeCatalogue{
		suppliers: map[int]ports.SupplierRecord{},
		riders:    map[int]ports.RiderRecord{1: {ID: 1, ExternalID: 1, Address: "rider-1"}},
	}
	a := New(catalogue, &fakeMatrixProvider{meters: map[[2]string]int{}})
	rs := scheduler.New(scheduler.DefaultAroundScope, scheduler.DefaultMaxIteration, rand.New(rand.NewSource(0)))

	req := &ScheduleRequest{
		OrderAddress: "order",
		OrderItems:   map[string]float64{"a": 1},
		SupplierIDs:  []int{99},
		RiderIDs:     []int{1},
		NumDeliverer: 1,
	}

	if _, err := a.Schedule(context.Background(), rs, req); err == nil {
		t.Fatal("expected an error for an unknown supplier id")
	}
}
