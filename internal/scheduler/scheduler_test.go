package scheduler

import (
	"math/rand"
	"testing"

	"dvpr-route-scheduler/internal/domain"
)

func newSeeded(seed int64) *RouteScheduler {
	return New(DefaultAroundScope, DefaultMaxIteration, rand.New(rand.NewSource(seed)))
}

// S1 — trivially feasible, single supplier.
func TestScheduleSingleSupplierFeasible(t *testing.T) {
	rs := newSeeded(0)
	req := &Request{
		Items:        map[string]float64{"a": 1},
		ItemLists:    []map[string]float64{{"a": 2}},
		NumDeliverer: 1,
		Distance:     []float64{3, 5}, // order->supplier1=3, supplier1->rider1=5
	}

	reply, err := rs.Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.DelivererID != 1 {
		t.Fatalf("deliverer_id = %d, want 1", reply.DelivererID)
	}
	if len(reply.Route) != 1 {
		t.Fatalf("expected 1 route entry, got %d", len(reply.Route))
	}
	if reply.Route[0].SupplierID != 1 {
		t.Fatalf("expected supplier 1, got %d", reply.Route[0].SupplierID)
	}
	if reply.Route[0].Items["a"] != 1 {
		t.Fatalf("expected pick a=1, got %v", reply.Route[0].Items["a"])
	}
}

// S2 — infeasible: demand exceeds the only supplier's inventory.
func TestScheduleInfeasibleEmptyReply(t *testing.T) {
	rs := newSeeded(0)
	req := &Request{
		Items:        map[string]float64{"a": 3},
		ItemLists:    []map[string]float64{{"a": 2}},
		NumDeliverer: 1,
		Distance:     []float64{3, 5},
	}

	reply, err := rs.Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.DelivererID != 0 {
		t.Fatalf("expected no deliverer, got %d", reply.DelivererID)
	}
	if len(reply.Route) != 0 {
		t.Fatalf("expected empty route, got %d entries", len(reply.Route))
	}
}

// S3 — two suppliers split demand.
func TestScheduleTwoSuppliersSplitDemand(t *testing.T) {
	rs := newSeeded(0)
	// entities: order=0, supplier1=1, supplier2=2, rider=3 (S=2,R=1,m=3)
	// flat layout: order->s1, order->s2, s1->s2, s1->rider, s2->rider
	req := &Request{
		Items: map[string]float64{"a": 3},
		ItemLists: []map[string]float64{
			{"a": 2},
			{"a": 5},
		},
		NumDeliverer: 1,
		Distance:     []float64{10, 12, 3, 4, 2},
	}

	reply, err := rs.Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.Route) == 0 {
		t.Fatalf("expected a feasible route")
	}

	total := 0.0
	for _, entry := range reply.Route {
		qty := entry.Items["a"]
		switch entry.SupplierID {
		case 1:
			if qty > 2 {
				t.Fatalf("supplier 1 over-picked: %v", qty)
			}
		case 2:
			if qty > 5 {
				t.Fatalf("supplier 2 over-picked: %v", qty)
			}
		}
		total += qty
	}
	if total != 3 {
		t.Fatalf("total picked = %v, want 3", total)
	}
}

// S4 — multi-item order, each supplier contributes its single item.
func TestScheduleMultiItemOrder(t *testing.T) {
	rs := newSeeded(0)
	req := &Request{
		Items: map[string]float64{"a": 1, "b": 1},
		ItemLists: []map[string]float64{
			{"a": 1},
			{"b": 1},
		},
		NumDeliverer: 1,
		Distance:     []float64{10, 12, 3, 4, 2},
	}

	reply, err := rs.Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.Route) != 2 {
		t.Fatalf("expected both suppliers visited, got %d", len(reply.Route))
	}

	// Each supplier stocks exactly one of the requested items; its pick
	// list also carries a zero entry for the other one.
	stocked := map[int]string{1: "a", 2: "b"}
	seen := map[int]float64{}
	for _, entry := range reply.Route {
		seen[entry.SupplierID] = entry.Items[stocked[entry.SupplierID]]
	}
	if seen[1] != 1 || seen[2] != 1 {
		t.Fatalf("unexpected pick amounts: %v", seen)
	}
}

// Determinism under a fixed seed (property 4).
func TestScheduleDeterministicUnderFixedSeed(t *testing.T) {
	req := &Request{
		Items: map[string]float64{"a": 2, "b": 1},
		ItemLists: []map[string]float64{
			{"a": 1, "b": 1},
			{"a": 1},
			{"b": 2},
		},
		NumDeliverer: 2,
		Distance:     flatDistanceFixture(3, 2),
	}

	rs1 := newSeeded(42)
	r1, err := rs1.Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rs2 := newSeeded(42)
	r2, err := rs2.Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r1.DelivererID != r2.DelivererID || len(r1.Route) != len(r2.Route) {
		t.Fatalf("replies diverged: %+v vs %+v", r1, r2)
	}
	for i := range r1.Route {
		if r1.Route[i].SupplierID != r2.Route[i].SupplierID {
			t.Fatalf("route order diverged at %d: %+v vs %+v", i, r1.Route, r2.Route)
		}
	}
}

// No over-pick per supplier (property 2) + feasibility consistency
// (property 1), exercised over the S3/S4-style fixture.
func TestSchedulePropertiesFeasibilityAndNoOverPick(t *testing.T) {
	items := []map[string]float64{
		{"a": 2, "b": 1},
		{"a": 1, "b": 3},
		{"a": 4},
	}
	req := &Request{
		Items:        map[string]float64{"a": 3, "b": 2},
		ItemLists:    items,
		NumDeliverer: 2,
		Distance:     flatDistanceFixture(3, 2),
	}

	rs := newSeeded(7)
	reply, err := rs.Schedule(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reply.Route) == 0 {
		t.Fatalf("expected a feasible route")
	}

	totals := map[string]float64{}
	for _, entry := range reply.Route {
		inventory := items[entry.SupplierID-1]
		for item, qty := range entry.Items {
			if qty > inventory[item]+1e-9 {
				t.Fatalf("supplier %d over-picked %s: %v > %v", entry.SupplierID, item, qty, inventory[item])
			}
			totals[item] += qty
		}
	}
	for item, demand := range req.Items {
		if totals[item] != demand {
			t.Fatalf("item %s total picked = %v, want %v", item, totals[item], demand)
		}
	}
}

// flatDistanceFixture builds a valid, arbitrary-but-fixed distance
// array for s suppliers and r riders, using distinct small values so
// ordering is deterministic but not degenerate.
func flatDistanceFixture(s, r int) []float64 {
	n := s
	m := s + r
	length := n + n*r + n*(n-1)/2
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(3 + (i*7)%11)
	}
	_ = m
	return out
}

func TestDistanceSymmetry(t *testing.T) {
	flat := flatDistanceFixture(3, 2)
	oracle, err := domain.NewOracle(flat, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i <= 5; i++ {
		for j := 0; j <= 5; j++ {
			if i == 0 && j > 3 {
				continue // order-to-rider is a usage error, not a valid pair
			}
			if j == 0 && i > 3 {
				continue
			}
			dij, err1 := oracle.Dist(i, j)
			dji, err2 := oracle.Dist(j, i)
			if err1 != nil || err2 != nil {
				continue
			}
			if dij != dji {
				t.Fatalf("dist(%d,%d)=%v != dist(%d,%d)=%v", i, j, dij, j, i, dji)
			}
		}
	}
}
