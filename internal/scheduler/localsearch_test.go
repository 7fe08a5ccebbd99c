package scheduler

import (
	"math/rand"
	"testing"
)

// suboptimalGreedyRequest builds an instance where the priority-ranked
// greedy order visits the two suppliers in the costlier direction: S1
// stocks more of the requested item (so it outranks S2 on priority)
// but sits far from the rider while S2 sits close to it, so visiting
// S2 first is far cheaper. Both suppliers are required to cover
// demand, so the route always includes both regardless of order.
func suboptimalGreedyRequest() *Request {
	return &Request{
		Items: map[string]float64{"a": 6},
		ItemLists: []map[string]float64{
			{"a": 5},
			{"a": 1},
		},
		NumDeliverer: 1,
		// order=0, supplier1=1, supplier2=2, rider=3 (S=2,R=1,m=3)
		// layout: [d(0,1), d(0,2), d(1,2), d(1,3), d(2,3)]
		Distance: []float64{1, 100, 50, 100, 1},
	}
}

// S6 — local search must strictly improve on a greedy order that the
// priority heuristic gets wrong.
func TestLocalSearchImprovesOnSuboptimalGreedy(t *testing.T) {
	rs := New(0.5, 50, rand.New(rand.NewSource(1)))
	req := suboptimalGreedyRequest()

	if err := rs.initialize(req); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	greedy := rs.greedyConstruct()
	if greedy.Cost != 250 {
		t.Fatalf("greedy cost = %v, want 250 (S1 then S2)", greedy.Cost)
	}

	improved := rs.localSearch(greedy)
	if !(improved.Cost < greedy.Cost) {
		t.Fatalf("local search did not improve: greedy=%v, improved=%v", greedy.Cost, improved.Cost)
	}
	if improved.Cost != 52 {
		t.Fatalf("improved cost = %v, want 52 (S2 then S1)", improved.Cost)
	}
}

// Property 5 — improvement monotonicity: across local-search
// iterations, the running best cost never increases.
func TestLocalSearchCostNonIncreasing(t *testing.T) {
	rs := New(0.5, 50, rand.New(rand.NewSource(2)))
	req := suboptimalGreedyRequest()

	if err := rs.initialize(req); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	best := rs.greedyConstruct()
	prevCost := best.Cost

	for i := 0; i < rs.MaxIteration; i++ {
		mutated := rs.mutateClusters(best)
		sequence := flatten(mutated)
		candidate := rs.buildRoute(sequence)

		if candidate.Cost < best.Cost {
			best = candidate
			rs.clusters = mutated
		}

		if best.Cost > prevCost {
			t.Fatalf("iteration %d: best cost increased from %v to %v", i, prevCost, best.Cost)
		}
		prevCost = best.Cost
	}
}
