package scheduler

import (
	"math/rand"
	"testing"
)

// S5 — clustering with scope: two close pairs, far apart from each other.
func TestClusterSuppliersTwoPairs(t *testing.T) {
	rs := New(10, DefaultMaxIteration, rand.New(rand.NewSource(0)))

	// entities: order=0, suppliers 1..4, rider 5 (S=4,R=1,m=5)
	// pairs: (1,2) close (dist 5), (3,4) close (dist 5); the two pairs
	// are far apart (dist 200) and far from the order/rider (dist 50).
	req := &Request{
		Items: map[string]float64{"a": 1},
		ItemLists: []map[string]float64{
			{"a": 1}, {"a": 1}, {"a": 1}, {"a": 1},
		},
		NumDeliverer: 1,
		Distance: flatFromPairs(4, 1, map[[2]int]float64{
			{0, 1}: 50, {0, 2}: 50, {0, 3}: 55, {0, 4}: 55,
			{1, 2}: 5, {1, 3}: 200, {1, 4}: 205,
			{2, 3}: 195, {2, 4}: 200,
			{3, 4}: 5,
			{1, 5}: 50, {2, 5}: 50, {3, 5}: 55, {4, 5}: 55,
		}),
	}

	if err := rs.initialize(req); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if len(rs.clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(rs.clusters))
	}

	total := 0
	for _, center := range rs.clusters {
		if len(center.ClusterMembers) != 2 {
			t.Fatalf("expected 2 members per cluster, got %d for center %d", len(center.ClusterMembers), center.ID)
		}
		if len(center.AroundSuppliers) < 1 {
			t.Fatalf("expected center %d to have at least 1 around-supplier", center.ID)
		}
		total += len(center.ClusterMembers)
	}
	if total != 4 {
		t.Fatalf("expected partition to cover all 4 suppliers, got %d", total)
	}
}

// Property 7 — clustering partition: every supplier belongs to exactly
// one cluster center present in rs.clusters, and member counts sum to S.
func TestClusteringPartitionProperty(t *testing.T) {
	rs := New(75, DefaultMaxIteration, rand.New(rand.NewSource(3)))

	req := &Request{
		Items: map[string]float64{"a": 1},
		ItemLists: []map[string]float64{
			{"a": 1}, {"a": 1}, {"a": 1}, {"a": 1}, {"a": 1},
		},
		NumDeliverer: 2,
		Distance:     flatDistanceFixture(5, 2),
	}

	if err := rs.initialize(req); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	centers := make(map[int]bool, len(rs.clusters))
	for _, c := range rs.clusters {
		centers[c.ID] = true
	}

	sum := 0
	for _, center := range rs.clusters {
		sum += len(center.ClusterMembers)
	}
	if sum != len(rs.suppliers) {
		t.Fatalf("sum of cluster members = %d, want %d", sum, len(rs.suppliers))
	}

	for _, s := range rs.suppliers {
		if !s.IsClustered() {
			t.Fatalf("supplier %d was never clustered", s.ID)
		}
		if !centers[s.ClusterCenter.ID] {
			t.Fatalf("supplier %d's center %d is not in rs.clusters", s.ID, s.ClusterCenter.ID)
		}
	}
}

// flatFromPairs builds a flat distance array for s suppliers and r
// riders from a sparse pairwise map (entity ids; 0 = order,
// 1..s = suppliers, s+1..s+r = riders). Missing pairs default to 1000.
func flatFromPairs(s, r int, pairs map[[2]int]float64) []float64 {
	get := func(i, j int) float64 {
		if i > j {
			i, j = j, i
		}
		if d, ok := pairs[[2]int{i, j}]; ok {
			return d
		}
		return 1000
	}

	n := s
	m := s + r
	out := make([]float64, 0, n+n*r+n*(n-1)/2)
	for j := 1; j <= n; j++ {
		out = append(out, get(0, j))
	}
	for i := 1; i < m; i++ {
		for j := i + 1; j <= m; j++ {
			if i <= n {
				out = append(out, get(i, j))
			}
		}
	}
	return out
}
