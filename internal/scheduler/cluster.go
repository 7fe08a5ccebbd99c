package scheduler

import (
	"sort"

	"dvpr-route-scheduler/internal/domain"
)

// clusterSuppliers runs the greedy most-connected-seed cover: pop the
// most-connected remaining supplier, promote it to a cluster center,
// re-home anything in its around-set that is now closer, then drop its
// whole around-set from further consideration regardless of whether a
// re-home actually happened.
func (rs *RouteScheduler) clusterSuppliers() []*domain.Supplier {
	remaining := make([]*domain.Supplier, len(rs.suppliers))
	copy(remaining, rs.suppliers)

	// Stable sort descending by |aroundSuppliers|, ties broken by
	// insertion (ascending id) order.
	sort.SliceStable(remaining, func(i, j int) bool {
		return len(remaining[i].AroundSuppliers) > len(remaining[j].AroundSuppliers)
	})

	inRemaining := make(map[int]bool, len(remaining))
	for _, s := range remaining {
		inRemaining[s.ID] = true
	}

	var clusters []*domain.Supplier
	for len(remaining) > 0 {
		center := remaining[0]
		remaining = remaining[1:]
		inRemaining[center.ID] = false

		center.SetCenter()
		clusters = append(clusters, center)

		for _, s := range center.AroundSuppliers {
			s.UpdateClusterIfCloser(center, rs.dist(s.ID, center.ID))
		}

		// Drop every member of the around-set from remaining, whether
		// or not it was actually re-homed.
		if len(center.AroundSuppliers) > 0 {
			drop := make(map[int]bool, len(center.AroundSuppliers))
			for _, s := range center.AroundSuppliers {
				drop[s.ID] = true
			}
			filtered := remaining[:0]
			for _, s := range remaining {
				if drop[s.ID] {
					continue
				}
				filtered = append(filtered, s)
			}
			remaining = filtered
		}
	}

	return clusters
}
