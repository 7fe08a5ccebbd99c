package scheduler

import "dvpr-route-scheduler/internal/domain"

// localSearch runs the fixed-iteration stochastic neighbourhood search:
// each iteration mutates a copy of rs.clusters, builds a fresh route
// from it, and keeps it (both as the new best route and as the new
// rs.clusters) iff it strictly improves on cost.
func (rs *RouteScheduler) localSearch(best *domain.Route) *domain.Route {
	for i := 0; i < rs.MaxIteration; i++ {
		mutated := rs.mutateClusters(best)
		sequence := flatten(mutated)
		candidate := rs.buildRoute(sequence)

		if candidate.Cost < best.Cost {
			best = candidate
			rs.clusters = mutated
		}
	}
	return best
}

// mutateClusters produces one neighbourhood move. With
// probability 0.5 it swaps two cluster positions; otherwise it
// reorders one cluster's members in place. k is the number of
// distinct clusters that contributed to the current best route,
// biasing moves toward clusters that matter.
func (rs *RouteScheduler) mutateClusters(best *domain.Route) []*domain.Supplier {
	clusters := make([]*domain.Supplier, len(rs.clusters))
	copy(clusters, rs.clusters)

	k := len(best.NumSupplierEachCluster)
	if k == 0 || k > len(clusters) {
		k = len(clusters)
	}

	if rs.RNG.Float64() < 0.5 {
		rs.swapClusterPositions(clusters, k)
	} else {
		rs.reorderIntraCluster(clusters, k)
	}
	return clusters
}

// swapClusterPositions picks c1 uniformly from clusters[0:k]; with
// probability 0.5 picks c2 from clusters[0:k] too, else from
// clusters[k-1:].
func (rs *RouteScheduler) swapClusterPositions(clusters []*domain.Supplier, k int) {
	if len(clusters) < 2 {
		return
	}

	idx1 := rs.RNG.Intn(k)
	var idx2 int
	if rs.RNG.Float64() < 0.5 {
		idx2 = rs.RNG.Intn(k)
	} else {
		tailStart := k - 1
		if tailStart < 0 {
			tailStart = 0
		}
		idx2 = tailStart + rs.RNG.Intn(len(clusters)-tailStart)
	}

	clusters[idx1], clusters[idx2] = clusters[idx2], clusters[idx1]
}

// reorderIntraCluster picks a cluster uniformly from clusters[0:k] and
// either re-sorts its members by priority (probability 0.1) or
// uniformly permutes them (probability 0.9). This mutates the
// cluster's member slice in place even when the iteration is
// ultimately rejected — more exploration on the next iteration.
func (rs *RouteScheduler) reorderIntraCluster(clusters []*domain.Supplier, k int) {
	center := clusters[rs.RNG.Intn(k)]

	if rs.RNG.Float64() < 0.1 {
		rs.sortClusterMembersByPriority(center)
		return
	}

	rs.RNG.Shuffle(len(center.ClusterMembers), func(i, j int) {
		center.ClusterMembers[i], center.ClusterMembers[j] = center.ClusterMembers[j], center.ClusterMembers[i]
	})
}
