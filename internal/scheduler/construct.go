package scheduler

import (
	"sort"

	"dvpr-route-scheduler/internal/domain"
)

// sortClustersByPriority stable-sorts clusters descending by cluster
// priority.
func (rs *RouteScheduler) sortClustersByPriority(clusters []*domain.Supplier) {
	requested := rs.order.Items.Items()
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusterPriority(clusters[i], requested) > clusterPriority(clusters[j], requested)
	})
}

// sortClusterMembersByPriority stable-sorts a single cluster's members
// descending by supplier priority.
func (rs *RouteScheduler) sortClusterMembersByPriority(center *domain.Supplier) {
	requested := rs.order.Items.Items()
	sort.SliceStable(center.ClusterMembers, func(i, j int) bool {
		return supplierPriority(center.ClusterMembers[i], requested) > supplierPriority(center.ClusterMembers[j], requested)
	})
}

// flatten concatenates each cluster's current member order into one
// visiting sequence, cluster-by-cluster, WITHOUT re-sorting members —
// local search reuses whatever member order the current mutated
// cluster state happens to hold.
func flatten(clusters []*domain.Supplier) []*domain.Supplier {
	sequence := make([]*domain.Supplier, 0, len(clusters))
	for _, center := range clusters {
		sequence = append(sequence, center.ClusterMembers...)
	}
	return sequence
}

// buildRoute materialises a route from a ranked supplier sequence:
// assign the nearest rider of the first supplier, then greedily add
// suppliers in order.
func (rs *RouteScheduler) buildRoute(sequence []*domain.Supplier) *domain.Route {
	route := domain.NewRoute(rs.order)
	if len(sequence) == 0 {
		route.Cost = rs.evaluateRoute(route)
		return route
	}

	route.SetRider(sequence[0].NearestRider())
	for _, s := range sequence {
		route.AddSupplier(s)
	}
	route.Cost = rs.evaluateRoute(route)
	return route
}

// greedyConstruct builds the initial route: sort clusters by priority,
// sort each cluster's members by priority, flatten, then build. The
// sorted cluster order becomes rs.clusters, carried forward as the
// starting point for local search.
func (rs *RouteScheduler) greedyConstruct() *domain.Route {
	rs.sortClustersByPriority(rs.clusters)
	for _, center := range rs.clusters {
		rs.sortClusterMembersByPriority(center)
	}
	sequence := flatten(rs.clusters)
	return rs.buildRoute(sequence)
}
