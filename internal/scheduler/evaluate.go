package scheduler

import (
	"math"

	"dvpr-route-scheduler/internal/domain"
)

// evaluateRoute computes total travel distance along
// rider -> supplier₁ -> ... -> supplier_k -> order.
// An empty supplier sequence costs +∞.
func (rs *RouteScheduler) evaluateRoute(route *domain.Route) float64 {
	if len(route.Suppliers) == 0 {
		return math.Inf(1)
	}

	total := rs.dist(route.Rider.ID, route.Suppliers[0].ID)
	for i := 0; i < len(route.Suppliers)-1; i++ {
		total += rs.dist(route.Suppliers[i].ID, route.Suppliers[i+1].ID)
	}
	total += rs.dist(route.Suppliers[len(route.Suppliers)-1].ID, rs.order.ID)
	return total
}
