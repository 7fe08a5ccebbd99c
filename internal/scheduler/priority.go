package scheduler

import (
	"math"

	"dvpr-route-scheduler/internal/domain"
)

// alpha weights the "prosperity" bonus in the priority formula.
const alpha = 0.1

// supplierPriority scores s against the order's requested item set.
// Higher is better; closer, less-crowded, better-stocked suppliers
// rank higher.
func supplierPriority(s *domain.Supplier, requested []string) float64 {
	return priority(s.DistanceToOrder, s.NearestRiderDistance(), len(s.AroundRiders), len(s.AroundSuppliers), s.Items, requested)
}

// clusterPriority scores a cluster by its center's proximity/density
// and its rolled-up ClusterItems. A non-center supplier delegates to
// its center; an unclustered supplier (should not arise post-clusterer)
// falls back to its own supplier priority.
func clusterPriority(s *domain.Supplier, requested []string) float64 {
	if !s.IsClustered() {
		return supplierPriority(s, requested)
	}
	center := s.ClusterCenter
	return priority(center.DistanceToOrder, center.NearestRiderDistance(), len(center.AroundRiders), len(center.AroundSuppliers), center.ClusterItems, requested)
}

func priority(distanceToOrder, distanceToNearestRider float64, aroundRiderCount, aroundSupplierCount int, items domain.ItemDemand, requested []string) float64 {
	p := -distanceToOrder - distanceToNearestRider
	p *= 1 + alpha*math.Exp(-float64(aroundRiderCount)-float64(aroundSupplierCount))

	itemFactor := 0.0
	for _, item := range requested {
		if qty, ok := items[item]; ok {
			itemFactor += 1 + alpha*math.Exp(-qty)
		}
	}
	p *= itemFactor

	return p
}
