package scheduler

import "dvpr-route-scheduler/internal/domain"

// buildNeighbourhoods populates each supplier's around-set of peer
// suppliers within AroundScope, attaches each rider to its nearest
// supplier's around-riders (scope is not applied to riders), and caches
// distanceToOrder.
func (rs *RouteScheduler) buildNeighbourhoods() {
	for _, s := range rs.suppliers {
		s.DistanceToOrder = rs.dist(s.ID, rs.order.ID)

		for _, other := range rs.suppliers {
			if s.ID == other.ID {
				continue
			}
			if rs.dist(s.ID, other.ID) <= rs.AroundScope {
				s.AroundSuppliers = append(s.AroundSuppliers, other)
			}
		}
	}

	// Attach each rider to its nearest supplier (ties broken by
	// first-seen iteration order — strict "<").
	for _, r := range rs.riders {
		var nearest *domain.Supplier
		nearestDistance := 0.0
		for _, s := range rs.suppliers {
			d := rs.dist(r.ID, s.ID)
			if nearest == nil || d < nearestDistance {
				nearest = s
				nearestDistance = d
			}
		}
		if nearest == nil {
			continue
		}
		r.SetNearestSupplier(nearest, nearestDistance)
		nearest.AroundRiders = append(nearest.AroundRiders, domain.RiderDistance{Rider: r, Distance: nearestDistance})
	}

	// Any supplier left without a nearby rider after the scope pass
	// gets the globally nearest rider as a fallback. The tie-break here
	// is deliberately "<=" rather than "<": preserved from the source
	// algorithm ("latest tied rider wins").
	for _, s := range rs.suppliers {
		if len(s.AroundRiders) > 0 {
			continue
		}
		var nearest *domain.Rider
		nearestDistance := 0.0
		for _, r := range rs.riders {
			d := rs.dist(s.ID, r.ID)
			if nearest == nil || d <= nearestDistance {
				nearest = r
				nearestDistance = d
			}
		}
		if nearest == nil {
			continue
		}
		s.AroundRiders = append(s.AroundRiders, domain.RiderDistance{Rider: nearest, Distance: nearestDistance})
	}
}
