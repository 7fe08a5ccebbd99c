package domain

import "math"

// RiderDistance pairs a rider with its distance from a given supplier,
// used for Supplier.AroundRiders.
type RiderDistance struct {
	Rider    *Rider
	Distance float64
}

// Supplier is a candidate merchant carrying a partial inventory.
// Identity is 1..S.
//
// Cluster membership is unassigned until the clusterer runs:
// ClusterCenter is nil while unassigned, equals the supplier itself
// once it becomes a center, or points at another supplier once it is
// re-homed as a member. Suppliers are held in an arena (a single slice
// owned by the scheduler) and referenced by pointer rather than
// copied, so re-homing a member just repoints ClusterCenter without
// touching any other supplier's data.
type Supplier struct {
	ID    int
	Items ItemDemand

	DistanceToOrder float64

	AroundSuppliers []*Supplier
	AroundRiders    []RiderDistance

	ClusterCenter           *Supplier
	DistanceToClusterCenter float64

	// ClusterMembers and ClusterItems are only meaningful when this
	// supplier IS a cluster center (ClusterCenter == self).
	ClusterMembers []*Supplier
	ClusterItems   ItemDemand
}

// NewSupplier builds a Supplier, stripping non-positive item quantities.
func NewSupplier(id int, items map[string]float64) *Supplier {
	return &Supplier{
		ID:                      id,
		Items:                   NewItemDemand(items),
		DistanceToClusterCenter: math.Inf(1),
	}
}

// IsClustered reports whether this supplier has been assigned a
// cluster center (it always will be, post-clusterer).
func (s *Supplier) IsClustered() bool {
	return s.ClusterCenter != nil
}

// IsCenter reports whether this supplier is itself a cluster center.
func (s *Supplier) IsCenter() bool {
	return s.ClusterCenter == s
}

// SetCenter promotes this supplier to a cluster center: it becomes its
// own member, seeded with its own inventory.
func (s *Supplier) SetCenter() {
	s.ClusterCenter = s
	s.DistanceToClusterCenter = 0
	s.ClusterItems = s.Items.Clone()
	s.addClusterMember(s)
}

// SetCluster re-homes this supplier under center at the given distance,
// registering it on the center's member list and rolling its
// inventory into the center's ClusterItems.
func (s *Supplier) SetCluster(center *Supplier, distance float64) {
	s.ClusterCenter = center
	s.DistanceToClusterCenter = distance
	center.addClusterMember(s)
	if center.ClusterItems == nil {
		center.ClusterItems = make(ItemDemand)
	}
	center.ClusterItems.Add(s.Items)
}

// UpdateClusterIfCloser re-homes this supplier to center iff distance
// is strictly smaller than its current distance to its cluster center.
func (s *Supplier) UpdateClusterIfCloser(center *Supplier, distance float64) {
	if distance >= s.DistanceToClusterCenter {
		return
	}
	if s.ClusterCenter != nil {
		s.ClusterCenter.removeClusterMember(s)
		s.ClusterCenter.ClusterItems.Subtract(s.Items)
	}
	s.SetCluster(center, distance)
}

func (s *Supplier) addClusterMember(member *Supplier) {
	s.ClusterMembers = append(s.ClusterMembers, member)
}

func (s *Supplier) removeClusterMember(member *Supplier) {
	for i, m := range s.ClusterMembers {
		if m == member {
			s.ClusterMembers = append(s.ClusterMembers[:i], s.ClusterMembers[i+1:]...)
			return
		}
	}
}

// NearestRider returns the rider in AroundRiders with the smallest
// distance, or nil if AroundRiders is empty.
func (s *Supplier) NearestRider() *Rider {
	if len(s.AroundRiders) == 0 {
		return nil
	}
	best := s.AroundRiders[0]
	for _, rd := range s.AroundRiders[1:] {
		if rd.Distance < best.Distance {
			best = rd
		}
	}
	return best.Rider
}

// NearestRiderDistance returns the distance to NearestRider, or +Inf
// if AroundRiders is empty.
func (s *Supplier) NearestRiderDistance() float64 {
	if len(s.AroundRiders) == 0 {
		return math.Inf(1)
	}
	best := s.AroundRiders[0].Distance
	for _, rd := range s.AroundRiders[1:] {
		if rd.Distance < best {
			best = rd.Distance
		}
	}
	return best
}
