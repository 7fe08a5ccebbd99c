// Package scheduler implements the DVPR route scheduler: spatial
// clustering of suppliers, a greedy initial construction, and a
// stochastic local search over cluster/member orderings. It runs
// synchronously, single-threaded per request, with no state surviving
// past one Schedule call.
package scheduler

import (
	"fmt"
	"math/rand"

	"dvpr-route-scheduler/internal/domain"
)

const (
	// DefaultAroundScope is ρ, the neighbourhood radius.
	DefaultAroundScope = 100.0
	// DefaultMaxIteration is the local-search iteration budget.
	DefaultMaxIteration = 100
)

// RouteScheduler computes one delivery plan per Schedule call. A
// RouteScheduler instance is cheap to construct and must not be shared
// across concurrent requests — callers that handle requests on a
// worker pool should build one RouteScheduler per call, or otherwise
// own one per worker.
type RouteScheduler struct {
	AroundScope  float64
	MaxIteration int
	// RNG drives the local-search neighbourhood moves. Inject a seeded
	// *rand.Rand for reproducible runs; New replaces a nil RNG with one
	// seeded with 1.
	RNG *rand.Rand

	order     *domain.Order
	suppliers []*domain.Supplier
	riders    []*domain.Rider
	oracle    *domain.Oracle
	clusters  []*domain.Supplier // cluster centers: promotion order, re-sorted by priority in greedyConstruct
}

// New builds a RouteScheduler with the given scope radius and
// iteration budget. Pass 0 for either to take the package defaults.
func New(aroundScope float64, maxIteration int, rng *rand.Rand) *RouteScheduler {
	if aroundScope == 0 {
		aroundScope = DefaultAroundScope
	}
	if maxIteration == 0 {
		maxIteration = DefaultMaxIteration
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &RouteScheduler{AroundScope: aroundScope, MaxIteration: maxIteration, RNG: rng}
}

// Schedule runs the full control flow — initialize, cluster,
// greedy-construct, local-search, encode-reply — and returns the
// resulting reply. A malformed request (bad distance layout, bad ids)
// is a usage error surfaced to the caller; an infeasible request is a
// well-formed empty reply, never an error.
func (rs *RouteScheduler) Schedule(req *Request) (*Reply, error) {
	if err := rs.initialize(req); err != nil {
		return nil, fmt.Errorf("schedule: initialize: %w", err)
	}

	initial := rs.greedyConstruct()
	if !initial.IsEnoughSuppliers() {
		return encodeReply(domain.NewRoute(rs.order)), nil
	}

	best := rs.localSearch(initial)
	return encodeReply(best), nil
}

func (rs *RouteScheduler) initialize(req *Request) error {
	supplierCount := len(req.ItemLists)
	rs.order = domain.NewOrder(req.Items)

	rs.suppliers = make([]*domain.Supplier, supplierCount)
	for i, items := range req.ItemLists {
		rs.suppliers[i] = domain.NewSupplier(i+1, items)
	}

	rs.riders = make([]*domain.Rider, req.NumDeliverer)
	for i := range rs.riders {
		id := supplierCount + i + 1
		rs.riders[i] = domain.NewRider(id, i+1)
	}

	oracle, err := domain.NewOracle(req.Distance, supplierCount, req.NumDeliverer)
	if err != nil {
		return err
	}
	rs.oracle = oracle

	rs.buildNeighbourhoods()
	rs.clusters = rs.clusterSuppliers()
	return nil
}

// dist is a thin, panic-free wrapper around the oracle for internal
// use — ids passed by the scheduler itself are always in range, so a
// returned error here indicates a scheduler bug, not a request error.
func (rs *RouteScheduler) dist(i, j int) float64 {
	d, err := rs.oracle.Dist(i, j)
	if err != nil {
		panic(fmt.Errorf("scheduler: internal distance lookup (%d, %d): %w", i, j, err))
	}
	return d
}
