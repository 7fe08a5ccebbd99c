package ports

import (
	"context"

	"dvpr-route-scheduler/internal/domain"
)

// DistanceCache persists origin->destination distance/duration lookups
// so the matrix provider is only called on a miss. Implementations
// back this with SQL (Postgres/sqlite) or layer a Redis tier in front
// of one.
type DistanceCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
	PutMany(ctx context.Context, origin string, results map[string]DistanceResult) error
}

// GeocodeCache persists address->coordinate lookups so the geocode
// provider is only called on a miss.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
