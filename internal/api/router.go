package api

import (
	"dvpr-route-scheduler/internal/api/handlers"
	"dvpr-route-scheduler/internal/assembler"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// distanceCacheStats may be nil; when set, its counters are reported on /health.
func NewRouter(asm *assembler.Assembler, aroundScope float64, maxIteration int, distanceCacheStats func() handlers.CacheStats) http.Handler {
	mux := http.NewServeMux()

	scheduleHandler := &handlers.ScheduleHandler{
		Assembler:    asm,
		AroundScope:  aroundScope,
		MaxIteration: maxIteration,
	}
	healthHandler := &handlers.HealthHandler{DistanceCacheStats: distanceCacheStats}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/schedule", scheduleHandler.Schedule)

	return loggingMiddleware(mux)
}
