package handler

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/eventsplanner/events-api/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. metrics and
// limiter may be nil.
func RegisterRoutes(mux *http.ServeMux, schema *graphql.Schema, store Pinger, metrics *Metrics, limiter *service.RateLimiter) {
	gql := RateLimit(limiter, NewGraphQLHandler(schema, metrics))

	mux.Handle("/graphql", metrics.Instrument("/graphql", gql))
	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /readyz", metrics.Instrument("/readyz", HandleReadyz(store)))
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
}
