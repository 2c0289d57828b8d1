package routes

import (
	"context"
	"net/http"
	"time"

	"chirper/app/controllers"
	"chirper/app/metrics"
	"chirper/app/middleware"
	"chirper/app/repositories"

	"github.com/gorilla/mux"
)

const pingTimeout = 2 * time.Second

// SetupRoutes defines the application's routes and returns a router.
// counters is only used by the health check; pass nil when the counter
// store has no liveness probe.
func SetupRoutes(postController *controllers.PostController, counters repositories.CounterStore) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Instrument)

	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", healthHandler(counters)).Methods("GET")

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.Handle("/post", middleware.RequireAuthor(http.HandlerFunc(postController.Create))).Methods("POST")

	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("/all", postController.ListAll).Methods("GET")
	posts.HandleFunc("/byAuthor/{authorId}", postController.ListByAuthor).Methods("GET")
	posts.HandleFunc("/byId/{id}", postController.Show).Methods("GET")

	return router
}

// healthHandler reports liveness, pinging the counter store when it
// supports that.
func healthHandler(counters repositories.CounterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger, ok := counters.(repositories.Pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				http.Error(w, "counter store unreachable: "+err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
