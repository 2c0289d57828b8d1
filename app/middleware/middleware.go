package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chirper/app/metrics"

	"github.com/gorilla/mux"
)

type contextKey string

const authorIDKey contextKey = "authorID"

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ContentTypeJSON sets the Content-Type header to application/json for API routes
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api") {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthor extracts the caller's author identity. Session and
// token handling belong to the external identity provider; by the time
// a request reaches this service the gateway has verified the session
// and forwards the author id in the X-Author-ID header.
func RequireAuthor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorID := r.Header.Get("X-Author-ID")
		if authorID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAuthorID(r.Context(), authorID)))
	})
}

// WithAuthorID returns a context carrying the author identity. Used by
// RequireAuthor and by tests that bypass it.
func WithAuthorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, authorIDKey, id)
}

// AuthorID returns the author identity attached by RequireAuthor.
func AuthorID(r *http.Request) string {
	id, _ := r.Context().Value(authorIDKey).(string)
	return id
}

// Instrument records request latency per route and status.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		metrics.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
