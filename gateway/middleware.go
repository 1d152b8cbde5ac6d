package gateway

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tarancss/shipledger/lib/metrics"
)

const requestIDHeader = "X-Request-Id"

type ctxKey int

const requestIDKey ctxKey = 0

// requestID tags every request with an id, taken from the X-Request-Id header when the client sends one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		rw.Header().Set(requestIDHeader, id)
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// reqID returns the id of the request.
func reqID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)

	return id
}

// statusWriter records the status code replied.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// observability counts requests and their duration by route template.
func observability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: rw, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		status := strconv.Itoa(sw.status)
		metrics.HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}
