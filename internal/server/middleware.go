// SPDX-License-Identifier: MPL-2.0

package server

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/emilyeserven/npm-package-guide-sub003/internal/metrics"
)

const (
	// HeaderCorrelationID carries the request's correlation id.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted as an incoming correlation id.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 64
)

type (
	correlationKey struct{}

	// statusRecorder captures the status code and bytes written.
	statusRecorder struct {
		http.ResponseWriter
		status int
		bytes  int
	}
)

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

// CorrelationID returns the correlation id stored on ctx, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// applyMiddleware wraps h with the middleware stack. The last wrapper
// applied runs first.
func applyMiddleware(h http.Handler, s *Server) http.Handler {
	h = rateLimitMiddleware(s.limiter)(h)
	h = loggingMiddleware(s.logger)(h)
	h = instrumentMiddleware(s.metrics)(h)
	h = correlationIDMiddleware(h)
	h = recoveryMiddleware(s.logger)(h)
	return h
}

// recoveryMiddleware turns a handler panic into a 500 response.
func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.ErrorContext(r.Context(), "panic recovered in HTTP handler",
						"panic", fmt.Sprint(rec),
						"path", r.URL.Path,
						"correlation_id", CorrelationID(r.Context()))
					WriteError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// correlationIDMiddleware reuses an incoming request id or generates one,
// echoes it in the response and stores it on the request context.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = r.Header.Get(HeaderCorrelationID)
		}
		if id == "" || len(id) > maxCorrelationIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelationID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), correlationKey{}, id)))
	})
}

// instrumentMiddleware records request counts and latency. The path label
// is the matched route pattern, which keeps label cardinality bounded.
func instrumentMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := routeLabel(r)
			status := strconv.Itoa(rec.status)
			m.RequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			m.RequestDurationSeconds.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// routeLabel returns the mux pattern without its method, or "unmatched".
// The mux records the pattern on the request it was handed.
func routeLabel(r *http.Request) string {
	p := r.Pattern
	if p == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(p, " "); ok {
		return path
	}
	return p
}

// loggingMiddleware logs each request. Successful requests log at debug.
func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			level := slog.LevelDebug
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelInfo
			}
			logger.LogAttrs(r.Context(), level, "HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.Int("status", rec.status),
				slog.Int("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("correlation_id", CorrelationID(r.Context())))
		})
	}
}

// rateLimitMiddleware rejects API requests above the limiter's rate with
// 429. Health checks and metrics scrapes are never limited. A nil limiter
// disables limiting.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == pathHealth || r.URL.Path == pathMetrics {
				next.ServeHTTP(w, r)
				return
			}
			if !limiter.Allow() {
				retry := math.Ceil(1 / float64(limiter.Limit()))
				w.Header().Set("Retry-After", strconv.Itoa(max(int(retry), 1)))
				WriteErrorWithCode(w, http.StatusTooManyRequests, "Too many requests", "rate_limited")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
