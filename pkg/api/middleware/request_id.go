package middleware

import (
	"net/http"
	"sync/atomic"

	"sitesmith/pkg/logger"
)

var requestCounter int64

// RequestID tags every request's context with a monotonically increasing ID
// that the log handler prints on each line.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := atomic.AddInt64(&requestCounter, 1)
		ctx := logger.ContextWithRequestID(r.Context(), id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
