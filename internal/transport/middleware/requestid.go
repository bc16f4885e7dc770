package middleware

import (
	"net/http"

	"github.com/mahfuzhasan/officer-registry/internal"
	"github.com/mahfuzhasan/officer-registry/pkg/logger"

	"github.com/google/uuid"
)

// RequestID assigns each request a trace id, stores it in the context
// for audit stamping and logging, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := internal.ContextWithRequestID(r.Context(), traceID)
		ctx = logger.With(ctx, "traceID", traceID)

		// propagate back to response
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
