package middleware

import (
	"context"
	"net/http"

	"github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers"
)

type contextKey string

// OperatorIDKey carries the authenticated operator id through the request
// context.
const OperatorIDKey contextKey = "operatorID"

// Auth requires the X-Operator-ID header on operator-facing routes.
// Verification of the value belongs to the API gateway in front of this
// service; here it only identifies the actor for the audit trail.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operatorID := r.Header.Get("X-Operator-ID")
		if operatorID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "X-Operator-ID header is required")
			return
		}
		ctx := context.WithValue(r.Context(), OperatorIDKey, operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OperatorID extracts the operator id set by Auth. Empty when the route is
// not protected.
func OperatorID(ctx context.Context) string {
	if v, ok := ctx.Value(OperatorIDKey).(string); ok {
		return v
	}
	return ""
}
