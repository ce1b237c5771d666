package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"inventario-api/internal/model"
)

type tokenResolver interface {
	ResolveToken(tokenString string) (int64, error)
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

type AuthMiddleware struct {
	resolver tokenResolver
}

func NewAuthMiddleware(resolver tokenResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireAuth gates a route behind bearer-token resolution. Every failure mode
// (missing header, malformed token, bad signature, expiry) produces the same
// 401 with a re-authentication challenge.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeUnauthorized(w, "missing or invalid authorization header")
			return
		}

		token := strings.TrimSpace(header[7:])
		subjectID, err := m.resolver.ResolveToken(token)
		if err != nil {
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), subjectContextKey, subjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFromContext returns the authenticated user id set by RequireAuth.
func SubjectFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(subjectContextKey).(int64)
	return id, ok
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}
