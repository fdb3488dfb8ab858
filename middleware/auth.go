package middleware

import (
	"cfb-trends-go/logging"
	"cfb-trends-go/services"
	"context"
	"net/http"
	"strings"
	"time"
)

// TokenValidator checks admin tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*services.AdminClaims, error)
}

type claimsKey struct{}

// AuthMiddleware handles JWT authentication for admin routes
type AuthMiddleware struct {
	validator TokenValidator
	logger    *logging.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logging.WithPrefix("AuthMiddleware"),
	}
}

// RequireAdmin rejects requests without a valid admin bearer token
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		token := bearerToken(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="cfb-trends"`)
			WriteError(w, r, start, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			m.logger.Warnf("Rejected token for %s %s: %v", r.Method, r.URL.Path, err)
			w.Header().Set("WWW-Authenticate", `Bearer realm="cfb-trends", error="invalid_token"`)
			WriteError(w, r, start, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext retrieves the admin claims stored by RequireAdmin
func GetClaimsFromContext(ctx context.Context) *services.AdminClaims {
	if claims, ok := ctx.Value(claimsKey{}).(*services.AdminClaims); ok {
		return claims
	}
	return nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
