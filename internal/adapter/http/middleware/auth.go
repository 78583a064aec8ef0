package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/infrastructure/auth"
)

// AuthMiddleware verifies the bearer token and attaches the user to the
// request context. The KYC tier travels in the claims so downstream
// checks never need an extra lookup for the common case.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(jwtManager, r)
			if !ok {
				http.Error(w, "invalid or missing authorization", http.StatusUnauthorized)
				return
			}

			ctx := domain.ContextWithUser(r.Context(), userFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the user if a valid token is present but never
// rejects the request.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := verifyRequest(jwtManager, r); ok {
				ctx := domain.ContextWithUser(r.Context(), userFromClaims(claims))
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts the authenticated user from context.
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	return domain.UserFromContext(ctx)
}

func verifyRequest(jwtManager *auth.JWTManager, r *http.Request) (*auth.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := jwtManager.Verify(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

func userFromClaims(claims *auth.Claims) *domain.User {
	return &domain.User{
		ID:      claims.UserID,
		Email:   claims.Email,
		KYCTier: claims.KYCTier,
		Active:  true,
	}
}
