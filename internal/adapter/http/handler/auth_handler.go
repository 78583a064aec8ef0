package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sproutfi/stash/internal/domain"
	"github.com/sproutfi/stash/internal/infrastructure/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// UserInfo represents user information
type UserInfo struct {
	ID      string         `json:"id"`
	Email   string         `json:"email"`
	KYCTier domain.KYCTier `json:"kyc_tier"`
}

// demoUsers are hardcoded accounts for local development, one per KYC
// tier. Real deployments front this service with the identity platform
// and never hit this endpoint.
var demoUsers = map[string]struct {
	password string
	user     domain.User
}{
	"basic@sproutfi.dev": {
		password: "basic123",
		user: domain.User{
			ID:      "user-basic-1",
			Email:   "basic@sproutfi.dev",
			Name:    "Basic Saver",
			KYCTier: domain.TierBasic,
			Active:  true,
		},
	},
	"verified@sproutfi.dev": {
		password: "verified123",
		user: domain.User{
			ID:      "user-verified-1",
			Email:   "verified@sproutfi.dev",
			Name:    "Verified Saver",
			KYCTier: domain.TierVerified,
			Active:  true,
		},
	},
	"premium@sproutfi.dev": {
		password: "premium123",
		user: domain.User{
			ID:      "user-premium-1",
			Email:   "premium@sproutfi.dev",
			Name:    "Premium Saver",
			KYCTier: domain.TierPremium,
			Active:  true,
		},
	},
}

// Login handles user login (simplified - no password hashing for demo)
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, ok := demoUsers[req.Email]
	if !ok || entry.password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	user := entry.user
	token, err := h.jwtManager.Generate(&user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User: UserInfo{
			ID:      user.ID,
			Email:   user.Email,
			KYCTier: user.KYCTier,
		},
	})
}

// GetCurrentUser returns the current authenticated user
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, UserInfo{
		ID:      user.ID,
		Email:   user.Email,
		KYCTier: user.KYCTier,
	})
}
