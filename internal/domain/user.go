package domain

import (
	"context"
	"errors"
	"time"
)

// User represents an account holder.
type User struct {
	ID        string
	Email     string
	Name      string
	KYCTier   KYCTier
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
}

// KYCTier is the verification level gating transaction limits.
type KYCTier string

const (
	// TierBasic has identity verified by phone only.
	TierBasic KYCTier = "basic"

	// TierVerified has a government ID on file.
	TierVerified KYCTier = "verified"

	// TierPremium has full address and income verification.
	TierPremium KYCTier = "premium"
)

var validTiers = map[KYCTier]bool{
	TierBasic:    true,
	TierVerified: true,
	TierPremium:  true,
}

// IsValid checks if the tier is a known tier.
func (t KYCTier) IsValid() bool {
	return validTiers[t]
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type contextKey string

const userContextKey contextKey = "user"

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}
