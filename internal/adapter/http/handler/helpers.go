package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sproutfi/stash/internal/adapter/http/dto"
	"github.com/sproutfi/stash/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var (
		limitErr      *domain.WithdrawalLimitExceededError
		minBalanceErr *domain.MinimumBalanceViolationError
		conflictErr   *domain.ConcurrentWithdrawalError
		notAllowed    *domain.WithdrawalNotAllowedError
		compliance    *domain.ComplianceError
	)

	switch {
	case errors.Is(err, domain.ErrPlanNotFound),
		errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrWithdrawalNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPlanNotOwned):
		return http.StatusForbidden
	case errors.As(err, &compliance):
		return http.StatusForbidden
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &limitErr):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWithdrawalNotEligible),
		errors.Is(err, domain.ErrInvalidPlanTransition),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.As(err, &minBalanceErr), errors.As(err, &notAllowed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// requestUserID resolves the acting user. The auth middleware puts the
// authenticated user on the context; when auth is disabled the X-User-ID
// header stands in so the API stays exercisable in development.
func requestUserID(r *http.Request) (string, bool) {
	if user, ok := domain.UserFromContext(r.Context()); ok {
		return user.ID, true
	}
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id, true
	}
	return "", false
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
