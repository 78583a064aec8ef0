// Package gateway provides payment gateway adapters behind
// usecase.PaymentGateway.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sproutfi/stash/internal/usecase"
)

// ErrPayoutRejected is returned when the sandbox is configured to fail.
var ErrPayoutRejected = errors.New("payout rejected by gateway")

// Sandbox is an in-process PaymentGateway for development and tests. It
// accepts every payout unless FailNext or FailAll is set, and remembers
// processed references so duplicate submissions are visible.
type Sandbox struct {
	mu       sync.Mutex
	seen     map[string]bool
	failNext bool
	failAll  bool
	counter  int
	logger   zerolog.Logger
}

// NewSandbox creates a new sandbox gateway.
func NewSandbox(logger zerolog.Logger) *Sandbox {
	return &Sandbox{
		seen:   make(map[string]bool),
		logger: logger,
	}
}

// FailNext makes the next payout fail.
func (s *Sandbox) FailNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

// FailAll makes every payout fail until cleared.
func (s *Sandbox) FailAll(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = fail
}

// ProcessPayment acknowledges the payout. Re-submitting a reference returns
// the original acknowledgement instead of paying twice.
func (s *Sandbox) ProcessPayment(ctx context.Context, input usecase.ProcessPaymentInput) (*usecase.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll || s.failNext {
		s.failNext = false
		return nil, fmt.Errorf("%w: reference %s", ErrPayoutRejected, input.Reference)
	}

	if s.seen[input.Reference] {
		s.logger.Warn().Str("reference", input.Reference).Msg("duplicate payout reference, returning prior acknowledgement")
		return &usecase.PaymentResult{
			GatewayReference: "sbx-" + input.Reference,
			Status:           "duplicate",
		}, nil
	}

	s.seen[input.Reference] = true
	s.counter++

	s.logger.Info().
		Str("reference", input.Reference).
		Str("bank_account_id", input.BankAccountID).
		Str("amount", input.Amount.String()).
		Msg("sandbox payout accepted")

	return &usecase.PaymentResult{
		GatewayReference: "sbx-" + input.Reference,
		Status:           "accepted",
	}, nil
}
