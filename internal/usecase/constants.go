package usecase

import "time"

const (
	// DefaultWithdrawalTimeout bounds the whole withdrawal pipeline. A
	// timeout after side effects falls into the compensation path, never
	// a silent partial state.
	DefaultWithdrawalTimeout = 30 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
