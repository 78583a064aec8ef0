package domain

import "time"

// Wallet holds a user's spendable balance. Credits and debits are applied
// atomically at the repository layer, never read-modify-write in use cases.
type Wallet struct {
	UserID    string
	Balance   Money
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
