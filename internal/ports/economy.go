package ports

import "context"

// WalletUpdate represents a single currency change for a user.
type WalletUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// EconomyPort credits and reads player gold.
type EconomyPort interface {
	// GetBalance retrieves the current gold balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalances applies wallet changes in order, skipping zero amounts.
	// Capture rewards are paid through this call.
	UpdateBalances(ctx context.Context, updates []WalletUpdate) error
}
