package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"ludo/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// walletCurrency is the wallet key capture rewards are paid in.
const walletCurrency = "gold"

// NakamaEconomyAdapter implements ports.EconomyPort on top of Nakama wallets.
type NakamaEconomyAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaEconomyAdapter creates a new economy adapter.
func NewNakamaEconomyAdapter(nk runtime.NakamaModule) *NakamaEconomyAdapter {
	return &NakamaEconomyAdapter{nk: nk}
}

// GetBalance returns the user's gold. An empty wallet reads as zero.
func (a *NakamaEconomyAdapter) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account %s: %w", userID, err)
	}
	if account.GetWallet() == "" {
		return 0, nil
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.GetWallet()), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet for %s: %w", userID, err)
	}
	return wallet[walletCurrency], nil
}

// UpdateBalances writes each non-zero change to the ledger, stopping at the first failure.
func (a *NakamaEconomyAdapter) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	for _, update := range updates {
		if update.Amount == 0 {
			continue
		}
		changes := map[string]int64{walletCurrency: update.Amount}
		if _, _, err := a.nk.WalletUpdate(ctx, update.UserID, changes, update.Metadata, true); err != nil {
			return fmt.Errorf("failed to update wallet for user %s: %w", update.UserID, err)
		}
	}
	return nil
}
