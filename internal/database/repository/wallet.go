package repository

import (
	"context"

	"github.com/jask/kairo/internal/kv"
)

// WalletRepo handles the wallet balance.
type WalletRepo struct {
	store kv.Store
}

func NewWalletRepo(store kv.Store) *WalletRepo { return &WalletRepo{store: store} }

// Balance returns the stored balance, 0 when absent.
func (r *WalletRepo) Balance(ctx context.Context) (int64, error) {
	return loadInt(ctx, r.store, KeyBalance, 0)
}

func (r *WalletRepo) Entry(balance int64) Entry { return intEntry(KeyBalance, balance) }
