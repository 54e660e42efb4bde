package repository

import (
	"context"

	"github.com/jask/kairo/internal/kv"
)

// TransactionRepo handles the transaction history, newest first.
type TransactionRepo struct {
	store kv.Store
}

func NewTransactionRepo(store kv.Store) *TransactionRepo { return &TransactionRepo{store: store} }

func (r *TransactionRepo) List(ctx context.Context) ([]Transaction, error) {
	var out []Transaction
	if _, err := loadJSON(ctx, r.store, KeyTransactions, &out); err != nil {
		return []Transaction{}, err
	}
	if out == nil {
		out = []Transaction{}
	}
	return out, nil
}

func (r *TransactionRepo) Entry(list []Transaction) (Entry, error) {
	if list == nil {
		list = []Transaction{}
	}
	return jsonEntry(KeyTransactions, list)
}
