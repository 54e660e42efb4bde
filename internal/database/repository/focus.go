package repository

import (
	"context"

	"github.com/jask/kairo/internal/kv"
)

// FocusRepo handles the accumulated focus minutes.
type FocusRepo struct {
	store kv.Store
}

func NewFocusRepo(store kv.Store) *FocusRepo { return &FocusRepo{store: store} }

func (r *FocusRepo) Minutes(ctx context.Context) (int64, error) {
	return loadInt(ctx, r.store, KeyMinutes, 0)
}

func (r *FocusRepo) Entry(minutes int64) Entry { return intEntry(KeyMinutes, minutes) }
