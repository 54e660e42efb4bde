package testdata

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/kv"
	"github.com/jask/kairo/internal/service"
)

func newEngines(store kv.Store) Engines {
	d := repository.BuiltinDefaults()
	return Engines{
		Ledger:      service.NewLedger(store, zerolog.Nop()),
		Habits:      &service.Habits{Repo: repository.NewHabitRepo(store, d.Habits), Log: zerolog.Nop()},
		Progression: service.NewProgression(store, d, zerolog.Nop()),
	}
}

func TestSeedKeepsLedgerConsistent(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	e := newEngines(kv.NewMemoryStore())

	res, err := Seed(ctx, e, 42)
	require.NoError(t, err)
	require.Equal(t, 2, res.Goals)
	require.Equal(t, 3, res.Sessions)
	require.Len(t, e.Ledger.History(), res.Transactions)

	var sum int64
	for _, tx := range e.Ledger.History() {
		sum += tx.WalletDelta()
	}
	require.Equal(t, sum, e.Ledger.Balance())
	require.GreaterOrEqual(t, e.Ledger.Balance(), int64(0))
	require.Equal(t, int64(75), e.Progression.Minutes())

	sel, ok := e.Progression.Selected()
	require.True(t, ok)
	require.Equal(t, "Golang", sel.Name)
	require.Equal(t, 2, sel.Level)
}

func TestSeedIsDeterministic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a, b := newEngines(kv.NewMemoryStore()), newEngines(kv.NewMemoryStore())
	_, err := Seed(ctx, a, 7)
	require.NoError(t, err)
	_, err = Seed(ctx, b, 7)
	require.NoError(t, err)
	require.Equal(t, a.Ledger.Balance(), b.Ledger.Balance())
	require.Equal(t, a.Habits.CompletedCount(), b.Habits.CompletedCount())
}
