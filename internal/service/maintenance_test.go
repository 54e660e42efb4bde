package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/kairo/internal/database/repository"
)

func TestMaintenanceResetRestoresDefaults(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	store := newTestStore(t)
	e := newEngines(t, store)

	_, err := e.ledger.RecordIncome(ctx, "Salary", 120000)
	require.NoError(t, err)
	_, err = e.habits.Create(ctx, "Stretch")
	require.NoError(t, err)
	e.progression.CompleteSession(ctx)

	m := &Maintenance{Store: store, Log: zerolog.Nop()}
	require.NoError(t, m.Reset(ctx))

	got, err := store.GetMany(ctx, repository.AllKeys)
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, e.ledger.Reload(ctx))
	require.NoError(t, e.habits.Reload(ctx))
	require.NoError(t, e.progression.Reload(ctx))
	require.Zero(t, e.ledger.Balance())
	require.Empty(t, e.ledger.History())
	require.Equal(t, repository.BuiltinDefaults().Habits, e.habits.List())
	require.Zero(t, e.progression.Minutes())

	p, err := e.progression.Profile(ctx)
	require.NoError(t, err)
	require.Zero(t, p.TotalXP)

	require.Error(t, (&Maintenance{}).Reset(ctx))
}
