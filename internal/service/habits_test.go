package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/kairo/internal/database/repository"
)

func TestHabitsStartFromSeeds(t *testing.T) {
	t.Parallel()
	h := newEngines(t, newTestStore(t)).habits
	require.Equal(t, repository.BuiltinDefaults().Habits, h.List())
	require.Zero(t, h.CompletedCount())
	require.Zero(t, h.DailyProgress())
}

func TestHabitsCreateToggleDelete(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	store := newTestStore(t)
	h := newEngines(t, store).habits

	var verr *ValidationError
	_, err := h.Create(ctx, " \t ")
	require.ErrorAs(t, err, &verr)
	require.Len(t, h.List(), 3)

	walk, err := h.Create(ctx, "Walk the dog")
	require.NoError(t, err)
	require.False(t, walk.Done)
	require.Len(t, h.List(), 4)
	require.Equal(t, walk, h.List()[3])

	walk, err = h.Toggle(ctx, walk.ID)
	require.NoError(t, err)
	require.True(t, walk.Done)
	require.Equal(t, 1, h.CompletedCount())
	require.Equal(t, 25.0, h.DailyProgress())

	walk, err = h.Toggle(ctx, walk.ID)
	require.NoError(t, err)
	require.False(t, walk.Done)

	first := h.List()[0]
	require.NoError(t, h.Delete(ctx, first.ID))
	require.Len(t, h.List(), 3)
	require.ErrorIs(t, h.Delete(ctx, first.ID), ErrNotFound)
	_, err = h.Toggle(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	fresh := &Habits{Repo: repository.NewHabitRepo(store, repository.BuiltinDefaults().Habits), Log: zerolog.Nop()}
	require.NoError(t, fresh.Reload(ctx))
	require.Equal(t, h.List(), fresh.List())
}

func TestHabitsDeletingEverythingStaysEmpty(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	store := newTestStore(t)
	h := newEngines(t, store).habits
	for _, habit := range h.List() {
		require.NoError(t, h.Delete(ctx, habit.ID))
	}
	require.Empty(t, h.List())

	require.NoError(t, h.Reload(ctx))
	require.Empty(t, h.List())
	require.Zero(t, h.DailyProgress())
}
