package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/money"
)

// Habits manages the daily habit checklist. Done flags are never reset
// automatically.
type Habits struct {
	Repo *repository.HabitRepo
	Log  zerolog.Logger

	list   []repository.Habit
	loaded bool
}

// Reload reads the habit list; an unreadable list falls back to the seeds.
func (h *Habits) Reload(ctx context.Context) error {
	list, err := h.Repo.List(ctx)
	h.list = list
	h.loaded = true
	if err != nil {
		return warnRead(h.Log, repository.KeyHabits, err)
	}
	return nil
}

func (h *Habits) ensureLoaded(ctx context.Context) {
	if !h.loaded {
		_ = h.Reload(ctx)
	}
}

func (h *Habits) List() []repository.Habit {
	return append([]repository.Habit{}, h.list...)
}

// Create appends a new, undone habit.
func (h *Habits) Create(ctx context.Context, text string) (repository.Habit, error) {
	text, err := RequireText("text", text)
	if err != nil {
		return repository.Habit{}, err
	}
	h.ensureLoaded(ctx)
	habit := repository.Habit{ID: uuid.NewString(), Text: text}
	h.list = append(h.list, habit)
	h.commit(ctx, "create habit")
	return habit, nil
}

// Toggle flips the done flag and returns the updated habit.
func (h *Habits) Toggle(ctx context.Context, id string) (repository.Habit, error) {
	h.ensureLoaded(ctx)
	i := h.index(id)
	if i < 0 {
		return repository.Habit{}, notFound("habit", id)
	}
	h.list[i].Done = !h.list[i].Done
	h.commit(ctx, "toggle habit")
	return h.list[i], nil
}

func (h *Habits) Delete(ctx context.Context, id string) error {
	h.ensureLoaded(ctx)
	i := h.index(id)
	if i < 0 {
		return notFound("habit", id)
	}
	h.list = append(h.list[:i:i], h.list[i+1:]...)
	h.commit(ctx, "delete habit")
	return nil
}

func (h *Habits) CompletedCount() int { return countDone(h.list) }

// DailyProgress is the done share of all habits as a percentage.
func (h *Habits) DailyProgress() float64 {
	return money.Percent(int64(h.CompletedCount()), int64(len(h.list)))
}

func (h *Habits) commit(ctx context.Context, op string) {
	if err := h.Repo.Replace(ctx, h.list); err != nil {
		h.Log.Warn().Err(err).Str("op", op).Msg("habit write failed")
		return
	}
	h.Log.Debug().Str("op", op).Int("habits", len(h.list)).Msg("habits saved")
}

func (h *Habits) index(id string) int {
	for i, habit := range h.list {
		if habit.ID == id {
			return i
		}
	}
	return -1
}
