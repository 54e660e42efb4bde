package repository

import (
	"context"

	"github.com/jask/kairo/internal/kv"
)

// HabitRepo handles the habit list. An absent key yields the seeded defaults.
type HabitRepo struct {
	store    kv.Store
	defaults []Habit
}

func NewHabitRepo(store kv.Store, defaults []Habit) *HabitRepo {
	return &HabitRepo{store: store, defaults: defaults}
}

func (r *HabitRepo) List(ctx context.Context) ([]Habit, error) {
	var out []Habit
	found, err := loadJSON(ctx, r.store, KeyHabits, &out)
	if err != nil || !found {
		return r.Defaults(), err
	}
	if out == nil {
		out = []Habit{}
	}
	return out, nil
}

// Defaults returns a copy of the seeded habits.
func (r *HabitRepo) Defaults() []Habit {
	return append([]Habit{}, r.defaults...)
}

func (r *HabitRepo) Entry(list []Habit) (Entry, error) {
	if list == nil {
		list = []Habit{}
	}
	return jsonEntry(KeyHabits, list)
}

func (r *HabitRepo) Replace(ctx context.Context, list []Habit) error {
	e, err := r.Entry(list)
	if err != nil {
		return err
	}
	return Save(ctx, r.store, e)
}
