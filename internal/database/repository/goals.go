package repository

import (
	"context"

	"github.com/jask/kairo/internal/kv"
)

// GoalRepo handles savings goals.
type GoalRepo struct {
	store kv.Store
}

func NewGoalRepo(store kv.Store) *GoalRepo { return &GoalRepo{store: store} }

func (r *GoalRepo) List(ctx context.Context) ([]Goal, error) {
	var out []Goal
	if _, err := loadJSON(ctx, r.store, KeyGoals, &out); err != nil {
		return []Goal{}, err
	}
	if out == nil {
		out = []Goal{}
	}
	return out, nil
}

func (r *GoalRepo) Entry(list []Goal) (Entry, error) {
	if list == nil {
		list = []Goal{}
	}
	return jsonEntry(KeyGoals, list)
}
