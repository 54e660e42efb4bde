package repository

import (
	"context"

	"github.com/jask/kairo/internal/kv"
)

// SkillRepo handles the skill list. An absent key yields the seeded default.
type SkillRepo struct {
	store    kv.Store
	defaults []Skill
}

func NewSkillRepo(store kv.Store, defaults []Skill) *SkillRepo {
	return &SkillRepo{store: store, defaults: defaults}
}

func (r *SkillRepo) List(ctx context.Context) ([]Skill, error) {
	var out []Skill
	found, err := loadJSON(ctx, r.store, KeySkills, &out)
	if err != nil || !found {
		return r.Defaults(), err
	}
	if out == nil {
		out = []Skill{}
	}
	return out, nil
}

func (r *SkillRepo) Defaults() []Skill {
	return append([]Skill{}, r.defaults...)
}

func (r *SkillRepo) Entry(list []Skill) (Entry, error) {
	if list == nil {
		list = []Skill{}
	}
	return jsonEntry(KeySkills, list)
}
