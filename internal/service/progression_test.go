package service

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/kairo/internal/database/repository"
)

func TestComputeProfile(t *testing.T) {
	t.Parallel()
	p := ComputeProfile(120000, 80, 3)
	require.Equal(t, int64(120), p.XPFromMoney)
	require.Equal(t, int64(150), p.XPFromHabits)
	require.Equal(t, int64(80), p.XPFromMinutes)
	require.Equal(t, int64(350), p.TotalXP)
	require.Equal(t, 1, p.Level)
	require.Equal(t, "Nomad", p.Title)
	require.InDelta(t, 0.35, p.Progress, 1e-9)

	p = ComputeProfile(0, 4999, 2)
	require.Equal(t, int64(5099), p.TotalXP)
	require.Equal(t, 6, p.Level)
	require.Equal(t, "Freelancer", p.Title)

	// money below one XP step and negative inputs contribute nothing
	p = ComputeProfile(999, -10, -1)
	require.Zero(t, p.TotalXP)
	require.Equal(t, 1, p.Level)
}

func TestTitleBoundaries(t *testing.T) {
	t.Parallel()
	cases := map[int]string{
		1:   "Nomad",
		4:   "Nomad",
		5:   "Freelancer",
		9:   "Freelancer",
		10:  "SysAdmin",
		19:  "SysAdmin",
		20:  "Netrunner",
		49:  "Netrunner",
		50:  "Cyber-Lord",
		400: "Cyber-Lord",
	}
	for level, want := range cases {
		require.Equal(t, want, Title(level), "level %d", level)
	}
}

func TestAwardXP(t *testing.T) {
	t.Parallel()
	s := repository.Skill{Name: "Go", Level: 1, CurrentXP: 400, XPToNext: 500}

	got := AwardXP(s, 250)
	require.Equal(t, 2, got.Level)
	require.Equal(t, 150, got.CurrentXP)
	require.Equal(t, 750, got.XPToNext)

	got = AwardXP(repository.Skill{Level: 1, XPToNext: 500}, 100)
	require.Equal(t, 1, got.Level)
	require.Equal(t, 100, got.CurrentXP)

	// overflow carries through several levels: 500, then 750
	got = AwardXP(repository.Skill{Level: 1, XPToNext: 500}, 2000)
	require.Equal(t, 3, got.Level)
	require.Equal(t, 750, got.CurrentXP)
	require.Equal(t, 1125, got.XPToNext)
	require.Less(t, got.CurrentXP, got.XPToNext)

	// threshold growth floors: 1125 * 1.5 = 1687.5
	got = AwardXP(got, 375)
	require.Equal(t, 4, got.Level)
	require.Equal(t, 0, got.CurrentXP)
	require.Equal(t, 1687, got.XPToNext)

	require.Equal(t, got, AwardXP(got, -50))
}

func TestNormalizeSkill(t *testing.T) {
	t.Parallel()
	got := NormalizeSkill(repository.Skill{Level: 0, CurrentXP: -3, XPToNext: 0})
	require.Equal(t, repository.Skill{Level: 1, CurrentXP: 0, XPToNext: repository.DefaultXPToNext}, got)

	got = NormalizeSkill(repository.Skill{Level: 2, CurrentXP: 800, XPToNext: 750})
	require.Equal(t, 3, got.Level)
	require.Equal(t, 50, got.CurrentXP)
}

func TestNormalizeSkillFlatThreshold(t *testing.T) {
	t.Parallel()
	// floor(1*1.5) == 1, so every point of xp is a level
	got := NormalizeSkill(repository.Skill{Level: 1, CurrentXP: 100_000_000_000_000, XPToNext: 1})
	require.Equal(t, repository.Skill{Level: 100_000_000_000_001, CurrentXP: 0, XPToNext: 1}, got)

	got = NormalizeSkill(repository.Skill{Level: 1, CurrentXP: math.MaxInt, XPToNext: math.MaxInt - 1})
	require.Equal(t, 2, got.Level)
	require.Equal(t, 1, got.CurrentXP)
	require.Equal(t, math.MaxInt, got.XPToNext)
}

func TestCompleteSessionOnRestoredFlatSkill(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEngines(t, newTestStore(t))

	snap, err := Parse([]byte(`{"kairo_skills": [{"id": "s", "name": "Golang", "level": 1, "current_xp": 100000000000000, "xp_to_next": 1}]}`))
	require.NoError(t, err)
	require.NoError(t, e.backup.Restore(ctx, snap))
	require.NoError(t, e.progression.Reload(ctx))
	require.NoError(t, e.progression.SelectSkill(ctx, "s"))

	res := e.progression.CompleteSession(ctx)
	require.True(t, res.Awarded)
	require.Equal(t, 0, res.Skill.CurrentXP)
	require.Equal(t, 1, res.Skill.XPToNext)
	require.Equal(t, 100_000_000_000_251, res.Skill.Level)
}

func TestCompleteSessionWithoutSkill(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	p := newEngines(t, newTestStore(t)).progression
	before := p.SkillList()

	res := p.CompleteSession(ctx)
	require.Equal(t, int64(25), res.TotalMinutes)
	require.False(t, res.Awarded)
	require.Equal(t, before, p.SkillList())
	require.Equal(t, int64(25), p.Minutes())
}

func TestCompleteSessionAwardsSelectedSkill(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	store := newTestStore(t)
	p := newEngines(t, store).progression

	skill := p.SkillList()[0]
	require.NoError(t, p.SelectSkill(ctx, skill.ID))

	res := p.CompleteSession(ctx)
	require.True(t, res.Awarded)
	require.Equal(t, 250, res.Skill.CurrentXP)
	require.Zero(t, res.LevelsGained)

	res = p.CompleteSession(ctx)
	require.Equal(t, 1, res.LevelsGained)
	require.Equal(t, 2, res.Skill.Level)
	require.Equal(t, 0, res.Skill.CurrentXP)
	require.Equal(t, 750, res.Skill.XPToNext)
	require.Equal(t, int64(50), res.TotalMinutes)

	fresh := NewProgression(store, repository.BuiltinDefaults(), zerolog.Nop())
	require.NoError(t, fresh.Reload(ctx))
	require.Equal(t, int64(50), fresh.Minutes())
	require.Equal(t, p.SkillList(), fresh.SkillList())
	_, selected := fresh.Selected()
	require.False(t, selected, "selection is not persisted")
}

func TestCompleteSessionUsesConfiguredSession(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	p := newEngines(t, newTestStore(t)).progression
	p.Session = SessionConfig{Minutes: 50, XP: 600}
	require.NoError(t, p.SelectSkill(ctx, p.SkillList()[0].ID))

	res := p.CompleteSession(ctx)
	require.Equal(t, int64(50), res.TotalMinutes)
	require.Equal(t, 2, res.Skill.Level)
	require.Equal(t, 100, res.Skill.CurrentXP)
}

func TestSkillsManagement(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	p := newEngines(t, newTestStore(t)).progression

	golang, err := p.AddSkill(ctx, "  Golang ")
	require.NoError(t, err)
	require.Equal(t, "Golang", golang.Name)
	require.Equal(t, 1, golang.Level)
	require.Equal(t, repository.DefaultXPToNext, golang.XPToNext)

	var verr *ValidationError
	_, err = p.AddSkill(ctx, "golang")
	require.ErrorAs(t, err, &verr)
	_, err = p.AddSkill(ctx, " ")
	require.ErrorAs(t, err, &verr)

	require.ErrorIs(t, p.SelectSkill(ctx, "missing"), ErrNotFound)
	require.NoError(t, p.SelectSkill(ctx, golang.ID))
	sel, ok := p.Selected()
	require.True(t, ok)
	require.Equal(t, golang.ID, sel.ID)
	p.ClearSelection()
	_, ok = p.Selected()
	require.False(t, ok)
}

func TestResolveSkill(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	p := newEngines(t, newTestStore(t)).progression
	deep := p.SkillList()[0]
	_, err := p.AddSkill(ctx, "Golang")
	require.NoError(t, err)

	for _, q := range []string{deep.ID, "deep work", "DEEP WORK", "Deep Wrok", "deepwork"} {
		got, err := p.ResolveSkill(ctx, q)
		require.NoError(t, err, q)
		require.Equal(t, deep.ID, got.ID, q)
	}
	got, err := p.ResolveSkill(ctx, "golnag")
	require.NoError(t, err)
	require.Equal(t, "Golang", got.Name)

	_, err = p.ResolveSkill(ctx, "Cooking")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfileReadsAcrossEngines(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEngines(t, newTestStore(t))

	_, err := e.ledger.RecordIncome(ctx, "Salary", 120000)
	require.NoError(t, err)
	for _, h := range e.habits.List() {
		_, err := e.habits.Toggle(ctx, h.ID)
		require.NoError(t, err)
	}
	dev := &DevTools{Enabled: true, Progression: e.progression, Log: zerolog.Nop()}
	_, err = dev.AddMinutes(ctx, 80)
	require.NoError(t, err)

	p, err := e.progression.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(350), p.TotalXP)
	require.Equal(t, "Nomad", p.Title)
}
