package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/kv"
)

const (
	moneyPerXP  = 1000
	xpPerHabit  = 50
	xpPerLevel  = 1000
	maxSkillFix = 3 // max edit distance accepted by ResolveSkill
)

// Profile is the global progression derived from money, habits and focus.
type Profile struct {
	XPFromMoney   int64
	XPFromHabits  int64
	XPFromMinutes int64
	TotalXP       int64
	Level         int
	Title         string

	// Progress is the fraction of the current level completed, in [0, 1).
	Progress float64
}

// ComputeProfile applies the fixed XP weighting. Negative inputs count as
// zero.
func ComputeProfile(money, minutes int64, completedHabits int) Profile {
	p := Profile{
		XPFromMoney:   max(money, 0) / moneyPerXP,
		XPFromHabits:  int64(max(completedHabits, 0)) * xpPerHabit,
		XPFromMinutes: max(minutes, 0),
	}
	p.TotalXP = p.XPFromMoney + p.XPFromHabits + p.XPFromMinutes
	p.Level = int(p.TotalXP/xpPerLevel) + 1
	p.Title = Title(p.Level)
	p.Progress = float64(p.TotalXP%xpPerLevel) / xpPerLevel
	return p
}

// Title names a profile level.
func Title(level int) string {
	switch {
	case level < 5:
		return "Nomad"
	case level < 10:
		return "Freelancer"
	case level < 20:
		return "SysAdmin"
	case level < 50:
		return "Netrunner"
	default:
		return "Cyber-Lord"
	}
}

// NormalizeSkill repairs out-of-range fields and applies any pending
// level-ups, so that 0 <= CurrentXP < XPToNext holds afterwards.
func NormalizeSkill(s repository.Skill) repository.Skill {
	if s.Level < 1 {
		s.Level = 1
	}
	if s.XPToNext <= 0 {
		s.XPToNext = repository.DefaultXPToNext
	}
	if s.CurrentXP < 0 {
		s.CurrentXP = 0
	}
	for s.CurrentXP >= s.XPToNext {
		next := growThreshold(s.XPToNext)
		if next == s.XPToNext {
			// a threshold that stopped growing takes the rest in one step
			s.Level += s.CurrentXP / s.XPToNext
			s.CurrentXP %= s.XPToNext
			break
		}
		s.CurrentXP -= s.XPToNext
		s.Level++
		s.XPToNext = next
	}
	return s
}

// growThreshold returns floor(n*1.5), saturating at math.MaxInt.
func growThreshold(n int) int {
	half := n / 2
	if n > math.MaxInt-half {
		return math.MaxInt
	}
	return n + half
}

// AwardXP adds xp to the skill, carrying overflow across as many level-ups
// as it covers. Each level-up grows the threshold by half, floored.
func AwardXP(s repository.Skill, xp int) repository.Skill {
	s = NormalizeSkill(s)
	if xp > 0 {
		s.CurrentXP += xp
	}
	return NormalizeSkill(s)
}

// SessionConfig is what one completed focus session is worth.
type SessionConfig struct {
	Minutes int64
	XP      int
}

// DefaultSession is a 25 minute pomodoro worth 250 skill XP.
var DefaultSession = SessionConfig{Minutes: 25, XP: 250}

// SessionResult describes a completed focus session.
type SessionResult struct {
	TotalMinutes int64

	// Skill is the skill after the award; zero when none was selected.
	Skill        repository.Skill
	Awarded      bool
	LevelsGained int
}

// Progression owns focus minutes and skills, and derives the profile.
type Progression struct {
	Store   kv.Store
	Wallet  *repository.WalletRepo
	Habits  *repository.HabitRepo
	Focus   *repository.FocusRepo
	Skills  *repository.SkillRepo
	Session SessionConfig
	Log     zerolog.Logger

	minutes  int64
	skills   []repository.Skill
	selected string
	loaded   bool
}

// NewProgression wires a Progression over store with the given seeds.
func NewProgression(store kv.Store, defaults repository.Defaults, log zerolog.Logger) *Progression {
	return &Progression{
		Store:   store,
		Wallet:  repository.NewWalletRepo(store),
		Habits:  repository.NewHabitRepo(store, defaults.Habits),
		Focus:   repository.NewFocusRepo(store),
		Skills:  repository.NewSkillRepo(store, defaults.Skills),
		Session: DefaultSession,
		Log:     log,
	}
}

// Reload refreshes minutes and skills from the store. A selection whose
// skill no longer exists is dropped.
func (p *Progression) Reload(ctx context.Context) error {
	var errs []error
	mins, err := p.Focus.Minutes(ctx)
	if err != nil {
		errs = append(errs, warnRead(p.Log, repository.KeyMinutes, err))
	}
	skills, err := p.Skills.List(ctx)
	if err != nil {
		errs = append(errs, warnRead(p.Log, repository.KeySkills, err))
	}
	p.minutes = mins
	p.skills = skills
	if p.skillIndex(p.selected) < 0 {
		p.selected = ""
	}
	p.loaded = true
	return errors.Join(errs...)
}

func (p *Progression) ensureLoaded(ctx context.Context) {
	if !p.loaded {
		_ = p.Reload(ctx)
	}
}

// Profile reads balance, habits and minutes straight from the store so it
// reflects writes made by the other engines.
func (p *Progression) Profile(ctx context.Context) (Profile, error) {
	var errs []error
	bal, err := p.Wallet.Balance(ctx)
	if err != nil {
		errs = append(errs, warnRead(p.Log, repository.KeyBalance, err))
	}
	habits, err := p.Habits.List(ctx)
	if err != nil {
		errs = append(errs, warnRead(p.Log, repository.KeyHabits, err))
	}
	mins, err := p.Focus.Minutes(ctx)
	if err != nil {
		errs = append(errs, warnRead(p.Log, repository.KeyMinutes, err))
	}
	return ComputeProfile(bal, mins, countDone(habits)), errors.Join(errs...)
}

func (p *Progression) Minutes() int64 { return p.minutes }

func (p *Progression) SkillList() []repository.Skill {
	return append([]repository.Skill{}, p.skills...)
}

// Selected returns the skill focus sessions currently train.
func (p *Progression) Selected() (repository.Skill, bool) {
	if i := p.skillIndex(p.selected); i >= 0 {
		return p.skills[i], true
	}
	return repository.Skill{}, false
}

func (p *Progression) SelectSkill(ctx context.Context, id string) error {
	p.ensureLoaded(ctx)
	if p.skillIndex(id) < 0 {
		return notFound("skill", id)
	}
	p.selected = id
	return nil
}

func (p *Progression) ClearSelection() { p.selected = "" }

// AddSkill creates a level 1 skill. Names are unique, ignoring case.
func (p *Progression) AddSkill(ctx context.Context, name string) (repository.Skill, error) {
	name, err := RequireText("name", name)
	if err != nil {
		return repository.Skill{}, err
	}
	p.ensureLoaded(ctx)
	for _, s := range p.skills {
		if strings.EqualFold(s.Name, name) {
			return repository.Skill{}, &ValidationError{Field: "name", Reason: "skill already exists"}
		}
	}
	s := repository.Skill{ID: uuid.NewString(), Name: name, Level: 1, XPToNext: repository.DefaultXPToNext}
	p.skills = append(p.skills, s)
	p.commit(ctx, "add skill")
	return s, nil
}

// ResolveSkill finds a skill by id, by name ignoring case, or by the
// closest name within a small edit distance.
func (p *Progression) ResolveSkill(ctx context.Context, query string) (repository.Skill, error) {
	query, err := RequireText("skill", query)
	if err != nil {
		return repository.Skill{}, err
	}
	p.ensureLoaded(ctx)
	if i := p.skillIndex(query); i >= 0 {
		return p.skills[i], nil
	}
	for _, s := range p.skills {
		if strings.EqualFold(s.Name, query) {
			return s, nil
		}
	}
	best, bestDist := -1, maxSkillFix+1
	q := strings.ToLower(query)
	for i, s := range p.skills {
		if d := levenshtein.ComputeDistance(q, strings.ToLower(s.Name)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return repository.Skill{}, notFound("skill", query)
	}
	return p.skills[best], nil
}

// CompleteSession banks the session minutes and awards the session XP to
// the selected skill, if any. Minutes and skills are written as one batch.
func (p *Progression) CompleteSession(ctx context.Context) SessionResult {
	p.ensureLoaded(ctx)
	session := p.session()
	p.minutes += session.Minutes

	res := SessionResult{TotalMinutes: p.minutes}
	if i := p.skillIndex(p.selected); i >= 0 {
		before := p.skills[i].Level
		p.skills[i] = AwardXP(p.skills[i], session.XP)
		res.Skill = p.skills[i]
		res.Awarded = true
		res.LevelsGained = p.skills[i].Level - before
	}
	p.commit(ctx, "complete session")
	if res.LevelsGained > 0 {
		p.Log.Info().Str("skill", res.Skill.Name).Int("level", res.Skill.Level).Msg("skill leveled up")
	}
	return res
}

// bankMinutes adds minutes without touching skills.
func (p *Progression) bankMinutes(ctx context.Context, n int64) int64 {
	p.ensureLoaded(ctx)
	p.minutes += n
	p.commit(ctx, "bank minutes")
	return p.minutes
}

func (p *Progression) session() SessionConfig {
	s := p.Session
	if s.Minutes <= 0 {
		s.Minutes = DefaultSession.Minutes
	}
	if s.XP <= 0 {
		s.XP = DefaultSession.XP
	}
	return s
}

func (p *Progression) commit(ctx context.Context, op string) {
	if err := p.save(ctx); err != nil {
		p.Log.Warn().Err(err).Str("op", op).Msg("progression write failed")
		return
	}
	p.Log.Debug().Str("op", op).Int64("minutes", p.minutes).Msg("progression saved")
}

func (p *Progression) save(ctx context.Context) error {
	skills, err := p.Skills.Entry(p.skills)
	if err != nil {
		return err
	}
	if err := repository.Save(ctx, p.Store, p.Focus.Entry(p.minutes), skills); err != nil {
		return fmt.Errorf("save progression: %w", err)
	}
	return nil
}

func (p *Progression) skillIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range p.skills {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func countDone(habits []repository.Habit) int {
	n := 0
	for _, h := range habits {
		if h.Done {
			n++
		}
	}
	return n
}
