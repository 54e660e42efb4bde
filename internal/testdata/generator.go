package testdata

import (
	"context"
	"errors"
	"math/rand"

	"github.com/jask/kairo/internal/service"
)

// Engines bundles the engines used by Seed.
type Engines struct {
	Ledger      *service.Ledger
	Habits      *service.Habits
	Progression *service.Progression
}

// Result counts what Seed created.
type Result struct {
	Transactions int
	Goals        int
	Sessions     int
}

// Seed fills the engines with sample activity through their normal
// operations, so every ledger and skill rule still applies. The same seed
// always produces the same amounts.
func Seed(ctx context.Context, e Engines, seed int64) (Result, error) {
	rnd := rand.New(rand.NewSource(seed))
	var res Result

	for _, in := range []struct {
		title  string
		amount int64
	}{
		{"Salary", 850000},
		{"Freelance gig", int64(rnd.Intn(150)+50) * 1000},
	} {
		if _, err := e.Ledger.RecordIncome(ctx, in.title, in.amount); err != nil {
			return res, err
		}
		res.Transactions++
	}

	titles := []string{"Groceries", "Coffee", "Bus card", "Streaming", "Books", "Dinner out"}
	for i := 0; i < 12; i++ {
		amount := int64(rnd.Intn(40)+1) * 1000
		_, err := e.Ledger.RecordExpense(ctx, titles[rnd.Intn(len(titles))], amount)
		if errors.Is(err, service.ErrInsufficientFunds) {
			continue
		}
		if err != nil {
			return res, err
		}
		res.Transactions++
	}

	for _, g := range []struct {
		name    string
		target  int64
		deposit int64
	}{
		{"Emergency fund", 1000000, 150000},
		{"New laptop", 900000, 60000},
	} {
		goal, err := e.Ledger.CreateGoal(ctx, g.name, g.target)
		if err != nil {
			return res, err
		}
		res.Goals++
		if _, err := e.Ledger.DepositToGoal(ctx, goal.ID, g.deposit); err == nil {
			res.Transactions++
		} else if !errors.Is(err, service.ErrInsufficientFunds) {
			return res, err
		}
	}

	for _, h := range e.Habits.List() {
		if rnd.Intn(2) == 0 {
			continue
		}
		if _, err := e.Habits.Toggle(ctx, h.ID); err != nil {
			return res, err
		}
	}

	skill, err := e.Progression.ResolveSkill(ctx, "Golang")
	if errors.Is(err, service.ErrNotFound) {
		skill, err = e.Progression.AddSkill(ctx, "Golang")
	}
	if err != nil {
		return res, err
	}
	if err := e.Progression.SelectSkill(ctx, skill.ID); err != nil {
		return res, err
	}
	for i := 0; i < 3; i++ {
		e.Progression.CompleteSession(ctx)
		res.Sessions++
	}
	return res, nil
}
