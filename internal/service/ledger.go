package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/kv"
	"github.com/jask/kairo/internal/money"
)

// DefaultDateFormat renders transaction dates as day/month/year.
const DefaultDateFormat = "02/01/2006"

const (
	iconIncome  = "💰"
	iconExpense = "💸"
	iconSavings = "🎯"
	iconRescue  = "🚨"
)

// Ledger owns the wallet balance, the transaction history and the savings
// goals. Every change to the balance records a Transaction, and every
// operation is written as a single batch of all three keys.
//
// Call Reload before reading; mutating methods load on first use.
type Ledger struct {
	Store        kv.Store
	Wallet       *repository.WalletRepo
	Transactions *repository.TransactionRepo
	Goals        *repository.GoalRepo
	IDs          *repository.IDSource
	Log          zerolog.Logger
	DateFormat   string
	Now          func() time.Time

	balance int64
	history []repository.Transaction
	goals   []repository.Goal
	loaded  bool
}

// NewLedger wires a Ledger with repositories over store.
func NewLedger(store kv.Store, log zerolog.Logger) *Ledger {
	return &Ledger{
		Store:        store,
		Wallet:       repository.NewWalletRepo(store),
		Transactions: repository.NewTransactionRepo(store),
		Goals:        repository.NewGoalRepo(store),
		IDs:          repository.NewIDSource(nil),
		Log:          log,
	}
}

// Reload replaces the in-memory state with what is persisted. Unreadable
// keys fall back to their defaults; the returned error lists them, and the
// ledger stays usable either way.
func (l *Ledger) Reload(ctx context.Context) error {
	var errs []error
	bal, err := l.Wallet.Balance(ctx)
	if err != nil {
		errs = append(errs, warnRead(l.Log, repository.KeyBalance, err))
	}
	txs, err := l.Transactions.List(ctx)
	if err != nil {
		errs = append(errs, warnRead(l.Log, repository.KeyTransactions, err))
	}
	goals, err := l.Goals.List(ctx)
	if err != nil {
		errs = append(errs, warnRead(l.Log, repository.KeyGoals, err))
	}
	l.balance, l.history, l.goals = bal, txs, goals
	for _, tx := range txs {
		l.ids().Observe(tx.ID)
	}
	l.loaded = true
	return errors.Join(errs...)
}

func (l *Ledger) ensureLoaded(ctx context.Context) {
	if !l.loaded {
		_ = l.Reload(ctx)
	}
}

func (l *Ledger) Balance() int64 { return l.balance }

// History returns the transactions, newest first.
func (l *Ledger) History() []repository.Transaction {
	return append([]repository.Transaction{}, l.history...)
}

func (l *Ledger) GoalList() []repository.Goal {
	return append([]repository.Goal{}, l.goals...)
}

func (l *Ledger) Goal(id string) (repository.Goal, bool) {
	if i := l.goalIndex(id); i >= 0 {
		return l.goals[i], true
	}
	return repository.Goal{}, false
}

// RecordIncome adds amount to the wallet.
func (l *Ledger) RecordIncome(ctx context.Context, title string, amount int64) (repository.Transaction, error) {
	title, err := RequireText("title", title)
	if err != nil {
		return repository.Transaction{}, err
	}
	if err := requirePositive("amount", amount); err != nil {
		return repository.Transaction{}, err
	}
	l.ensureLoaded(ctx)

	l.balance += amount
	tx := l.record(title, amount, iconIncome, repository.KindIncome)
	l.commit(ctx, "income")
	return tx, nil
}

// RecordExpense takes amount out of the wallet. The balance never goes
// negative.
func (l *Ledger) RecordExpense(ctx context.Context, title string, amount int64) (repository.Transaction, error) {
	title, err := RequireText("title", title)
	if err != nil {
		return repository.Transaction{}, err
	}
	if err := requirePositive("amount", amount); err != nil {
		return repository.Transaction{}, err
	}
	l.ensureLoaded(ctx)
	if l.balance < amount {
		return repository.Transaction{}, fmt.Errorf("expense of %d with balance %d: %w", amount, l.balance, ErrInsufficientFunds)
	}

	l.balance -= amount
	tx := l.record(title, -amount, iconExpense, repository.KindExpense)
	l.commit(ctx, "expense")
	return tx, nil
}

// CreateGoal appends an empty savings goal.
func (l *Ledger) CreateGoal(ctx context.Context, name string, target int64) (repository.Goal, error) {
	name, err := RequireText("name", name)
	if err != nil {
		return repository.Goal{}, err
	}
	if err := requirePositive("target", target); err != nil {
		return repository.Goal{}, err
	}
	l.ensureLoaded(ctx)

	g := repository.Goal{ID: uuid.NewString(), Name: name, Target: target}
	l.goals = append(l.goals, g)
	l.commit(ctx, "create goal")
	return g, nil
}

// DepositToGoal moves amount from the wallet into the goal. The transfer is
// recorded as a neutral transaction with a negative amount.
func (l *Ledger) DepositToGoal(ctx context.Context, goalID string, amount int64) (repository.Goal, error) {
	if err := requirePositive("amount", amount); err != nil {
		return repository.Goal{}, err
	}
	l.ensureLoaded(ctx)
	i := l.goalIndex(goalID)
	if i < 0 {
		return repository.Goal{}, notFound("goal", goalID)
	}
	if l.balance < amount {
		return repository.Goal{}, fmt.Errorf("deposit of %d with balance %d: %w", amount, l.balance, ErrInsufficientFunds)
	}

	l.balance -= amount
	l.goals[i].Saved += amount
	l.record("Savings: "+l.goals[i].Name, -amount, iconSavings, repository.KindNeutral)
	l.commit(ctx, "deposit")
	return l.goals[i], nil
}

// WithdrawFromGoal moves amount from the goal back into the wallet.
func (l *Ledger) WithdrawFromGoal(ctx context.Context, goalID string, amount int64) (repository.Goal, error) {
	if err := requirePositive("amount", amount); err != nil {
		return repository.Goal{}, err
	}
	l.ensureLoaded(ctx)
	i := l.goalIndex(goalID)
	if i < 0 {
		return repository.Goal{}, notFound("goal", goalID)
	}
	if l.goals[i].Saved < amount {
		return repository.Goal{}, fmt.Errorf("withdraw %d from %d saved: %w", amount, l.goals[i].Saved, ErrInsufficientGoalFunds)
	}

	l.goals[i].Saved -= amount
	l.balance += amount
	l.record("Rescue: "+l.goals[i].Name, amount, iconRescue, repository.KindIncome)
	l.commit(ctx, "withdraw")
	return l.goals[i], nil
}

// DeleteGoal removes the goal. With refund set, its savings go back to the
// wallet and the amount returned is what was refunded.
func (l *Ledger) DeleteGoal(ctx context.Context, goalID string, refund bool) (int64, error) {
	l.ensureLoaded(ctx)
	i := l.goalIndex(goalID)
	if i < 0 {
		return 0, notFound("goal", goalID)
	}
	g := l.goals[i]

	var refunded int64
	if refund && g.Saved > 0 {
		refunded = g.Saved
		l.balance += refunded
		l.record("Closed goal: "+g.Name, refunded, iconIncome, repository.KindIncome)
	}
	l.goals = append(l.goals[:i:i], l.goals[i+1:]...)
	l.commit(ctx, "delete goal")
	return refunded, nil
}

// Totals sums the current history.
func (l *Ledger) Totals() Totals { return ComputeTotals(l.history) }

// Totals are the income and expense sums shown in the finance chart.
type Totals struct {
	Income  int64
	Expense int64
}

// ComputeTotals counts income transactions and positive neutral ones as
// income, and expense transactions as expense.
func ComputeTotals(history []repository.Transaction) Totals {
	var t Totals
	for _, tx := range history {
		switch {
		case tx.Kind == repository.KindIncome, tx.Kind == repository.KindNeutral && tx.Amount > 0:
			t.Income += abs(tx.Amount)
		case tx.Kind == repository.KindExpense:
			t.Expense += abs(tx.Amount)
		}
	}
	return t
}

// Heights returns both bars as a percentage of the larger one.
func (t Totals) Heights() (income, expense float64) {
	top := float64(max(t.Income, t.Expense, 1))
	return float64(t.Income) / top * 100, float64(t.Expense) / top * 100
}

// GoalProgress is the saved share of the target, clamped to [0, 100].
func GoalProgress(g repository.Goal) float64 {
	return money.Percent(g.Saved, g.Target)
}

func (l *Ledger) record(title string, amount int64, icon string, kind repository.Kind) repository.Transaction {
	tx := repository.Transaction{
		ID:     l.ids().Next(),
		Title:  title,
		Date:   l.now().Format(l.dateFormat()),
		Amount: amount,
		Icon:   icon,
		Kind:   kind,
	}
	l.history = append([]repository.Transaction{tx}, l.history...)
	return tx
}

// commit writes balance, history and goals together. A failed write is
// logged; the in-memory state keeps the change.
func (l *Ledger) commit(ctx context.Context, op string) {
	if err := l.save(ctx); err != nil {
		l.Log.Warn().Err(err).Str("op", op).Msg("ledger write failed")
		return
	}
	l.Log.Debug().Str("op", op).Int64("balance", l.balance).Int("transactions", len(l.history)).Msg("ledger saved")
}

func (l *Ledger) save(ctx context.Context) error {
	txs, err := l.Transactions.Entry(l.history)
	if err != nil {
		return err
	}
	goals, err := l.Goals.Entry(l.goals)
	if err != nil {
		return err
	}
	return repository.Save(ctx, l.Store, l.Wallet.Entry(l.balance), txs, goals)
}

func (l *Ledger) goalIndex(id string) int {
	for i, g := range l.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) ids() *repository.IDSource {
	if l.IDs == nil {
		l.IDs = repository.NewIDSource(l.Now)
	}
	return l.IDs
}

func (l *Ledger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Ledger) dateFormat() string {
	if l.DateFormat != "" {
		return l.DateFormat
	}
	return DefaultDateFormat
}

func warnRead(log zerolog.Logger, key string, err error) error {
	log.Warn().Err(err).Str("key", key).Msg("read failed, using default")
	return fmt.Errorf("read %s: %w", key, err)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
