package repository

// Kind classifies a transaction for totals and wallet accounting.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindNeutral Kind = "neutral"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindNeutral:
		return true
	}
	return false
}

// Transaction is one immutable ledger entry. Amount is signed; negative
// amounts leave the wallet.
type Transaction struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Amount int64  `json:"amount"`
	Icon   string `json:"icon"`
	Kind   Kind   `json:"kind"`
}

// WalletDelta is the effect tx had on the wallet balance. Positive neutral
// entries are savings that never passed through the wallet.
func (tx Transaction) WalletDelta() int64 {
	switch tx.Kind {
	case KindIncome, KindExpense:
		return tx.Amount
	case KindNeutral:
		if tx.Amount < 0 {
			return tx.Amount
		}
	}
	return 0
}

// Goal is a named savings target.
type Goal struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Target int64  `json:"target"`
	Saved  int64  `json:"saved"`
}

// Habit is a daily habit checkbox.
type Habit struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Skill levels up from focus sessions.
type Skill struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	CurrentXP int    `json:"current_xp"`
	XPToNext  int    `json:"xp_to_next"`
}
