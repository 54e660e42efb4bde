package repository

// Persisted keys. Backups use the same names as top-level JSON fields.
const (
	KeyBalance      = "kairo_balance"
	KeyTransactions = "kairo_transactions"
	KeyGoals        = "kairo_goals"
	KeyHabits       = "kairo_habits"
	KeyMinutes      = "kairo_minutes"
	KeySkills       = "kairo_skills"
)

// AllKeys lists every persisted key in backup order.
var AllKeys = []string{
	KeyBalance,
	KeyTransactions,
	KeyGoals,
	KeyHabits,
	KeyMinutes,
	KeySkills,
}

// IsKnownKey reports whether key is part of the persisted key space.
func IsKnownKey(key string) bool {
	for _, k := range AllKeys {
		if k == key {
			return true
		}
	}
	return false
}
