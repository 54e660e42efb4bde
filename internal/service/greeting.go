package service

import (
	"math/rand"
	"strings"
	"time"

	"github.com/jask/kairo/internal/database/repository"
)

// Greeting picks a salutation by hour: morning from 06 to 12, afternoon
// until 20, night otherwise.
func Greeting(now time.Time, name string) string {
	var g string
	switch h := now.Hour(); {
	case h >= 6 && h < 12:
		g = "Good morning"
	case h >= 12 && h < 20:
		g = "Good afternoon"
	default:
		g = "Good night"
	}
	if name = strings.TrimSpace(name); name != "" {
		g += ", " + name
	}
	return g
}

// PickQuote returns a random personal quote, or a random one from the whole
// library when there are no personal quotes. It reports false for an empty
// library.
func PickQuote(quotes []repository.Quote, rnd *rand.Rand) (repository.Quote, bool) {
	pool := make([]repository.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Personal {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = quotes
	}
	if len(pool) == 0 {
		return repository.Quote{}, false
	}
	if rnd == nil {
		return pool[rand.Intn(len(pool))], true
	}
	return pool[rnd.Intn(len(pool))], true
}
