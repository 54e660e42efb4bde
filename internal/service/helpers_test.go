package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/kairo/internal/database"
	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/kv"
)

// newTestStore returns a migrated SQLite store in a temp dir.
func newTestStore(t *testing.T) kv.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(database.DriverCGO, dbPath))
	db, err := database.Open(database.DriverCGO, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return kv.NewSQLiteStore(db)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

type engines struct {
	store       kv.Store
	ledger      *Ledger
	progression *Progression
	habits      *Habits
	backup      *Backup
}

func newEngines(t *testing.T, store kv.Store) engines {
	t.Helper()
	log := zerolog.Nop()
	defaults := repository.BuiltinDefaults()
	e := engines{
		store:       store,
		ledger:      NewLedger(store, log),
		progression: NewProgression(store, defaults, log),
		habits:      &Habits{Repo: repository.NewHabitRepo(store, defaults.Habits), Log: log},
		backup:      &Backup{Store: store, Defaults: defaults, Log: log},
	}
	ctx := testCtx(t)
	require.NoError(t, e.ledger.Reload(ctx))
	require.NoError(t, e.progression.Reload(ctx))
	require.NoError(t, e.habits.Reload(ctx))
	return e
}

// readOnlyStore accepts reads and refuses every batch write.
type readOnlyStore struct {
	*kv.MemoryStore
}

var errDiskFull = errors.New("disk full")

func (readOnlyStore) SetMany(context.Context, map[string]string) error { return errDiskFull }
