package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/kv"
)

func TestExportEmptyStore(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	defaults := repository.BuiltinDefaults()
	b := &Backup{Store: newTestStore(t), Defaults: defaults, Log: zerolog.Nop(), Now: func() time.Time { return fixed }}

	data, err := b.Export(ctx)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "{\n  \"kairo_balance\": 0,"), string(data))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, k := range repository.AllKeys {
		require.Contains(t, doc, k)
	}
	require.Equal(t, "1.0", doc["version"])
	require.Equal(t, "2026-01-02T03:04:05Z", doc["timestamp"])
	require.Equal(t, []any{}, doc[repository.KeyGoals])
	require.Len(t, doc[repository.KeyHabits], len(defaults.Habits))
	require.Len(t, doc[repository.KeySkills], len(defaults.Skills))
}

func TestFreshStoreRoundTripKeepsSeeds(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEngines(t, kv.NewMemoryStore())
	habits, skills := e.habits.List(), e.progression.SkillList()
	require.NotEmpty(t, habits)
	require.NotEmpty(t, skills)

	data, err := e.backup.Export(ctx)
	require.NoError(t, err)
	snap, err := Parse(data)
	require.NoError(t, err)
	require.NoError(t, e.backup.Restore(ctx, snap))

	require.NoError(t, e.habits.Reload(ctx))
	require.NoError(t, e.progression.Reload(ctx))
	require.Equal(t, habits, e.habits.List())
	require.Equal(t, skills, e.progression.SkillList())
}

func TestSnapshotKeepsWrittenEmptyLists(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	store := kv.NewMemoryStore()
	require.NoError(t, store.SetMany(ctx, map[string]string{repository.KeyHabits: "[]"}))
	b := &Backup{Store: store, Defaults: repository.BuiltinDefaults(), Log: zerolog.Nop()}

	snap, err := b.Snapshot(ctx)
	require.NoError(t, err)
	require.Empty(t, snap.Habits)
	require.Len(t, snap.Skills, 1)
}

func TestBackupRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEngines(t, newTestStore(t))

	_, err := e.ledger.RecordIncome(ctx, "Salary", 9000)
	require.NoError(t, err)
	g, err := e.ledger.CreateGoal(ctx, "Bike", 5000)
	require.NoError(t, err)
	_, err = e.ledger.DepositToGoal(ctx, g.ID, 2000)
	require.NoError(t, err)
	_, err = e.habits.Toggle(ctx, e.habits.List()[0].ID)
	require.NoError(t, err)
	require.NoError(t, e.progression.SelectSkill(ctx, e.progression.SkillList()[0].ID))
	e.progression.CompleteSession(ctx)

	data, err := e.backup.Export(ctx)
	require.NoError(t, err)

	// restore into a different, dirty store
	other := newEngines(t, newTestStore(t))
	_, err = other.ledger.RecordIncome(ctx, "Noise", 1)
	require.NoError(t, err)

	snap, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, BackupVersion, snap.Version)
	require.NoError(t, other.backup.Restore(ctx, snap))

	require.NoError(t, other.ledger.Reload(ctx))
	require.NoError(t, other.progression.Reload(ctx))
	require.NoError(t, other.habits.Reload(ctx))
	require.Equal(t, int64(7000), other.ledger.Balance())
	require.Equal(t, e.ledger.History(), other.ledger.History())
	require.Equal(t, e.ledger.GoalList(), other.ledger.GoalList())
	require.Equal(t, e.habits.List(), other.habits.List())
	require.Equal(t, e.progression.SkillList(), other.progression.SkillList())
	require.Equal(t, int64(25), other.progression.Minutes())
}

func TestParseRejectsUnrecognizedDocuments(t *testing.T) {
	t.Parallel()
	bad := []string{
		"",
		"not json",
		"[1, 2]",
		"null",
		`{"foo": 1, "timestamp": "2026-01-01T00:00:00Z"}`,
		`{"kairo_balance": "lots"}`,
		`{"kairo_goals": {"id": "x"}}`,
		`{"kairo_skills": [{"id": "s", "level": 1, "current_xp": 5, "xp_to_next": 0}]}`,
		`{"kairo_skills": [{"id": "s", "level": 0, "current_xp": 0, "xp_to_next": 500}]}`,
		`{"kairo_skills": [{"id": "s", "level": 2, "current_xp": -1, "xp_to_next": 500}]}`,
	}
	for _, doc := range bad {
		_, err := Parse([]byte(doc))
		var ferr *BackupFormatError
		require.ErrorAs(t, err, &ferr, doc)
	}
}

func TestRestoreOverwritesEverything(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEngines(t, newTestStore(t))
	_, err := e.ledger.RecordIncome(ctx, "Salary", 500)
	require.NoError(t, err)
	_, err = e.ledger.CreateGoal(ctx, "Bike", 100)
	require.NoError(t, err)

	snap, err := Parse([]byte(`{"kairo_minutes": 40}`))
	require.NoError(t, err)
	require.NoError(t, e.backup.Restore(ctx, snap))

	require.NoError(t, e.ledger.Reload(ctx))
	require.NoError(t, e.habits.Reload(ctx))
	require.NoError(t, e.progression.Reload(ctx))
	require.Zero(t, e.ledger.Balance())
	require.Empty(t, e.ledger.History())
	require.Empty(t, e.ledger.GoalList())
	require.Empty(t, e.habits.List())
	require.Empty(t, e.progression.SkillList())
	require.Equal(t, int64(40), e.progression.Minutes())
}

func TestRestoreFailureLeavesStoreUntouched(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	mem := kv.NewMemoryStore()
	require.NoError(t, mem.Set(ctx, repository.KeyBalance, "123"))
	b := &Backup{Store: readOnlyStore{MemoryStore: mem}, Log: zerolog.Nop()}

	snap, err := Parse([]byte(`{"kairo_balance": 999}`))
	require.NoError(t, err)
	require.ErrorIs(t, b.Restore(ctx, snap), errDiskFull)

	v, _, err := mem.Get(ctx, repository.KeyBalance)
	require.NoError(t, err)
	require.Equal(t, "123", v)
}

func TestExportFileAndReadFile(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEngines(t, newTestStore(t))
	_, err := e.ledger.RecordIncome(ctx, "Salary", 4200)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "backups")
	path, err := e.backup.ExportFile(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, BackupFileName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))

	snap, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, int64(4200), snap.Balance)
	require.Len(t, snap.Transactions, 1)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
