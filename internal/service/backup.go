package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/kv"
)

const (
	BackupVersion  = "1.0"
	BackupFileName = "kairo_backup.json"
)

// Snapshot is the full persisted state as written to a backup file. The
// JSON field names are the store keys.
type Snapshot struct {
	Balance      int64                    `json:"kairo_balance"`
	Transactions []repository.Transaction `json:"kairo_transactions"`
	Goals        []repository.Goal        `json:"kairo_goals"`
	Habits       []repository.Habit       `json:"kairo_habits"`
	Minutes      int64                    `json:"kairo_minutes"`
	Skills       []repository.Skill       `json:"kairo_skills"`
	Timestamp    string                   `json:"timestamp"`
	Version      string                   `json:"version"`
}

// Backup exports and restores the whole key space.
type Backup struct {
	Store    kv.Store
	Defaults repository.Defaults
	Log      zerolog.Logger
	Now      func() time.Time
}

// Snapshot reads every key. Keys that were never written are exported the
// way the engines see them: 0, an empty list, or the seeded habits and skills.
func (b *Backup) Snapshot(ctx context.Context) (Snapshot, error) {
	raw, err := b.Store.GetMany(ctx, repository.AllKeys)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read state: %w", err)
	}
	var s Snapshot
	if s.Balance, err = storedInt(raw, repository.KeyBalance); err != nil {
		return Snapshot{}, err
	}
	if s.Minutes, err = storedInt(raw, repository.KeyMinutes); err != nil {
		return Snapshot{}, err
	}
	for key, out := range map[string]any{
		repository.KeyTransactions: &s.Transactions,
		repository.KeyGoals:        &s.Goals,
		repository.KeyHabits:       &s.Habits,
		repository.KeySkills:       &s.Skills,
	} {
		v, ok := raw[key]
		if !ok || strings.TrimSpace(v) == "null" {
			continue
		}
		if err := json.Unmarshal([]byte(v), out); err != nil {
			return Snapshot{}, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	if s.Habits == nil {
		s.Habits = append([]repository.Habit{}, b.Defaults.Habits...)
	}
	if s.Skills == nil {
		s.Skills = append([]repository.Skill{}, b.Defaults.Skills...)
	}
	s.Timestamp = b.now().UTC().Format(time.RFC3339)
	s.Version = BackupVersion
	return s.normalized(), nil
}

// Export returns the current state as an indented backup document.
func (b *Backup) Export(ctx context.Context) ([]byte, error) {
	s, err := b.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Encode(s)
}

// Encode renders s with two-space indentation.
func Encode(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s.normalized(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Parse decodes a backup document. It must be a JSON object carrying at
// least one known key; absent keys restore as 0 or an empty list.
func Parse(data []byte) (Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Snapshot{}, &BackupFormatError{Reason: "not a JSON object", Err: err}
	}
	known := 0
	for k := range fields {
		if repository.IsKnownKey(k) {
			known++
		}
	}
	if known == 0 {
		return Snapshot{}, &BackupFormatError{Reason: "no recognized keys"}
	}

	var s Snapshot
	targets := map[string]any{
		repository.KeyBalance:      &s.Balance,
		repository.KeyTransactions: &s.Transactions,
		repository.KeyGoals:        &s.Goals,
		repository.KeyHabits:       &s.Habits,
		repository.KeyMinutes:      &s.Minutes,
		repository.KeySkills:       &s.Skills,
		"timestamp":                &s.Timestamp,
		"version":                  &s.Version,
	}
	for key, out := range targets {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, out); err != nil {
			return Snapshot{}, &BackupFormatError{Reason: "bad " + key, Err: err}
		}
	}
	for _, sk := range s.Skills {
		if sk.Level < 1 || sk.CurrentXP < 0 || sk.XPToNext < 1 {
			return Snapshot{}, &BackupFormatError{
				Reason: fmt.Sprintf("skill %q: level %d, xp %d/%d out of range", sk.ID, sk.Level, sk.CurrentXP, sk.XPToNext),
			}
		}
	}
	return s.normalized(), nil
}

// Restore overwrites all six keys in one batch. Unlike the engines' writes,
// a failure here is returned; on failure nothing was overwritten.
func (b *Backup) Restore(ctx context.Context, s Snapshot) error {
	s = s.normalized()
	entries := []repository.Entry{
		repository.NewWalletRepo(b.Store).Entry(s.Balance),
		repository.NewFocusRepo(b.Store).Entry(s.Minutes),
	}
	txs, err := repository.NewTransactionRepo(b.Store).Entry(s.Transactions)
	if err != nil {
		return err
	}
	goals, err := repository.NewGoalRepo(b.Store).Entry(s.Goals)
	if err != nil {
		return err
	}
	habits, err := repository.NewHabitRepo(b.Store, nil).Entry(s.Habits)
	if err != nil {
		return err
	}
	skills, err := repository.NewSkillRepo(b.Store, nil).Entry(s.Skills)
	if err != nil {
		return err
	}
	entries = append(entries, txs, goals, habits, skills)
	if err := repository.Save(ctx, b.Store, entries...); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	b.Log.Info().Str("timestamp", s.Timestamp).Int("transactions", len(s.Transactions)).Msg("backup restored")
	return nil
}

// ExportFile writes the backup into dir as kairo_backup.json and returns
// its path. The file is replaced atomically.
func (b *Backup) ExportFile(ctx context.Context, dir string) (string, error) {
	data, err := b.Export(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir backup dir: %w", err)
	}
	path := filepath.Join(dir, BackupFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	b.Log.Info().Str("path", path).Msg("backup exported")
	return path, nil
}

// ReadFile parses the backup at path without restoring it.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read backup: %w", err)
	}
	return Parse(data)
}

func (b *Backup) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (s Snapshot) normalized() Snapshot {
	if s.Transactions == nil {
		s.Transactions = []repository.Transaction{}
	}
	if s.Goals == nil {
		s.Goals = []repository.Goal{}
	}
	if s.Habits == nil {
		s.Habits = []repository.Habit{}
	}
	if s.Skills == nil {
		s.Skills = []repository.Skill{}
	}
	return s
}

func storedInt(raw map[string]string, key string) (int64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", key, err)
	}
	return n, nil
}
