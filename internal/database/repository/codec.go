package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/kairo/internal/kv"
)

// Entry is one encoded key/value pair waiting to be written.
type Entry struct {
	Key   string
	Value string
}

// Save writes entries as a single atomic batch.
func Save(ctx context.Context, store kv.Store, entries ...Entry) error {
	batch := make(map[string]string, len(entries))
	for _, e := range entries {
		batch[e.Key] = e.Value
	}
	if err := store.SetMany(ctx, batch); err != nil {
		return fmt.Errorf("save %d keys: %w", len(batch), err)
	}
	return nil
}

func intEntry(key string, v int64) Entry {
	return Entry{Key: key, Value: strconv.FormatInt(v, 10)}
}

func jsonEntry(key string, v any) (Entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Entry{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return Entry{Key: key, Value: string(data)}, nil
}

// loadInt reads an integer key; absent keys yield def.
func loadInt(ctx context.Context, store kv.Store, key string, def int64) (int64, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return def, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

// loadJSON decodes a JSON key into out. It reports false when the key is
// absent or holds JSON null, leaving out untouched.
func loadJSON(ctx context.Context, store kv.Store, key string, out any) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if strings.TrimSpace(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
