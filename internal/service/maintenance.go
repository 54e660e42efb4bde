package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jask/kairo/internal/kv"
)

// Maintenance houses destructive actions surfaced through the TUI and CLI.
type Maintenance struct {
	Store kv.Store
	Log   zerolog.Logger
}

// Reset erases every persisted key. Engines must Reload afterwards to fall
// back to their defaults.
func (s *Maintenance) Reset(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("maintenance: store not configured")
	}
	if err := s.Store.Clear(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	s.Log.Info().Msg("all data erased")
	return nil
}
