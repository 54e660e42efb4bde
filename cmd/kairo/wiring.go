package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/jask/kairo/internal/config"
	"github.com/jask/kairo/internal/database"
	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/kv"
	"github.com/jask/kairo/internal/logging"
	"github.com/jask/kairo/internal/money"
	"github.com/jask/kairo/internal/service"
	"github.com/jask/kairo/internal/tui"
)

// kairo is one opened data directory with its engines built.
type kairo struct {
	cfg      config.Config
	log      zerolog.Logger
	db       *sql.DB
	store    *kv.CachedStore
	defaults repository.Defaults
	eng      tui.Engines
	money    money.Formatter
	closeLog func() error
}

func openKairo() (*kairo, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	k := &kairo{cfg: cfg, log: log, closeLog: closeLog}
	if err := k.openStore(); err != nil {
		_ = k.Close()
		return nil, err
	}
	k.defaults, err = repository.LoadDefaults(cfg.Seeds.Path)
	if err != nil {
		_ = k.Close()
		return nil, err
	}
	k.money = money.Formatter{Symbol: cfg.UI.CurrencySymbol, Thousands: cfg.UI.ThousandsSeparator}
	k.eng = buildEngines(cfg, k.store, k.defaults, log)
	return k, nil
}

func (k *kairo) openStore() error {
	driver, err := database.NormalizeDriver(k.cfg.Database.Driver)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(k.cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(driver, k.cfg.Database.Path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	k.db, err = database.Open(driver, k.cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	k.store, err = kv.NewCachedStore(kv.NewSQLiteStore(k.db), k.cfg.Database.CacheEntries)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	k.log.Debug().Str("path", k.cfg.Database.Path).Str("driver", driver).Msg("store opened")
	return nil
}

func buildEngines(cfg config.Config, store kv.Store, defaults repository.Defaults, log zerolog.Logger) tui.Engines {
	loc, err := cfg.UI.Location()
	if err != nil {
		log.Warn().Err(err).Msg("using local timezone")
	}
	now := func() time.Time { return time.Now().In(loc) }

	ledger := service.NewLedger(store, log)
	ledger.DateFormat = cfg.UI.DateFormat
	ledger.Now = now

	prog := service.NewProgression(store, defaults, log)
	if cfg.Focus.SessionMinutes > 0 && cfg.Focus.SessionXP > 0 {
		prog.Session = service.SessionConfig{Minutes: cfg.Focus.SessionMinutes, XP: cfg.Focus.SessionXP}
	}

	return tui.Engines{
		Ledger:      ledger,
		Progression: prog,
		Habits:      &service.Habits{Repo: repository.NewHabitRepo(store, defaults.Habits), Log: log},
		Backup:      &service.Backup{Store: store, Defaults: defaults, Log: log, Now: now},
		Maintenance: &service.Maintenance{Store: store, Log: log},
		DevTools:    &service.DevTools{Enabled: cfg.Dev.Enabled, Progression: prog, Log: log},
	}
}

// reload refreshes every engine. Read failures are logged and the engines
// carry on with defaults.
func (k *kairo) reload(ctx context.Context) {
	err := errors.Join(
		k.eng.Ledger.Reload(ctx),
		k.eng.Progression.Reload(ctx),
		k.eng.Habits.Reload(ctx),
	)
	if err != nil {
		k.log.Warn().Err(err).Msg("some data could not be read")
	}
}

func (k *kairo) Close() error {
	var errs []error
	if k.store != nil {
		k.store.Close()
	}
	if k.db != nil {
		errs = append(errs, k.db.Close())
	}
	if k.closeLog != nil {
		errs = append(errs, k.closeLog())
	}
	return errors.Join(errs...)
}
