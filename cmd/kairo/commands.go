package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/kairo/internal/config"
	"github.com/jask/kairo/internal/service"
	"github.com/jask/kairo/internal/testdata"
	"github.com/jask/kairo/internal/tui"
)

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "kairo",
		Short:         "Gamified life tracker: money, habits, focus and skills",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if cfgPath != "" {
				return os.Setenv("KAIRO_CONFIG", cfgPath)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()

			ctx := cmd.Context()
			p := tea.NewProgram(tui.New(ctx, k.cfg, k.eng, k.defaults.Quotes), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $KAIRO_CONFIG or ~/.config/kairo/config.toml)")
	root.AddCommand(
		newStatsCmd(),
		newFocusCmd(),
		newBackupCmd(),
		newResetCmd(),
		newConfigCmd(),
		newDevCmd(),
	)
	return root
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print wallet, habits, focus and level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()
			ctx := cmd.Context()
			k.reload(ctx)

			profile, err := k.eng.Progression.Profile(ctx)
			if err != nil {
				k.log.Warn().Err(err).Msg("stats: profile")
			}
			out := cmd.OutOrStdout()
			l := k.eng.Ledger
			totals := l.Totals()
			fmt.Fprintf(out, "%-10s %s\n", "Wallet", k.money.Format(l.Balance()))
			fmt.Fprintf(out, "%-10s %s\n", "Income", k.money.Format(totals.Income))
			fmt.Fprintf(out, "%-10s %s\n", "Expenses", k.money.Format(totals.Expense))
			for _, g := range l.GoalList() {
				fmt.Fprintf(out, "%-10s %s %s / %s (%.0f%%)\n", "Goal", g.Name,
					k.money.Format(g.Saved), k.money.Format(g.Target), service.GoalProgress(g))
			}
			h := k.eng.Habits
			fmt.Fprintf(out, "%-10s %d/%d done today\n", "Habits", h.CompletedCount(), len(h.List()))
			fmt.Fprintf(out, "%-10s %d min\n", "Focus", k.eng.Progression.Minutes())
			fmt.Fprintf(out, "%-10s %d %s (%d XP, %.0f%% to next)\n", "Level",
				profile.Level, profile.Title, profile.TotalXP, profile.Progress*100)
			for _, s := range k.eng.Progression.SkillList() {
				fmt.Fprintf(out, "%-10s %s Lv %d %d/%d XP\n", "Skill", s.Name, s.Level, s.CurrentXP, s.XPToNext)
			}
			return nil
		},
	}
}

func newFocusCmd() *cobra.Command {
	var skill string
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus session in the terminal",
		Long:  "Counts down one focus session. Ctrl-C stops it and nothing is banked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()
			ctx := cmd.Context()
			k.reload(ctx)

			p := k.eng.Progression
			if skill != "" {
				s, err := p.ResolveSkill(ctx, skill)
				if err != nil {
					return err
				}
				if err := p.SelectSkill(ctx, s.ID); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			var res service.SessionResult
			length := time.Duration(p.Session.Minutes) * time.Minute
			timer := service.NewTimer(length, func() { res = p.CompleteSession(ctx) })
			if sel, ok := p.Selected(); ok {
				fmt.Fprintf(out, "focusing on %s for %s\n", sel.Name, service.FormatClock(length))
			} else {
				fmt.Fprintf(out, "focusing for %s\n", service.FormatClock(length))
			}

			err = timer.Run(ctx, func(left time.Duration) {
				fmt.Fprintf(out, "\r%s ", service.FormatClock(left))
			})
			fmt.Fprintln(out)
			if errors.Is(err, context.Canceled) {
				fmt.Fprintln(out, "stopped, nothing banked")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "session complete: %d min total\n", res.TotalMinutes)
			if res.Awarded {
				fmt.Fprintf(out, "%s: level %d, %d/%d XP\n", res.Skill.Name, res.Skill.Level, res.Skill.CurrentXP, res.Skill.XPToNext)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&skill, "skill", "", "skill to train (id or name, typos allowed)")
	return cmd
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all data as JSON",
	}

	var dir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write " + service.BackupFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()
			if dir == "" {
				dir = k.cfg.Backup.Dir
			}
			path, err := k.eng.Backup.ExportFile(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backup written to", path)
			return nil
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "output directory (default backup.dir)")

	var yes bool
	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := service.ReadFile(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Replace ALL data with the backup from %s?", snap.Timestamp))
				if err != nil || !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return err
				}
			}
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()
			if err := k.eng.Backup.Restore(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backup restored")
			return nil
		},
	}
	imp.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")

	cmd.AddCommand(export, imp)
	return cmd
}

func newResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := confirm(cmd, "Erase ALL data? This cannot be undone.")
				if err != nil || !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return err
				}
			}
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()
			if err := k.eng.Maintenance.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all data erased")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config written to", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

func newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Shortcuts for trying things out (needs dev.enabled)",
		Hidden: true,
	}

	addMinutes := &cobra.Command{
		Use:   "add-minutes <n>",
		Short: "Bank focus minutes without a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("minutes %q: %w", args[0], err)
			}
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()
			ctx := cmd.Context()
			k.reload(ctx)
			total, err := k.eng.DevTools.AddMinutes(ctx, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d min focused\n", total)
			return nil
		},
	}

	var seed int64
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the store with sample activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := openKairo()
			if err != nil {
				return err
			}
			defer k.Close()
			if err := k.eng.DevTools.Guard(); err != nil {
				return err
			}
			ctx := cmd.Context()
			k.reload(ctx)
			res, err := testdata.Seed(ctx, testdata.Engines{
				Ledger:      k.eng.Ledger,
				Habits:      k.eng.Habits,
				Progression: k.eng.Progression,
			}, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d transactions, %d goals, %d sessions\n",
				res.Transactions, res.Goals, res.Sessions)
			return nil
		},
	}
	seedCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	cmd.AddCommand(addMinutes, seedCmd)
	return cmd
}

// confirm asks question on the command's output and reads a yes from its
// input. Anything but y or yes declines.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	ans := strings.ToLower(strings.TrimSpace(line))
	return ans == "y" || ans == "yes", nil
}
