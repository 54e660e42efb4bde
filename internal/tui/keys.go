package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/kairo/internal/service"
)

const devMinutes = 10

func (a *App) handleHomeKey(m tea.KeyMsg) {
	habits := a.eng.Habits.List()
	switch m.String() {
	case "up", "k":
		if a.habitCursor > 0 {
			a.habitCursor--
		}
	case "down", "j":
		if a.habitCursor < len(habits)-1 {
			a.habitCursor++
		}
	case " ", "enter":
		if len(habits) == 0 {
			return
		}
		if _, err := a.eng.Habits.Toggle(a.ctx, habits[a.habitCursor].ID); err != nil {
			a.fail(err)
		}
	case "n":
		a.openPrompt("New habit", []string{"Habit"}, func(v []string) (string, error) {
			h, err := a.eng.Habits.Create(a.ctx, v[0])
			if err != nil {
				return "", err
			}
			a.habitCursor = len(a.eng.Habits.List()) - 1
			return "added " + h.Text, nil
		})
	case "x":
		if len(habits) == 0 {
			return
		}
		h := habits[a.habitCursor]
		a.ask(fmt.Sprintf("Delete habit %q?", h.Text)).add("y", "Delete", func() (string, error) {
			if err := a.eng.Habits.Delete(a.ctx, h.ID); err != nil {
				return "", err
			}
			if a.habitCursor > 0 && a.habitCursor >= len(a.eng.Habits.List()) {
				a.habitCursor--
			}
			return "habit deleted", nil
		})
	}
}

func (a *App) handleFinanceKey(m tea.KeyMsg) {
	goals := a.eng.Ledger.GoalList()
	switch m.String() {
	case "up", "k":
		if a.goalCursor > 0 {
			a.goalCursor--
		}
	case "down", "j":
		if a.goalCursor < len(goals)-1 {
			a.goalCursor++
		}
	case "i":
		a.openPrompt("Income", []string{"Title", "Amount"}, func(v []string) (string, error) {
			amount, err := service.ParseAmount(a.money, "amount", v[1])
			if err != nil {
				return "", err
			}
			if _, err := a.eng.Ledger.RecordIncome(a.ctx, v[0], amount); err != nil {
				return "", err
			}
			return "income recorded: " + a.money.Format(amount), nil
		})
	case "e":
		a.openPrompt("Expense", []string{"Title", "Amount"}, func(v []string) (string, error) {
			amount, err := service.ParseAmount(a.money, "amount", v[1])
			if err != nil {
				return "", err
			}
			if _, err := a.eng.Ledger.RecordExpense(a.ctx, v[0], amount); err != nil {
				return "", err
			}
			return "expense recorded: " + a.money.Format(amount), nil
		})
	case "g":
		a.openPrompt("New goal", []string{"Name", "Target"}, func(v []string) (string, error) {
			target, err := service.ParseAmount(a.money, "target", v[1])
			if err != nil {
				return "", err
			}
			g, err := a.eng.Ledger.CreateGoal(a.ctx, v[0], target)
			if err != nil {
				return "", err
			}
			a.goalCursor = len(a.eng.Ledger.GoalList()) - 1
			return "goal created: " + g.Name, nil
		})
	case "+", "-":
		if len(goals) == 0 {
			return
		}
		g := goals[a.goalCursor]
		deposit := m.String() == "+"
		title := "Withdraw from " + g.Name
		if deposit {
			title = "Deposit into " + g.Name
		}
		a.openPrompt(title, []string{"Amount"}, func(v []string) (string, error) {
			amount, err := service.ParseAmount(a.money, "amount", v[0])
			if err != nil {
				return "", err
			}
			if deposit {
				_, err = a.eng.Ledger.DepositToGoal(a.ctx, g.ID, amount)
			} else {
				_, err = a.eng.Ledger.WithdrawFromGoal(a.ctx, g.ID, amount)
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s: %s", title, a.money.Format(amount)), nil
		})
	case "x":
		if len(goals) == 0 {
			return
		}
		g := goals[a.goalCursor]
		del := func(refund bool) func() (string, error) {
			return func() (string, error) {
				refunded, err := a.eng.Ledger.DeleteGoal(a.ctx, g.ID, refund)
				if err != nil {
					return "", err
				}
				a.goalCursor = 0
				if refunded > 0 {
					return fmt.Sprintf("goal closed, %s back in the wallet", a.money.Format(refunded)), nil
				}
				return "goal deleted", nil
			}
		}
		if g.Saved > 0 {
			a.ask(fmt.Sprintf("%s holds %s. What now?", g.Name, a.money.Format(g.Saved))).
				add("r", "Refund to wallet", del(true)).
				add("d", "Delete without refund", del(false))
			return
		}
		a.ask(fmt.Sprintf("Delete goal %q?", g.Name)).add("y", "Delete", del(false))
	}
}

func (a *App) handleFocusKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case " ", "enter":
		if a.timer.State() == service.TimerExpired {
			a.timer.Reset()
		}
		if a.timer.Toggle() && a.timer.State() == service.TimerRunning {
			a.tickGen++
			return a.tick()
		}
	case "r":
		a.timer.Reset()
		a.tickGen++
	case "s":
		a.cycleSkill()
	case "a":
		a.openPrompt("New skill", []string{"Name"}, func(v []string) (string, error) {
			s, err := a.eng.Progression.AddSkill(a.ctx, v[0])
			if err != nil {
				return "", err
			}
			return "skill added: " + s.Name, nil
		})
	case "f":
		if err := a.eng.DevTools.FastForward(a.timer); err != nil {
			a.fail(err)
			return nil
		}
		a.status = "dev: fast-forwarded"
	case "m":
		total, err := a.eng.DevTools.AddMinutes(a.ctx, devMinutes)
		if err != nil {
			a.fail(err)
			return nil
		}
		a.status = fmt.Sprintf("dev: +%d min (total %d)", devMinutes, total)
	}
	return nil
}

// cycleSkill steps the selection through none, then each skill in order.
func (a *App) cycleSkill() {
	skills := a.eng.Progression.SkillList()
	if len(skills) == 0 {
		return
	}
	next := 0
	if cur, ok := a.eng.Progression.Selected(); ok {
		for i, s := range skills {
			if s.ID == cur.ID {
				next = i + 1
			}
		}
	}
	if next >= len(skills) {
		a.eng.Progression.ClearSelection()
		a.status = "no skill selected"
		return
	}
	if err := a.eng.Progression.SelectSkill(a.ctx, skills[next].ID); err != nil {
		a.fail(err)
		return
	}
	a.status = "training " + skills[next].Name
}

func (a *App) handleProfileKey(m tea.KeyMsg) {
	switch m.String() {
	case "e":
		path, err := a.eng.Backup.ExportFile(a.ctx, a.cfg.Backup.Dir)
		if err != nil {
			a.fail(err)
			return
		}
		a.status = "backup written to " + path
	case "o":
		a.openPrompt("Import backup", []string{"File"}, func(v []string) (string, error) {
			path := v[0]
			if path == "" {
				path = filepath.Join(a.cfg.Backup.Dir, service.BackupFileName)
			}
			snap, err := service.ReadFile(path)
			if err != nil {
				return "", err
			}
			a.ask(fmt.Sprintf("Replace ALL data with the backup from %s?", snap.Timestamp)).add("y", "Restore", func() (string, error) {
				if err := a.eng.Backup.Restore(a.ctx, snap); err != nil {
					return "", err
				}
				a.activate(viewProfile)
				return "backup restored", nil
			})
			return "", nil
		})
	case "X":
		a.ask("Erase ALL data? This cannot be undone.").add("y", "Erase", func() (string, error) {
			if err := a.eng.Maintenance.Reset(a.ctx); err != nil {
				return "", err
			}
			a.eng.Progression.ClearSelection()
			a.timer.Reset()
			a.tickGen++
			a.activate(viewProfile)
			return "all data erased", nil
		})
	}
}

func sessionSummary(res service.SessionResult) string {
	msg := fmt.Sprintf("session complete: %d min banked", res.TotalMinutes)
	if res.Awarded {
		msg += fmt.Sprintf(", %s at %d/%d XP", res.Skill.Name, res.Skill.CurrentXP, res.Skill.XPToNext)
	}
	if res.LevelsGained > 0 {
		msg += fmt.Sprintf(" (level up: %d)", res.Skill.Level)
	}
	return msg
}
