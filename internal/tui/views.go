package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/service"
)

const (
	barWidth    = 24
	historyRows = 8
)

var tabNames = map[appState]string{
	viewHome:    "1 Home",
	viewFinance: "2 Finance",
	viewFocus:   "3 Focus",
	viewProfile: "4 Profile",
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, len(tabOrder))
	for _, t := range tabOrder {
		if t == a.state {
			tabs = append(tabs, activeTabStyle.Render(tabNames[t]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tabNames[t]))
		}
	}
	return titleStyle.Render("kairo") + "  " + strings.Join(tabs, tabSepStyle.Render("│"))
}

// bar draws pct (0-100) as a fixed-width gauge.
func bar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * barWidth)
	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (a *App) renderHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(a.greeting))
	if a.quote.Text != "" {
		b.WriteString("\n" + quoteStyle.Render(fmt.Sprintf("%q  %s", a.quote.Text, a.quote.Author)))
	}
	fmt.Fprintf(&b, "\n\nWallet  %s\n\n", a.money.Format(a.eng.Ledger.Balance()))

	habits := a.eng.Habits.List()
	fmt.Fprintf(&b, "Habits  %s %3.0f%%\n", bar(a.eng.Habits.DailyProgress()), a.eng.Habits.DailyProgress())
	if len(habits) == 0 {
		b.WriteString(helpStyle.Render("  no habits yet") + "\n")
	}
	for i, h := range habits {
		b.WriteString(habitLine(h, i == a.habitCursor) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("[j/k] Move  [space] Toggle  [n] New  [x] Delete  [tab] Next  [q] Quit"))
	return b.String()
}

func habitLine(h repository.Habit, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	if h.Done {
		return cursor + "[x] " + doneStyle.Render(h.Text)
	}
	return cursor + "[ ] " + h.Text
}

func (a *App) renderFinance() string {
	l := a.eng.Ledger
	totals := l.Totals()
	inc, exp := totals.Heights()

	left := titleStyle.Render("Wallet") + "\n" +
		a.money.Format(l.Balance()) + "\n\n" +
		incomeStyle.Render("In  ") + bar(inc) + " " + a.money.Format(totals.Income) + "\n" +
		expenseStyle.Render("Out ") + bar(exp) + " " + a.money.Format(totals.Expense)

	var goals strings.Builder
	goals.WriteString(titleStyle.Render("Goals"))
	list := l.GoalList()
	if len(list) == 0 {
		goals.WriteString("\n" + helpStyle.Render("no goals yet"))
	}
	for i, g := range list {
		cursor := "  "
		if i == a.goalCursor {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&goals, "\n%s%s\n  %s %s / %s",
			cursor, g.Name, bar(service.GoalProgress(g)), a.money.Format(g.Saved), a.money.Format(g.Target))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(left), " ", boxStyle.Render(goals.String()))

	var hist strings.Builder
	hist.WriteString(titleStyle.Render("History"))
	txs := l.History()
	if len(txs) == 0 {
		hist.WriteString("\n" + helpStyle.Render("nothing recorded"))
	}
	for i, tx := range txs {
		if i == historyRows {
			hist.WriteString(helpStyle.Render(fmt.Sprintf("\n… %d more", len(txs)-historyRows)))
			break
		}
		hist.WriteString("\n" + a.txLine(tx))
	}

	help := helpStyle.Render("[i] Income  [e] Expense  [g] Goal  [j/k] Select  [+/-] Deposit/Withdraw  [x] Delete")
	return top + "\n" + hist.String() + "\n\n" + help
}

func (a *App) txLine(tx repository.Transaction) string {
	style := neutralStyle
	switch tx.Kind {
	case repository.KindIncome:
		style = incomeStyle
	case repository.KindExpense:
		style = expenseStyle
	}
	return fmt.Sprintf("%s %-10s %-24s %s", tx.Icon, tx.Date, tx.Title, style.Render(a.money.Format(tx.Amount)))
}

func (a *App) renderFocus() string {
	clock := clockStyle
	if a.timer.State() == service.TimerPaused {
		clock = pausedStyle
	}
	var b strings.Builder
	b.WriteString(clock.Render(service.FormatClock(a.timer.Remaining())))
	fmt.Fprintf(&b, "\n%s  ·  %d min focused\n\n", a.timer.State(), a.eng.Progression.Minutes())

	sel, hasSel := a.eng.Progression.Selected()
	b.WriteString(titleStyle.Render("Skills") + "\n")
	for _, s := range a.eng.Progression.SkillList() {
		cursor := "  "
		if hasSel && s.ID == sel.ID {
			cursor = cursorStyle.Render("> ")
		}
		pct := 0.0
		if s.XPToNext > 0 {
			pct = float64(s.CurrentXP) / float64(s.XPToNext) * 100
		}
		fmt.Fprintf(&b, "%s%-16s Lv %-3d %s %d/%d\n", cursor, s.Name, s.Level, bar(pct), s.CurrentXP, s.XPToNext)
	}
	if !hasSel {
		b.WriteString(helpStyle.Render("  no skill selected, sessions only bank minutes") + "\n")
	}

	help := "[space] Start/Pause  [r] Reset  [s] Skill  [a] Add skill"
	if a.eng.DevTools.Guard() == nil {
		help += "  [f] Fast-forward  [m] +10 min"
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

func (a *App) renderProfile() string {
	p := a.profile
	stats := fmt.Sprintf("Level %d  %s\n%s %3.0f%%\n\nTotal XP     %d\n  money      %d\n  habits     %d\n  focus      %d",
		p.Level, p.Title, bar(p.Progress*100), p.Progress*100,
		p.TotalXP, p.XPFromMoney, p.XPFromHabits, p.XPFromMinutes)

	help := "[e] Export backup  [o] Import backup  [X] Erase all data"
	return titleStyle.Render("Profile") + "\n" + boxStyle.Render(stats) + "\n\n" +
		helpStyle.Render("backups: "+a.cfg.Backup.Dir) + "\n" + helpStyle.Render(help)
}
