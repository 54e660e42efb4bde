package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/kairo/internal/config"
	"github.com/jask/kairo/internal/database/repository"
	"github.com/jask/kairo/internal/money"
	"github.com/jask/kairo/internal/service"
)

// Engines are the services the TUI drives. They are built once by the
// caller and shared with the CLI commands.
type Engines struct {
	Ledger      *service.Ledger
	Progression *service.Progression
	Habits      *service.Habits
	Backup      *service.Backup
	Maintenance *service.Maintenance
	DevTools    *service.DevTools
}

// App ties together the four tabs. Engine calls run inside Update, so all
// engine state is touched from a single goroutine.
type App struct {
	ctx      context.Context
	eng      Engines
	cfg      config.Config
	money    money.Formatter
	quotes   []repository.Quote
	now      func() time.Time
	state    appState
	status   string
	width    int
	greeting string
	quote    repository.Quote
	profile  service.Profile

	habitCursor int
	goalCursor  int

	// focus countdown; tickGen invalidates ticks scheduled before the last
	// start or tab change
	timer   *service.Timer
	tickGen int

	prompt  *prompt
	confirm *confirmation
}

type appState string

const (
	viewHome    appState = "home"
	viewFinance appState = "finance"
	viewFocus   appState = "focus"
	viewProfile appState = "profile"
)

var tabOrder = []appState{viewHome, viewFinance, viewFocus, viewProfile}

// New builds the app and activates the home tab.
func New(ctx context.Context, cfg config.Config, eng Engines, quotes []repository.Quote) *App {
	// Location falls back to time.Local on its own
	loc, _ := cfg.UI.Location()
	a := &App{
		ctx:    ctx,
		eng:    eng,
		cfg:    cfg,
		money:  money.Formatter{Symbol: cfg.UI.CurrencySymbol, Thousands: cfg.UI.ThousandsSeparator},
		quotes: quotes,
		now:    func() time.Time { return time.Now().In(loc) },
	}
	session := time.Duration(cfg.Focus.SessionMinutes) * time.Minute
	if session <= 0 {
		session = time.Duration(service.DefaultSession.Minutes) * time.Minute
	}
	a.timer = service.NewTimer(session, a.sessionDone)
	a.activate(viewHome)
	return a
}

func (a *App) Init() tea.Cmd { return nil }

// activate switches tab and reloads the engines it shows. Leaving the focus
// tab pauses the countdown and drops its pending tick.
func (a *App) activate(tab appState) {
	if a.state == viewFocus && tab != viewFocus {
		a.timer.Pause()
		a.tickGen++
	}
	a.state = tab
	var errs []error
	switch tab {
	case viewHome:
		errs = append(errs, a.eng.Ledger.Reload(a.ctx), a.eng.Progression.Reload(a.ctx), a.eng.Habits.Reload(a.ctx))
		a.greeting = service.Greeting(a.now(), a.cfg.UI.UserName)
		a.quote, _ = service.PickQuote(a.quotes, nil)
		if a.habitCursor >= len(a.eng.Habits.List()) {
			a.habitCursor = 0
		}
	case viewFinance:
		errs = append(errs, a.eng.Ledger.Reload(a.ctx))
		if a.goalCursor >= len(a.eng.Ledger.GoalList()) {
			a.goalCursor = 0
		}
	case viewFocus:
		errs = append(errs, a.eng.Progression.Reload(a.ctx))
	case viewProfile:
		var err error
		a.profile, err = a.eng.Progression.Profile(a.ctx)
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		a.status = "some data could not be read: " + err.Error()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		if a.prompt != nil {
			return a, a.handlePromptKey(m)
		}
		if a.confirm != nil {
			a.handleConfirmKey(m)
			return a, nil
		}
		switch m.String() {
		case "q", "ctrl+c":
			a.timer.Pause()
			a.tickGen++
			return a, tea.Quit
		case "tab":
			a.activate(nextTab(a.state))
			return a, nil
		case "1", "2", "3", "4":
			a.activate(tabOrder[m.String()[0]-'1'])
			return a, nil
		}
		switch a.state {
		case viewHome:
			a.handleHomeKey(m)
		case viewFinance:
			a.handleFinanceKey(m)
		case viewFocus:
			return a, a.handleFocusKey(m)
		case viewProfile:
			a.handleProfileKey(m)
		}
	case tickMsg:
		if m.gen != a.tickGen || a.timer.State() != service.TimerRunning {
			return a, nil
		}
		if a.timer.Tick() {
			return a, nil
		}
		return a, a.tick()
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewFinance:
		body = a.renderFinance()
	case viewFocus:
		body = a.renderFocus()
	case viewProfile:
		body = a.renderProfile()
	default:
		body = a.renderHome()
	}
	out := a.renderTabs() + "\n\n" + body
	if a.prompt != nil {
		out += "\n\n" + a.prompt.View()
	}
	if a.confirm != nil {
		out += "\n\n" + a.confirm.View()
	}
	if a.status != "" {
		out += "\n\n" + statusStyle.Render(a.status)
	}
	return out
}

func nextTab(cur appState) appState {
	for i, t := range tabOrder {
		if t == cur {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return viewHome
}

// tick schedules the next countdown step for the current generation.
func (a *App) tick() tea.Cmd {
	gen := a.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// sessionDone runs once when the countdown reaches zero.
func (a *App) sessionDone() {
	res := a.eng.Progression.CompleteSession(a.ctx)
	a.status = sessionSummary(res)
}

type tickMsg struct{ gen int }

type statusMsg string

type errMsg struct{ error }

func (a *App) fail(err error) {
	a.status = "error: " + err.Error()
}

func newInput(label string) textinput.Model {
	in := textinput.New()
	in.Prompt = label + ": "
	in.CharLimit = 80
	in.Focus()
	return in
}
