package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	helpStyle        = lipgloss.NewStyle().Foreground(colorOverlay1)
	statusStyle      = lipgloss.NewStyle().Foreground(colorInfo)
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorOverlay1).Padding(0, 1)
	tabSepStyle      = lipgloss.NewStyle().Foreground(colorSurface2)
	cursorStyle      = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	doneStyle        = lipgloss.NewStyle().Foreground(colorSuccess).Strikethrough(true)
	incomeStyle      = lipgloss.NewStyle().Foreground(colorSuccess)
	expenseStyle     = lipgloss.NewStyle().Foreground(colorError)
	neutralStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	quoteStyle       = lipgloss.NewStyle().Italic(true).Foreground(colorMauve)
	clockStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorPeach).Padding(1, 4).Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface2)
	pausedStyle      = clockStyle.Foreground(colorWarning)
	barFillStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	barEmptyStyle    = lipgloss.NewStyle().Foreground(colorSurface0)
	boxStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface2).Padding(0, 1)
)
