package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// prompt collects one or more text fields in sequence, then hands all of
// them to submit.
type prompt struct {
	title  string
	labels []string
	values []string
	input  textinput.Model
	submit func(values []string) (string, error)
}

func newPrompt(title string, labels []string, submit func([]string) (string, error)) *prompt {
	return &prompt{title: title, labels: labels, input: newInput(labels[0]), submit: submit}
}

func (p *prompt) View() string {
	lines := []string{titleStyle.Render(p.title)}
	for i, v := range p.values {
		lines = append(lines, fmt.Sprintf("%s: %s", p.labels[i], v))
	}
	lines = append(lines, p.input.View(), helpStyle.Render("[enter] Next  [esc] Cancel"))
	return strings.Join(lines, "\n")
}

func (a *App) openPrompt(title string, labels []string, submit func([]string) (string, error)) {
	a.status = ""
	a.prompt = newPrompt(title, labels, submit)
}

func (a *App) handlePromptKey(m tea.KeyMsg) tea.Cmd {
	p := a.prompt
	switch m.String() {
	case "esc":
		a.prompt = nil
		a.status = "cancelled"
		return nil
	case "enter":
		p.values = append(p.values, p.input.Value())
		if len(p.values) < len(p.labels) {
			p.input = newInput(p.labels[len(p.values)])
			return nil
		}
		a.prompt = nil
		msg, err := p.submit(p.values)
		if err != nil {
			a.fail(err)
			return nil
		}
		a.status = msg
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(m)
	return cmd
}

// confirmation asks a question answered by a single key.
type confirmation struct {
	question string
	keys     []string
	labels   []string
	actions  []func() (string, error)
}

func (c *confirmation) add(key, label string, action func() (string, error)) *confirmation {
	c.keys = append(c.keys, key)
	c.labels = append(c.labels, label)
	c.actions = append(c.actions, action)
	return c
}

func (c *confirmation) View() string {
	opts := make([]string, 0, len(c.keys)+1)
	for i, k := range c.keys {
		opts = append(opts, fmt.Sprintf("[%s] %s", k, c.labels[i]))
	}
	opts = append(opts, "[esc] Cancel")
	return titleStyle.Render(c.question) + "\n" + helpStyle.Render(strings.Join(opts, "  "))
}

func (a *App) ask(question string) *confirmation {
	a.status = ""
	a.confirm = &confirmation{question: question}
	return a.confirm
}

func (a *App) handleConfirmKey(m tea.KeyMsg) {
	c := a.confirm
	key := m.String()
	if key == "esc" || key == "n" {
		a.confirm = nil
		a.status = "cancelled"
		return
	}
	for i, k := range c.keys {
		if k != key {
			continue
		}
		a.confirm = nil
		msg, err := c.actions[i]()
		if err != nil {
			a.fail(err)
			return
		}
		a.status = msg
		return
	}
}
