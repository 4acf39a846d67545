package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// field describes one text input of a form.
type field struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is a column of labelled text inputs with one focused input.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...field) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}

	for i, spec := range fields {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.Width = 40
		in.CharLimit = 256
		if spec.limit > 0 {
			in.CharLimit = spec.limit
		}
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.labels[i] = spec.label
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}

	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// raw returns the input as typed, for passwords.
func (f *form) raw(i int) string {
	return f.inputs[i].Value()
}

func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
		f.inputs[i].Blur()
	}
	f.focus = 0
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

func (f *form) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update moves focus on tab keys and feeds anything else to the focused
// input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			f.focusNext()
			return nil
		case key.Matches(keyMsg, keys.backtab):
			f.focusPrev()
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) view() string {
	width := 0
	for _, l := range f.labels {
		width = max(width, lipgloss.Width(l))
	}

	var b strings.Builder
	for i, in := range f.inputs {
		label := fmt.Sprintf("%-*s", width, f.labels[i])
		if i == f.focus {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" │ ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}

// formStatus renders the submit button line and an optional error below a
// form.
func formStatus(action string, submitting bool, errMsg string) string {
	var b strings.Builder
	if submitting {
		b.WriteString("\n[" + action + "...]\n")
	} else {
		b.WriteString("\n[" + action + "]\n")
	}
	if errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + errMsg))
		b.WriteString("\n")
	}
	return b.String()
}
