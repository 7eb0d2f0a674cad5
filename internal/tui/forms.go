// internal/tui/forms.go
//
// Input forms for the taskdeck TUI. The forms own presentation-layer
// validation: codes must be digit-only strings, task names are capped at 10
// characters, and the status choice is restricted to 1 or 2. The tracker
// service only ever sees syntactically valid input.

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxTaskNameLen = 10

// isDigits reports whether s is a non-empty string of ASCII digits. Negative
// numbers and anything with signs or spaces are rejected; leading zeros are
// admitted. This matches the historical input rule for record codes.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// field pairs a text input with its prompt label.
type field struct {
	label string
	input textinput.Model
}

func newField(label, placeholder string) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 64
	in.Width = 32
	return field{label: label, input: in}
}

func newPasswordField(label string) field {
	f := newField(label, "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '*'
	return f
}

// form is a vertical stack of fields with one focused at a time. Enter on
// the last field submits; the owner validates and either consumes the values
// or sets errMsg and keeps the form open.
type form struct {
	title  string
	fields []field
	focus  int
	errMsg string
}

func newForm(title string, fields ...field) form {
	f := form{title: title, fields: fields}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

// reset clears all values and error state and focuses the first field.
func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].input.Blur()
	}
	f.focus = 0
	f.errMsg = ""
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
}

// value returns the trimmed text of field i.
func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

// intValue parses field i as a digits-only code. The bool is false when the
// field fails the digits rule.
func (f *form) intValue(i int) (int, bool) {
	raw := f.value(i)
	if !isDigits(raw) {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// submitted reports whether this key press submits the form: Enter while the
// last field is focused.
func (f *form) submitted(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter && f.focus == len(f.fields)-1
}

// update routes a message to the focused field and handles focus movement.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab, tea.KeyDown:
			f.setFocus(f.focus + 1)
			return f, nil
		case tea.KeyShiftTab, tea.KeyUp:
			f.setFocus(f.focus - 1)
			return f, nil
		case tea.KeyEnter:
			if f.focus < len(f.fields)-1 {
				f.setFocus(f.focus + 1)
				return f, nil
			}
		}
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd
}

func (f *form) setFocus(target int) {
	if target < 0 {
		target = len(f.fields) - 1
	}
	if target >= len(f.fields) {
		target = 0
	}
	f.fields[f.focus].input.Blur()
	f.focus = target
	f.fields[f.focus].input.Focus()
}

var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

// view renders the form with its title, fields, and any validation error.
func (f form) view(hint string) string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n\n")
	for _, fld := range f.fields {
		b.WriteString(formLabelStyle.Render(fld.label))
		b.WriteString("\n")
		b.WriteString(fld.input.View())
		b.WriteString("\n")
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(formErrorStyle.Render("✗ " + f.errMsg))
	}
	if hint != "" {
		b.WriteString("\n")
		b.WriteString(formHintStyle.Render(hint))
	}
	return b.String()
}

func newLoginForm() form {
	return newForm("Log In",
		newField("Email", "you@example.com"),
		newPasswordField("Password"),
	)
}

func newCreateForm() form {
	return newForm("New Task",
		newField("Task code", "e.g. 101"),
		newField("Task name (max 10 chars)", ""),
		newField("Assignee user code", "e.g. 1"),
	)
}

func newStatusForm(taskCode string) form {
	f := newForm("Change Status",
		newField("Task code", "e.g. 101"),
		newField("New status (1: In Progress, 2: Done)", "1 or 2"),
	)
	if taskCode != "" {
		f.fields[0].input.SetValue(taskCode)
		f.setFocus(1)
	}
	return f
}

func newDeleteForm(taskCode string) form {
	f := newForm("Delete Task",
		newField("Task code", "e.g. 101"),
	)
	if taskCode != "" {
		f.fields[0].input.SetValue(taskCode)
	}
	return f
}
