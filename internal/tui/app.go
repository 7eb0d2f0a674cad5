// internal/tui/app.go
//
// This is the main TUI (Terminal User Interface) for taskdeck.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// Storage is synchronous and local, so service calls happen directly inside
// Update rather than through async commands.

package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/taskdeck/internal/logbook"
	"github.com/kingrea/taskdeck/internal/store"
	"github.com/kingrea/taskdeck/internal/tracker"
)

// appState represents which "screen" we're on
type appState int

const (
	stateLogin        appState = iota // Email/password prompt
	stateMainMenu                     // List Tasks / New Task / Log Out
	stateTaskList                     // All tasks with a selection cursor
	stateCreateTask                   // New task form
	stateChangeStatus                 // Status change form
	stateDeleteTask                   // Delete confirmation form
)

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state appState
	svc   *tracker.Service
	book  *logbook.Logbook

	loginUser *store.User

	// UI components
	mainMenu  list.Model
	loginForm form
	create    form
	change    form
	remove    form
	statusMsg string

	// Task list screen
	tasks     []tracker.TaskView
	selection int
	listErr   string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp creates a new App instance over the given service.
func NewApp(svc *tracker.Service, book *logbook.Logbook) *App {
	items := []list.Item{
		menuItem{title: "List Tasks", desc: "Show every task and who owns it"},
		menuItem{title: "New Task", desc: "Register a task and assign it"},
		menuItem{title: "Log Out", desc: "Return to the login prompt"},
	}
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "⬡ TASKDECK"
	mainMenu.SetShowStatusBar(false)
	mainMenu.SetFilteringEnabled(false)

	app := &App{
		state:     stateLogin,
		svc:       svc,
		book:      book,
		mainMenu:  mainMenu,
		loginForm: newLoginForm(),
		create:    newCreateForm(),
		change:    newStatusForm(""),
		remove:    newDeleteForm(""),
		statusMsg: "Welcome to taskdeck. Log in to continue.",
	}
	return app
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.state {
		case stateLogin:
			return a.updateLogin(msg)
		case stateMainMenu:
			return a.updateMainMenu(msg)
		case stateTaskList:
			return a.updateTaskList(msg)
		case stateCreateTask:
			return a.updateCreate(msg)
		case stateChangeStatus:
			return a.updateChange(msg)
		case stateDeleteTask:
			return a.updateDelete(msg)
		}
	}
	return a, nil
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loginForm.submitted(msg) {
		email := a.loginForm.value(0)
		password := a.loginForm.fields[1].input.Value()
		user, err := a.svc.Login(email, password)
		if err != nil {
			if errors.Is(err, tracker.ErrLoginFailed) {
				a.loginForm.errMsg = err.Error()
			} else {
				a.loginForm.errMsg = "storage failure, see session log"
				a.logError("login: %v", err)
			}
			return a, nil
		}
		a.loginUser = user
		a.loginForm.reset()
		a.state = stateMainMenu
		a.statusMsg = fmt.Sprintf("Logged in as %s", user.Name)
		a.logInfo("user %d (%s) logged in", user.Code, user.Name)
		return a, nil
	}
	var cmd tea.Cmd
	a.loginForm, cmd = a.loginForm.update(msg)
	return a, cmd
}

func (a *App) updateMainMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "enter":
		selected, ok := a.mainMenu.SelectedItem().(menuItem)
		if !ok {
			return a, nil
		}
		switch selected.title {
		case "List Tasks":
			a.refreshTasks()
			a.state = stateTaskList
			return a, nil
		case "New Task":
			a.create.reset()
			a.state = stateCreateTask
			return a, nil
		case "Log Out":
			a.logInfo("user %d logged out", a.loginUser.Code)
			a.loginUser = nil
			a.loginForm.reset()
			a.state = stateLogin
			a.statusMsg = "Logged out."
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.mainMenu, cmd = a.mainMenu.Update(msg)
	return a, cmd
}

func (a *App) updateTaskList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		a.state = stateMainMenu
		return a, nil
	case "r":
		a.refreshTasks()
		a.statusMsg = "Task list refreshed."
		return a, nil
	case "up", "k":
		if a.selection > 0 {
			a.selection--
		}
		return a, nil
	case "down", "j":
		if a.selection < len(a.tasks)-1 {
			a.selection++
		}
		return a, nil
	case "c":
		a.change = newStatusForm(a.selectedCode())
		a.state = stateChangeStatus
		return a, nil
	case "d":
		a.remove = newDeleteForm(a.selectedCode())
		a.state = stateDeleteTask
		return a, nil
	}
	return a, nil
}

// selectedCode returns the code of the highlighted task for form prefill.
func (a *App) selectedCode() string {
	if a.selection < 0 || a.selection >= len(a.tasks) {
		return ""
	}
	return strconv.Itoa(a.tasks[a.selection].Code)
}

func (a *App) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		a.state = stateMainMenu
		return a, nil
	}
	if a.create.submitted(msg) {
		code, ok := a.create.intValue(0)
		if !ok {
			a.create.errMsg = "enter the task code using digits only"
			return a, nil
		}
		name := a.create.value(1)
		if len([]rune(name)) > maxTaskNameLen {
			a.create.errMsg = fmt.Sprintf("task name must be %d characters or fewer", maxTaskNameLen)
			return a, nil
		}
		assignee, ok := a.create.intValue(2)
		if !ok {
			a.create.errMsg = "enter the user code using digits only"
			return a, nil
		}
		if err := a.svc.Create(code, name, assignee, a.loginUser); err != nil {
			a.handleServiceError(&a.create, err, "create task")
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Task %d registered.", code)
		a.logInfo("task %d created by user %d", code, a.loginUser.Code)
		a.refreshTasks()
		a.state = stateTaskList
		return a, nil
	}
	var cmd tea.Cmd
	a.create, cmd = a.create.update(msg)
	return a, cmd
}

func (a *App) updateChange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		a.state = stateTaskList
		return a, nil
	}
	if a.change.submitted(msg) {
		code, ok := a.change.intValue(0)
		if !ok {
			a.change.errMsg = "enter the task code using digits only"
			return a, nil
		}
		status, ok := a.change.intValue(1)
		if !ok {
			a.change.errMsg = "enter the status using digits only"
			return a, nil
		}
		if status != int(tracker.StatusInProgress) && status != int(tracker.StatusDone) {
			a.change.errMsg = "choose status 1 or 2"
			return a, nil
		}
		if err := a.svc.ChangeStatus(code, tracker.Status(status), a.loginUser); err != nil {
			a.handleServiceError(&a.change, err, "change status")
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Task %d is now %s.", code, tracker.Status(status))
		a.logInfo("task %d moved to %s by user %d", code, tracker.Status(status), a.loginUser.Code)
		a.refreshTasks()
		a.state = stateTaskList
		return a, nil
	}
	var cmd tea.Cmd
	a.change, cmd = a.change.update(msg)
	return a, cmd
}

func (a *App) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		a.state = stateTaskList
		return a, nil
	}
	if a.remove.submitted(msg) {
		code, ok := a.remove.intValue(0)
		if !ok {
			a.remove.errMsg = "enter the task code using digits only"
			return a, nil
		}
		if err := a.svc.Delete(code); err != nil {
			a.handleServiceError(&a.remove, err, "delete task")
			return a, nil
		}
		a.statusMsg = fmt.Sprintf("Task %d deleted.", code)
		a.logInfo("task %d deleted by user %d", code, a.loginUser.Code)
		a.refreshTasks()
		a.state = stateTaskList
		return a, nil
	}
	var cmd tea.Cmd
	a.remove, cmd = a.remove.update(msg)
	return a, cmd
}

// handleServiceError routes a failure to the form. Business-rule violations
// carry user-facing messages; anything else is a storage failure that gets
// logged and summarized.
func (a *App) handleServiceError(f *form, err error, action string) {
	switch {
	case errors.Is(err, tracker.ErrInvalidAssignee),
		errors.Is(err, tracker.ErrTaskNotFound),
		errors.Is(err, tracker.ErrInvalidTransition),
		errors.Is(err, tracker.ErrTaskNotDone):
		f.errMsg = err.Error()
	default:
		f.errMsg = "storage failure, see session log"
		a.logError("%s: %v", action, err)
	}
}

func (a *App) refreshTasks() {
	views, err := a.svc.ListAll(a.loginUser)
	if err != nil {
		a.listErr = err.Error()
		a.logError("list tasks: %v", err)
		return
	}
	a.listErr = ""
	a.tasks = views
	if a.selection >= len(a.tasks) {
		a.selection = max(0, len(a.tasks)-1)
	}
}

func (a *App) logInfo(format string, args ...any) {
	if a.book == nil {
		return
	}
	a.book.Info(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.book == nil {
		return
	}
	a.book.Error(format, args...)
}

// View renders the current state to a string.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateLogin:
		content = a.loginForm.view("Enter → submit    Ctrl+C → quit")
	case stateMainMenu:
		content = a.mainMenu.View()
	case stateTaskList:
		content = a.renderTaskList()
	case stateCreateTask:
		content = a.create.view("Enter → next/submit    Esc → cancel")
	case stateChangeStatus:
		content = a.change.view("Enter → next/submit    Esc → cancel")
	case stateDeleteTask:
		content = a.remove.view("Enter → delete    Esc → cancel")
	}
	return a.renderFrame(content)
}

func (a *App) renderFrame(content string) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ TASKDECK")
	width := a.width
	if width <= 0 {
		width = 100
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(40, width-4)).
		Render(content)
	sections := []string{header, box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	if a.book == nil {
		return ""
	}
	lines := a.book.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("SESSION LOG")
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderTaskList() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("Tasks (%d)", len(a.tasks)))
	if a.listErr != "" {
		warn := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Render("⚠ " + a.listErr)
		return lipgloss.JoinVertical(lipgloss.Left, title, warn, a.renderTaskHints())
	}
	if len(a.tasks) == 0 {
		note := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render("No tasks yet. Press Esc and choose New Task.")
		return lipgloss.JoinVertical(lipgloss.Left, title, note, a.renderTaskHints())
	}
	var rows []string
	for i, t := range a.tasks {
		rows = append(rows, a.renderTaskRow(t, i == a.selection))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), a.renderTaskHints())
}

func (a *App) renderTaskRow(t tracker.TaskView, selected bool) string {
	owner := fmt.Sprintf("assigned to %s", t.AssigneeName)
	if t.Mine {
		owner = "assigned to you"
	}
	row := fmt.Sprintf("%d. %s · %s · %s", t.Code, t.Name, owner, t.Status)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	if t.Mine {
		style = style.Foreground(lipgloss.Color("#5B8DEF"))
	}
	if selected {
		style = style.Bold(true)
		row = "▸ " + row
	} else {
		row = "  " + row
	}
	return style.Render(row)
}

func (a *App) renderTaskHints() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		MarginTop(1).
		Render("↑/↓ select    c → change status    d → delete    r → refresh    Esc → menu")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
