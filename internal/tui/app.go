package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasktimer/internal/clock"
	"github.com/jask/tasktimer/internal/service"
	"github.com/jask/tasktimer/internal/stopwatch"
	"github.com/jask/tasktimer/internal/timefmt"
)

// pane is one tab of the App. Panes own their timers: Mount arms them and
// Unmount cancels them.
type pane interface {
	// Name is the stable tab name, "clock" or "tasks".
	Name() string
	Title() string
	Scope() string
	Capturing() bool
	Mount() tea.Cmd
	Unmount()
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
}

// Options selects the panes and their collaborators. A pane is mounted
// when its collaborators are set: Clock and Stopwatch for the clock pane,
// Tasks and Maintenance for the tasks pane.
type Options struct {
	Clock       *clock.Clock
	Stopwatch   *stopwatch.Stopwatch
	Tasks       *service.TaskService
	Maintenance *service.MaintenanceService
	Locale      timefmt.Locale
	TaskOptions TasksOptions
	Keys        *KeyRegistry
	// StartTab is a pane name ("clock" or "tasks").
	StartTab string
}

// App ties together the panes.
type App struct {
	keys   *KeyRegistry
	help   help.Model
	panes  []pane
	active int
	width  int
	height int
}

func New(ctx context.Context, opts Options) *App {
	keys := opts.Keys
	if keys == nil {
		keys = NewKeyRegistry()
	}
	a := &App{keys: keys, help: help.New(), width: 80, height: 24}
	if opts.Clock != nil && opts.Stopwatch != nil {
		a.panes = append(a.panes, newClockPane(keys, opts.Clock, opts.Stopwatch))
	}
	if opts.Tasks != nil && opts.Maintenance != nil {
		a.panes = append(a.panes, newTasksPane(ctx, keys, opts.Tasks, opts.Maintenance, opts.Locale, opts.TaskOptions))
	}
	for i, p := range a.panes {
		if p.Name() == opts.StartTab {
			a.active = i
		}
	}
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.panes))
	for _, p := range a.panes {
		cmds = append(cmds, p.Mount())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	}

	// Timer messages carry their own generation; panes ignore what is not theirs.
	var cmds []tea.Cmd
	for _, p := range a.panes {
		cmds = append(cmds, p.Update(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyCtrlC {
		return a, a.quit()
	}
	p := a.activePane()
	if p == nil {
		return a, a.quit()
	}
	if !p.Capturing() {
		if b := a.keys.Lookup(m.String(), p.Scope()); b != nil && len(b.Scopes) > 0 && b.Scopes[0] == scopeGlobal {
			return a, a.handleGlobal(b.Action)
		}
	}
	return a, p.Update(m)
}

func (a *App) handleGlobal(action Action) tea.Cmd {
	switch action {
	case actionQuit:
		return a.quit()
	case actionNextTab:
		a.switchTo((a.active + 1) % len(a.panes))
	case actionPrevTab:
		a.switchTo((a.active - 1 + len(a.panes)) % len(a.panes))
	case actionGoClock:
		a.switchToName(paneClock)
	case actionGoTasks:
		a.switchToName(paneTasks)
	case actionHelp:
		a.help.ShowAll = !a.help.ShowAll
	}
	return nil
}

func (a *App) switchTo(i int) {
	if i >= 0 && i < len(a.panes) {
		a.active = i
	}
}

func (a *App) switchToName(name string) {
	for i, p := range a.panes {
		if p.Name() == name {
			a.switchTo(i)
			return
		}
	}
}

// quit unmounts every pane so no timer outlives the program loop.
func (a *App) quit() tea.Cmd {
	for _, p := range a.panes {
		p.Unmount()
	}
	return tea.Quit
}

func (a *App) activePane() pane {
	if a.active < 0 || a.active >= len(a.panes) {
		return nil
	}
	return a.panes[a.active]
}

func (a *App) View() string {
	p := a.activePane()
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(p.View(a.width, a.height))
	b.WriteString("\n\n")
	b.WriteString(a.renderHelp(p))
	return b.String()
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, len(a.panes)+1)
	tabs = append(tabs, titleStyle.Render("tasktimer"))
	for i, p := range a.panes {
		label := p.Title()
		if len(a.panes) > 1 {
			label = string(rune('1'+i)) + " " + label
		}
		if i == a.active {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (a *App) renderHelp(p pane) string {
	scoped := a.keys.HelpBindings(p.Scope())
	if p.Capturing() {
		return a.help.ShortHelpView(scoped)
	}
	global := a.globalHelp()
	if a.help.ShowAll {
		return a.help.FullHelpView([][]key.Binding{scoped, global})
	}
	return a.help.ShortHelpView(append(scoped, global...))
}

// globalHelp lists the global bindings, without tab switching when only
// one pane is mounted.
func (a *App) globalHelp() []key.Binding {
	var out []key.Binding
	for _, b := range a.keys.BindingsForScope(scopeGlobal) {
		if len(a.panes) < 2 && b.Action != actionQuit && b.Action != actionHelp {
			continue
		}
		out = append(out, helpBinding(b))
	}
	return out
}
