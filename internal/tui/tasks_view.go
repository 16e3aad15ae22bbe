package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/tasktimer/internal/service"
	"github.com/jask/tasktimer/internal/tasks"
	"github.com/jask/tasktimer/internal/timefmt"
)

type taskMode string

const (
	taskModeList    taskMode = "list"
	taskModeAdd     taskMode = "add"
	taskModeEdit    taskMode = "edit"
	taskModeSearch  taskMode = "search"
	taskModeConfirm taskMode = "confirmClear"
)

const (
	fieldText = iota
	fieldDue
)

// TasksOptions carries the configured defaults of the tasks pane.
type TasksOptions struct {
	DefaultCategory tasks.Category
	DefaultPriority tasks.Priority
	Celebrate       bool
}

type tasksPane struct {
	ctx    context.Context
	keys   *KeyRegistry
	svc    *service.TaskService
	maint  *service.MaintenanceService
	locale timefmt.Locale
	opts   TasksOptions

	board  service.Board
	filter tasks.Filter
	cursor int
	mode   taskMode
	status string

	text      textinput.Model
	due       textinput.Model
	search    textinput.Model
	edit      textinput.Model
	formField int
	category  tasks.Category
	priority  tasks.Priority

	burst    bool
	confetti *confetti
	width    int
}

func newTasksPane(ctx context.Context, keys *KeyRegistry, svc *service.TaskService, maint *service.MaintenanceService, locale timefmt.Locale, opts TasksOptions) *tasksPane {
	p := &tasksPane{
		ctx:      ctx,
		keys:     keys,
		svc:      svc,
		maint:    maint,
		locale:   locale,
		opts:     opts,
		filter:   tasks.DefaultFilter(),
		mode:     taskModeList,
		text:     newInput("What amazing thing will you accomplish?", 200),
		due:      newInput(timefmt.DateLayout, len(timefmt.DateLayout)),
		search:   newInput("Search your tasks...", 100),
		edit:     newInput("", 200),
		confetti: newConfetti(time.Now().UnixNano()),
		width:    80,
	}
	if opts.Celebrate {
		svc.OnCelebrate = func(tasks.Task) { p.burst = true }
	}
	return p
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

func (p *tasksPane) Name() string  { return paneTasks }
func (p *tasksPane) Title() string { return "Tasks" }

func (p *tasksPane) Scope() string {
	switch p.mode {
	case taskModeAdd:
		return scopeTaskForm
	case taskModeEdit:
		return scopeTaskEdit
	case taskModeSearch:
		return scopeTaskSearch
	case taskModeConfirm:
		return scopeConfirm
	}
	return scopeTasks
}

// Capturing reports whether keys go to a text input rather than global bindings.
func (p *tasksPane) Capturing() bool { return p.mode != taskModeList }

func (p *tasksPane) Mount() tea.Cmd {
	log.Printf("tasks: mount")
	p.refresh()
	return nil
}

func (p *tasksPane) Unmount() {
	p.confetti.stop()
	log.Printf("tasks: unmount")
}

// refresh re-derives the board from the store and clamps the cursor.
func (p *tasksPane) refresh() {
	board, err := p.svc.Board(p.ctx, p.filter)
	if err != nil {
		p.fail(err)
		return
	}
	p.board = board
	if p.cursor >= len(board.Visible) {
		p.cursor = len(board.Visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *tasksPane) fail(err error) {
	log.Printf("tasks: %v", err)
	p.status = errorStyle.Render("Error: " + err.Error())
}

// afterMutation reloads the board and starts a confetti burst if the
// service asked for one.
func (p *tasksPane) afterMutation() tea.Cmd {
	p.refresh()
	if !p.burst {
		return nil
	}
	p.burst = false
	return p.confetti.start(p.width)
}

func (p *tasksPane) selected() (tasks.Task, bool) {
	if p.cursor < 0 || p.cursor >= len(p.board.Visible) {
		return tasks.Task{}, false
	}
	return p.board.Visible[p.cursor], true
}

func (p *tasksPane) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case confettiTickMsg:
		return p.confetti.update(m)
	case tea.KeyMsg:
		switch p.mode {
		case taskModeAdd:
			return p.handleFormKey(m)
		case taskModeEdit:
			return p.handleEditKey(m)
		case taskModeSearch:
			return p.handleSearchKey(m)
		case taskModeConfirm:
			return p.handleConfirmKey(m)
		default:
			return p.handleListKey(m)
		}
	}
	return p.updateFocusedInput(msg)
}

// updateFocusedInput forwards non-key messages such as cursor blinks.
func (p *tasksPane) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.mode {
	case taskModeAdd:
		if p.formField == fieldDue {
			p.due, cmd = p.due.Update(msg)
		} else {
			p.text, cmd = p.text.Update(msg)
		}
	case taskModeEdit:
		p.edit, cmd = p.edit.Update(msg)
	case taskModeSearch:
		p.search, cmd = p.search.Update(msg)
	}
	return cmd
}

func (p *tasksPane) handleListKey(m tea.KeyMsg) tea.Cmd {
	b := p.keys.LookupScoped(m.String(), scopeTasks)
	if b == nil {
		return nil
	}
	switch b.Action {
	case actionUp:
		if p.cursor > 0 {
			p.cursor--
		}
	case actionDown:
		if p.cursor < len(p.board.Visible)-1 {
			p.cursor++
		}
	case actionAdd:
		p.mode = taskModeAdd
		p.status = ""
		p.text.SetValue("")
		p.due.SetValue("")
		p.category = p.opts.DefaultCategory.Info().Value
		p.priority = p.opts.DefaultPriority.Info().Value
		return p.focusField(fieldText)
	case actionToggle:
		t, ok := p.selected()
		if !ok {
			return nil
		}
		updated, found, err := p.svc.Toggle(p.ctx, t.ID)
		if err != nil {
			p.fail(err)
			return nil
		}
		if found {
			verb := "Reopened"
			if updated.Completed {
				verb = "Completed"
			}
			p.status = successStyle.Render(fmt.Sprintf("%s %q", verb, updated.Text))
		}
		return p.afterMutation()
	case actionEdit:
		t, ok := p.selected()
		if !ok {
			return nil
		}
		text, err := p.svc.BeginEdit(p.ctx, t.ID)
		if err != nil {
			p.fail(err)
			return nil
		}
		p.mode = taskModeEdit
		p.edit.SetValue(text)
		p.edit.CursorEnd()
		return p.edit.Focus()
	case actionDelete:
		t, ok := p.selected()
		if !ok {
			return nil
		}
		if err := p.svc.Delete(p.ctx, t.ID); err != nil {
			p.fail(err)
			return nil
		}
		p.status = mutedStyle.Render(fmt.Sprintf("Deleted %q", t.Text))
		return p.afterMutation()
	case actionSearch:
		p.mode = taskModeSearch
		p.search.SetValue(p.filter.Search)
		p.search.CursorEnd()
		return p.search.Focus()
	case actionClearSearch:
		if p.filter.Search != "" {
			p.filter.Search = ""
			p.refresh()
		}
	case actionFilterCategory:
		p.filter.Category = nextCategoryFilter(p.filter.Category)
		p.cursor = 0
		p.refresh()
	case actionShowCompleted:
		p.filter.ShowCompleted = !p.filter.ShowCompleted
		p.refresh()
	case actionClearCompleted:
		if p.board.Stats.Completed == 0 {
			p.status = mutedStyle.Render("No completed tasks to clear")
			return nil
		}
		p.mode = taskModeConfirm
	}
	return nil
}

func (p *tasksPane) focusField(field int) tea.Cmd {
	p.formField = field
	if field == fieldDue {
		p.text.Blur()
		return p.due.Focus()
	}
	p.due.Blur()
	return p.text.Focus()
}

func (p *tasksPane) handleFormKey(m tea.KeyMsg) tea.Cmd {
	if b := p.keys.LookupScoped(m.String(), scopeTaskForm); b != nil {
		switch b.Action {
		case actionSubmit:
			return p.submitForm()
		case actionNextField:
			return p.focusField(1 - p.formField)
		case actionCycleCategory:
			p.category = nextCategory(p.category)
			return nil
		case actionCyclePriority:
			p.priority = nextPriority(p.priority)
			return nil
		case actionCancel:
			p.closeForm()
			return nil
		}
	}
	var cmd tea.Cmd
	if p.formField == fieldDue {
		p.due, cmd = p.due.Update(m)
	} else {
		p.text, cmd = p.text.Update(m)
	}
	return cmd
}

func (p *tasksPane) closeForm() {
	p.mode = taskModeList
	p.text.Blur()
	p.due.Blur()
}

func (p *tasksPane) submitForm() tea.Cmd {
	res, err := p.svc.Create(p.ctx, service.Draft{
		Text:     p.text.Value(),
		Category: p.category,
		Priority: p.priority,
		Due:      p.due.Value(),
	})
	if errors.Is(err, service.ErrInvalidDueDate) {
		p.status = errorStyle.Render(err.Error())
		return p.focusField(fieldDue)
	}
	if err != nil {
		p.fail(err)
		return nil
	}
	if !res.Created {
		return nil
	}
	p.closeForm()
	p.status = successStyle.Render(fmt.Sprintf("Added %q", res.Task.Text))
	if len(res.Similar) > 0 {
		p.status += warningStyle.Render(fmt.Sprintf("  (similar to %q)", res.Similar[0].Text))
	}
	p.filter.Search = ""
	p.cursor = 0
	return p.afterMutation()
}

func (p *tasksPane) handleEditKey(m tea.KeyMsg) tea.Cmd {
	if b := p.keys.LookupScoped(m.String(), scopeTaskEdit); b != nil {
		switch b.Action {
		case actionSubmit:
			p.mode = taskModeList
			p.edit.Blur()
			changed, err := p.svc.ConfirmEdit(p.ctx, p.edit.Value())
			if err != nil {
				p.fail(err)
				return nil
			}
			if changed {
				p.status = successStyle.Render("Task updated")
			}
			p.refresh()
			return nil
		case actionCancel:
			p.mode = taskModeList
			p.edit.Blur()
			p.svc.CancelEdit()
			return nil
		}
	}
	var cmd tea.Cmd
	p.edit, cmd = p.edit.Update(m)
	return cmd
}

func (p *tasksPane) handleSearchKey(m tea.KeyMsg) tea.Cmd {
	if b := p.keys.LookupScoped(m.String(), scopeTaskSearch); b != nil {
		switch b.Action {
		case actionSubmit:
			p.mode = taskModeList
			p.search.Blur()
			return nil
		case actionCancel:
			p.mode = taskModeList
			p.search.Blur()
			p.search.SetValue("")
			p.filter.Search = ""
			p.refresh()
			return nil
		}
	}
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(m)
	p.filter.Search = p.search.Value()
	p.cursor = 0
	p.refresh()
	return cmd
}

func (p *tasksPane) handleConfirmKey(m tea.KeyMsg) tea.Cmd {
	b := p.keys.LookupScoped(m.String(), scopeConfirm)
	if b == nil {
		return nil
	}
	p.mode = taskModeList
	if b.Action != actionConfirm {
		return nil
	}
	n, err := p.maint.ClearCompleted(p.ctx)
	if err != nil {
		p.fail(err)
		return nil
	}
	p.status = successStyle.Render(fmt.Sprintf("Cleared %d completed tasks", n))
	p.refresh()
	return nil
}

func nextCategoryFilter(c tasks.Category) tasks.Category {
	order := []tasks.Category{tasks.CategoryAll}
	for _, info := range tasks.Categories() {
		order = append(order, info.Value)
	}
	for i, v := range order {
		if v == c {
			return order[(i+1)%len(order)]
		}
	}
	return tasks.CategoryAll
}

func nextCategory(c tasks.Category) tasks.Category {
	all := tasks.Categories()
	for i, info := range all {
		if info.Value == c {
			return all[(i+1)%len(all)].Value
		}
	}
	return all[0].Value
}

func nextPriority(p tasks.Priority) tasks.Priority {
	all := tasks.Priorities()
	for i, info := range all {
		if info.Value == p {
			return all[(i+1)%len(all)].Value
		}
	}
	return all[0].Value
}

func categoryFilterLabel(c tasks.Category) string {
	if c == tasks.CategoryAll {
		return "All"
	}
	info := c.Info()
	return info.Icon + " " + info.Label
}

func (p *tasksPane) View(width, _ int) string {
	p.width = max(width, 20)
	var b strings.Builder

	b.WriteString(p.renderStats())
	b.WriteString("\n")
	b.WriteString(p.renderFilterBar())
	b.WriteString("\n\n")

	switch p.mode {
	case taskModeAdd:
		b.WriteString(p.renderForm())
		b.WriteString("\n\n")
	case taskModeConfirm:
		b.WriteString(warningStyle.Render(fmt.Sprintf("Clear %d completed tasks? (y/n)", p.board.Stats.Completed)))
		b.WriteString("\n\n")
	}

	b.WriteString(p.renderList())
	if p.status != "" {
		b.WriteString("\n\n")
		b.WriteString(p.status)
	}
	return p.confetti.render(b.String(), p.width)
}

func (p *tasksPane) renderStats() string {
	s := p.board.Stats
	cell := func(label string, n int, style lipgloss.Style) string {
		return style.Render(fmt.Sprintf("%s %d", label, n))
	}
	return strings.Join([]string{
		cell("Total Tasks", s.Total, infoStyle),
		cell("Completed", s.Completed, successStyle),
		cell("Pending", s.Pending, warningStyle),
		cell("Overdue", s.Overdue, errorStyle),
	}, mutedStyle.Render("  │  "))
}

func (p *tasksPane) renderFilterBar() string {
	parts := []string{"Category: " + categoryFilterLabel(p.filter.Category)}
	if p.mode == taskModeSearch {
		parts = append(parts, "Search: "+p.search.View())
	} else if p.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", p.filter.Search))
	}
	if p.filter.ShowCompleted {
		parts = append(parts, "Completed: shown")
	} else {
		parts = append(parts, "Completed: hidden")
	}
	return strings.Join(parts, mutedStyle.Render("  ·  "))
}

func (p *tasksPane) renderForm() string {
	label := func(field int, s string) string {
		if p.mode == taskModeAdd && p.formField == field {
			return headingStyle.Render(s)
		}
		return mutedStyle.Render(s)
	}
	cat := p.category.Info()
	pri := p.priority.Info()
	lines := []string{
		titleStyle.Render("New task"),
		label(fieldText, "Task: ") + p.text.View(),
		label(fieldDue, "Due:  ") + p.due.View(),
		fmt.Sprintf("%s %s  %s %s",
			mutedStyle.Render("Category (ctrl+g):"), lipgloss.NewStyle().Foreground(categoryColor(cat.Value)).Render(cat.Icon+" "+cat.Label),
			mutedStyle.Render("Priority (ctrl+p):"), lipgloss.NewStyle().Foreground(priorityColor(pri.Value)).Render(pri.Icon+" "+pri.Label)),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (p *tasksPane) renderList() string {
	if len(p.board.Visible) == 0 {
		if len(p.board.All) == 0 {
			return mutedStyle.Render("Ready to start your journey? Press a to add a task.")
		}
		return mutedStyle.Render("No tasks match your filters.")
	}
	editingID, editing := p.svc.Editing()
	rows := make([]string, 0, len(p.board.Visible))
	for i, t := range p.board.Visible {
		if editing && t.ID == editingID && p.mode == taskModeEdit {
			rows = append(rows, "> "+headingStyle.Render("edit: ")+p.edit.View())
			continue
		}
		rows = append(rows, p.renderRow(t, i == p.cursor))
	}
	return strings.Join(rows, "\n")
}

func (p *tasksPane) renderRow(t tasks.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = successStyle.Render("[x]")
	}
	pri := t.Priority.Info()
	cat := t.Category.Info()
	prefix := fmt.Sprintf("%s %s %s ", check,
		lipgloss.NewStyle().Foreground(priorityColor(pri.Value)).Render(pri.Icon),
		cat.Icon)

	due := ""
	if d, ok := t.DueDate(p.board.Now.Location()); ok {
		short := p.locale.ShortDate(d)
		if t.Overdue(p.board.Now) {
			due = errorStyle.Render("overdue " + short)
		} else {
			due = mutedStyle.Render("due " + short)
		}
	}

	room := p.width - 2 - ansi.StringWidth(prefix) - ansi.StringWidth(due) - 1
	text := truncate(t.Text, max(room, 8))
	if t.Completed {
		text = mutedStyle.Strikethrough(true).Render(text)
	}
	line := prefix + text
	if due != "" {
		line = padRight(line, p.width-2-ansi.StringWidth(due)) + due
	}
	if selected {
		return selectedStyle.Render(">") + " " + line
	}
	return "  " + line
}
