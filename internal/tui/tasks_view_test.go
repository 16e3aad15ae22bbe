package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/tasktimer/internal/tasks"
)

func addTask(t *testing.T, a *App, text string, extra ...string) {
	t.Helper()
	press(a, "a", text)
	press(a, extra...)
	press(a, "enter")
}

func visibleTexts(p *tasksPane) []string {
	out := make([]string, 0, len(p.board.Visible))
	for _, tk := range p.board.Visible {
		out = append(out, tk.Text)
	}
	return out
}

func TestTasksEmptyState(t *testing.T) {
	a := newTestApp(t, paneTasks)
	require.Contains(t, a.View(), "Ready to start your journey?")

	addTask(t, a, "Buy milk")
	press(a, "/", "zzz")
	require.Contains(t, a.View(), "No tasks match your filters.")
}

func TestTasksAddFlow(t *testing.T) {
	a := newCelebratingApp(t, paneTasks)
	p := tasksOf(a)

	cmd := press(a, "a", "Buy milk", "ctrl+g", "ctrl+p", "enter")
	require.NotNil(t, cmd, "create starts a confetti burst")
	require.Equal(t, taskModeList, p.mode)
	require.Len(t, p.board.All, 1)
	got := p.board.All[0]
	require.Equal(t, "Buy milk", got.Text)
	require.Equal(t, tasks.CategoryWork, got.Category)
	require.Equal(t, tasks.PriorityHigh, got.Priority)
	require.True(t, p.confetti.active())
	require.Len(t, p.confetti.pieces, confettiPieces)
	p.confetti.stop()
	require.Contains(t, a.View(), `Added "Buy milk"`)
	require.Equal(t, 1, p.board.Stats.Total)
}

func TestTasksBlankSubmitIsIgnored(t *testing.T) {
	a := newTestApp(t, paneTasks)
	p := tasksOf(a)
	press(a, "a", "   ", "enter")
	require.Equal(t, taskModeAdd, p.mode)
	require.Empty(t, p.board.All)
	press(a, "esc")
	require.Equal(t, taskModeList, p.mode)
}

func TestTasksInvalidDueDate(t *testing.T) {
	a := newTestApp(t, paneTasks)
	p := tasksOf(a)
	press(a, "a", "Pay rent", "tab", "soon", "enter")
	require.Equal(t, taskModeAdd, p.mode)
	require.Equal(t, fieldDue, p.formField)
	require.Empty(t, p.board.All)
	require.Contains(t, a.View(), "due date must be YYYY-MM-DD")
}

func TestTasksOverdueRow(t *testing.T) {
	a := newTestApp(t, paneTasks)
	p := tasksOf(a)
	addTask(t, a, "Renew passport", "tab", "2026-10-17")
	require.Equal(t, 1, p.board.Stats.Overdue)
	require.Contains(t, a.View(), "overdue 10/17/2026")
}

func TestTasksToggleFilterAndClear(t *testing.T) {
	a := newTestApp(t, paneTasks)
	p := tasksOf(a)
	addTask(t, a, "Walk dog")
	addTask(t, a, "Write report", "ctrl+g")
	addTask(t, a, "Standup notes", "ctrl+g")
	require.Equal(t, []string{"Standup notes", "Write report", "Walk dog"}, visibleTexts(p))

	// Complete the top task; it sinks below the incomplete ones.
	press(a, "space")
	require.Equal(t, []string{"Write report", "Walk dog", "Standup notes"}, visibleTexts(p))
	require.Equal(t, tasks.Stats{Total: 3, Completed: 1, Pending: 2}, p.board.Stats)

	press(a, "c", "c") // all -> personal -> work
	require.Equal(t, tasks.CategoryWork, p.filter.Category)
	press(a, "h")
	require.Equal(t, []string{"Write report"}, visibleTexts(p))

	press(a, "c", "c", "c", "c", "h")
	require.Equal(t, tasks.CategoryAll, p.filter.Category)

	press(a, "C")
	require.Equal(t, taskModeConfirm, p.mode)
	press(a, "n")
	require.Len(t, p.board.All, 3)
	press(a, "C", "y")
	require.Len(t, p.board.All, 2)
	require.Contains(t, a.View(), "Cleared 1 completed tasks")
}

func TestTasksEditFlow(t *testing.T) {
	a := newTestApp(t, paneTasks)
	p := tasksOf(a)
	addTask(t, a, "Buy milk")

	press(a, "e")
	require.Equal(t, taskModeEdit, p.mode)
	id, editing := p.svc.Editing()
	require.True(t, editing)
	require.Equal(t, p.board.Visible[0].ID, id)

	press(a, " today", "enter")
	require.Equal(t, "Buy milk today", p.board.All[0].Text)
	_, editing = p.svc.Editing()
	require.False(t, editing)

	press(a, "e", " later", "esc")
	require.Equal(t, "Buy milk today", p.board.All[0].Text)
	require.Equal(t, taskModeList, p.mode)
}

func TestTasksSearchAndDelete(t *testing.T) {
	a := newTestApp(t, paneTasks)
	p := tasksOf(a)
	addTask(t, a, "Buy milk")
	addTask(t, a, "Book dentist")

	press(a, "/", "MILK")
	require.Equal(t, []string{"Buy milk"}, visibleTexts(p))
	press(a, "enter")
	require.Equal(t, taskModeList, p.mode)
	require.Equal(t, "MILK", p.filter.Search)

	press(a, "d")
	require.Empty(t, p.board.Visible)
	require.Len(t, p.board.All, 1)

	press(a, "esc")
	require.Equal(t, []string{"Book dentist"}, visibleTexts(p))
}

func TestConfettiLifetime(t *testing.T) {
	c := newConfetti(1)
	require.NotNil(t, c.start(40))
	first := c.id
	require.NotNil(t, c.start(40), "a second burst replaces the first")
	require.Nil(t, c.update(confettiTickMsg{id: first}))

	frames := int(confettiDuration / confettiFrame)
	for i := 0; i < frames-1; i++ {
		require.NotNil(t, c.update(confettiTickMsg{id: c.id}))
	}
	require.Nil(t, c.update(confettiTickMsg{id: c.id}))
	require.False(t, c.active())
	require.Equal(t, "base", c.render("base", 10))
}

func TestNoConfettiWhenDisabled(t *testing.T) {
	a := newTestApp(t, paneTasks)
	require.Nil(t, press(a, "a", "Stretch", "enter"))
	require.False(t, tasksOf(a).confetti.active())
}

func TestUnmountStopsConfetti(t *testing.T) {
	a := newCelebratingApp(t, paneTasks)
	p := tasksOf(a)
	cmd := press(a, "a", "Stretch", "enter")
	require.NotNil(t, cmd)
	id := p.confetti.id

	p.Unmount()
	_, next := a.Update(confettiTickMsg{id: id})
	require.False(t, p.confetti.active())
	require.Nil(t, next)
}

var _ tea.Model = (*App)(nil)
