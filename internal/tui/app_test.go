package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/tasktimer/internal/clock"
	"github.com/jask/tasktimer/internal/service"
	"github.com/jask/tasktimer/internal/stopwatch"
	"github.com/jask/tasktimer/internal/tasks"
	"github.com/jask/tasktimer/internal/timefmt"
)

var testNow = time.Date(2026, 10, 19, 23, 4, 5, 0, time.UTC)

func newTestApp(t *testing.T, startTab string) *App {
	return newAppWith(t, startTab, false)
}

// newCelebratingApp enables confetti, which draws over the rendered view.
func newCelebratingApp(t *testing.T, startTab string) *App {
	return newAppWith(t, startTab, true)
}

func newAppWith(t *testing.T, startTab string, celebrate bool) *App {
	t.Helper()
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := func() time.Time { return testNow }
	// Task creation times advance so newest-first ordering is strict.
	taskNow := testNow.In(ny)
	svc := &service.TaskService{Store: service.NewMemoryStore(), Now: func() time.Time {
		taskNow = taskNow.Add(time.Millisecond)
		return taskNow
	}}
	a := New(context.Background(), Options{
		Clock:       clock.New(timefmt.Zone{Name: "America/New_York", Location: ny}, timefmt.DefaultLocale, now),
		Stopwatch:   stopwatch.New(),
		Tasks:       svc,
		Maintenance: &service.MaintenanceService{Store: svc.Store},
		Locale:      timefmt.DefaultLocale,
		TaskOptions: TasksOptions{DefaultCategory: tasks.CategoryPersonal, DefaultPriority: tasks.PriorityMedium, Celebrate: celebrate},
		StartTab:    startTab,
	})
	a.Init()
	return a
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = a.Update(keyMsg(k))
	}
	return cmd
}

func clockOf(a *App) *clockPane {
	for _, p := range a.panes {
		if c, ok := p.(*clockPane); ok {
			return c
		}
	}
	return nil
}

func tasksOf(a *App) *tasksPane {
	for _, p := range a.panes {
		if tp, ok := p.(*tasksPane); ok {
			return tp
		}
	}
	return nil
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestTabSwitching(t *testing.T) {
	a := newTestApp(t, paneTasks)
	require.Equal(t, paneTasks, a.activePane().Name())

	press(a, "1")
	require.Equal(t, paneClock, a.activePane().Name())
	press(a, "2")
	require.Equal(t, paneTasks, a.activePane().Name())
	press(a, "tab")
	require.Equal(t, paneClock, a.activePane().Name())
	require.Contains(t, a.View(), "Current Time")
}

func TestQuitUnmountsPanes(t *testing.T) {
	a := newTestApp(t, paneClock)
	c := clockOf(a)
	press(a, "s")
	require.True(t, c.sw.Running())

	require.True(t, isQuit(press(a, "q")))
	require.False(t, c.mounted)
	require.False(t, c.sw.Running())

	_, cmd := a.Update(clockTickMsg{id: c.clockID, at: testNow})
	require.Nil(t, cmd, "clock tick after unmount must not re-arm")
	_, cmd = a.Update(stopwatchTickMsg{id: c.sw.ID(), at: testNow})
	require.Nil(t, cmd, "stopwatch tick after unmount must not re-arm")
}

func TestCtrlCQuitsWhileTyping(t *testing.T) {
	a := newTestApp(t, paneTasks)
	press(a, "a", "q")
	require.True(t, tasksOf(a).Capturing())
	require.Equal(t, "q", tasksOf(a).text.Value(), "q is typed, not a quit")
	require.True(t, isQuit(press(a, "ctrl+c")))
}

func TestClockTick(t *testing.T) {
	a := newTestApp(t, paneClock)
	c := clockOf(a)
	require.Equal(t, "19:04:05", c.reading.Time)
	require.Equal(t, "Monday, October 19, 2026", c.reading.Date)

	later := testNow.Add(2 * time.Second)
	_, cmd := a.Update(clockTickMsg{id: c.clockID, at: later})
	require.NotNil(t, cmd)
	require.Equal(t, "19:04:07", c.reading.Time)

	_, cmd = a.Update(clockTickMsg{id: c.clockID - 1, at: testNow})
	require.Nil(t, cmd)
	require.Equal(t, "19:04:07", c.reading.Time)

	view := a.View()
	require.Contains(t, view, "19:04:07")
	require.Contains(t, view, "America/New_York")
}

func TestStopwatchArming(t *testing.T) {
	a := newTestApp(t, paneClock)
	c := clockOf(a)
	require.Contains(t, a.View(), "lap (disabled)")

	require.NotNil(t, press(a, "s"), "start arms a tick")
	armed := c.sw.ID()
	for i := 0; i < 5; i++ {
		_, cmd := a.Update(stopwatchTickMsg{id: armed, at: testNow})
		require.NotNil(t, cmd)
	}
	require.Equal(t, 50*time.Millisecond, c.sw.Elapsed())

	press(a, "l")
	require.Len(t, c.sw.Laps(), 1)
	require.NotContains(t, a.View(), "lap (disabled)")

	require.Nil(t, press(a, "space"), "stop does not arm")
	_, cmd := a.Update(stopwatchTickMsg{id: armed, at: testNow})
	require.Nil(t, cmd)
	require.Equal(t, 50*time.Millisecond, c.sw.Elapsed())

	// Restarting bumps the generation, so the old chain stays dead.
	require.NotNil(t, press(a, "s"))
	_, cmd = a.Update(stopwatchTickMsg{id: armed, at: testNow})
	require.Nil(t, cmd)
	require.Equal(t, 50*time.Millisecond, c.sw.Elapsed())

	press(a, "r")
	require.False(t, c.sw.Running())
	require.Zero(t, c.sw.Elapsed())
	require.Empty(t, c.sw.Laps())
	require.Contains(t, a.View(), "00:00.00")
}

func TestStopwatchLapsView(t *testing.T) {
	a := newTestApp(t, paneClock)
	c := clockOf(a)
	press(a, "s")
	tick := func(n int) {
		for i := 0; i < n; i++ {
			a.Update(stopwatchTickMsg{id: c.sw.ID(), at: testNow})
		}
	}
	tick(100)
	press(a, "l")
	tick(200)
	press(a, "l")

	view := a.View()
	require.Contains(t, view, "Lap Times")
	require.Contains(t, view, "00:01.00")
	require.Contains(t, view, "00:03.00")
	require.Contains(t, view, "+00:02.00")
}
