package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasktimer/internal/clock"
	"github.com/jask/tasktimer/internal/stopwatch"
	"github.com/jask/tasktimer/internal/timefmt"
)

type clockTickMsg struct {
	id int
	at time.Time
}

type stopwatchTickMsg struct {
	id int
	at time.Time
}

// clockPane shows the wall clock and a lap-tracking stopwatch. The clock
// tick chain is tagged with clockID and the stopwatch chain with the
// stopwatch's own generation, so unmounting or stopping drops any tick
// already in flight.
type clockPane struct {
	keys    *KeyRegistry
	clock   *clock.Clock
	sw      *stopwatch.Stopwatch
	reading clock.Reading
	clockID int
	mounted bool
}

func newClockPane(keys *KeyRegistry, c *clock.Clock, sw *stopwatch.Stopwatch) *clockPane {
	return &clockPane{keys: keys, clock: c, sw: sw, reading: c.Sample()}
}

const (
	paneClock = "clock"
	paneTasks = "tasks"
)

func (p *clockPane) Name() string    { return paneClock }
func (p *clockPane) Title() string   { return "Clock" }
func (p *clockPane) Scope() string   { return scopeClock }
func (p *clockPane) Capturing() bool { return false }

func (p *clockPane) Mount() tea.Cmd {
	p.mounted = true
	p.clockID++
	p.reading = p.clock.Sample()
	log.Printf("clock: mount")
	return p.clockTick()
}

// Unmount cancels both timers. A running stopwatch is stopped since nothing
// will tick it any more.
func (p *clockPane) Unmount() {
	if !p.mounted {
		return
	}
	p.mounted = false
	p.clockID++
	p.sw.Stop()
	log.Printf("clock: unmount")
}

func (p *clockPane) clockTick() tea.Cmd {
	id := p.clockID
	return tea.Tick(clock.Interval, func(t time.Time) tea.Msg { return clockTickMsg{id: id, at: t} })
}

func (p *clockPane) stopwatchTick() tea.Cmd {
	id := p.sw.ID()
	return tea.Tick(p.sw.Interval(), func(t time.Time) tea.Msg { return stopwatchTickMsg{id: id, at: t} })
}

func (p *clockPane) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case clockTickMsg:
		if !p.mounted || m.id != p.clockID {
			return nil
		}
		p.reading = p.clock.Read(m.at)
		return p.clockTick()
	case stopwatchTickMsg:
		if !p.mounted || !p.sw.Tick(m.id, m.at) {
			return nil
		}
		return p.stopwatchTick()
	case tea.KeyMsg:
		b := p.keys.LookupScoped(m.String(), scopeClock)
		if b == nil {
			return nil
		}
		return p.handleAction(b.Action)
	}
	return nil
}

func (p *clockPane) handleAction(a Action) tea.Cmd {
	switch a {
	case actionStartStop:
		if p.mounted && p.sw.Toggle(p.clock.Now()) {
			return p.stopwatchTick()
		}
	case actionLap:
		p.sw.Lap()
	case actionReset:
		p.sw.Reset()
	}
	return nil
}

func (p *clockPane) View(width, _ int) string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Current Time"))
	b.WriteString("\n")
	b.WriteString(bigTimeStyle.Render(p.reading.Time))
	b.WriteString("\n  ")
	b.WriteString(p.reading.Date)
	b.WriteString("\n  ")
	b.WriteString(mutedStyle.Render(p.reading.Zone))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Stopwatch"))
	b.WriteString("\n")
	b.WriteString(bigTimeStyle.Render(timefmt.Elapsed(p.sw.Elapsed())))
	if p.sw.Running() {
		b.WriteString(successStyle.Render("● running"))
	} else {
		b.WriteString(mutedStyle.Render("○ stopped"))
	}
	b.WriteString("\n  ")
	b.WriteString(p.controls())
	b.WriteString("\n")

	if laps := p.sw.Laps(); len(laps) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Lap Times"))
		b.WriteString("\n")
		for _, l := range laps {
			line := fmt.Sprintf("  Lap %-3d %s", l.Index, timefmt.Elapsed(l.At))
			if l.HasDelta {
				line += infoStyle.Render("  +" + timefmt.Elapsed(l.Delta))
			}
			b.WriteString(truncate(line, max(width, 1)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// controls renders the stopwatch buttons; lap is dimmed while stopped.
func (p *clockPane) controls() string {
	startStop := successStyle.Render("[s] start")
	if p.sw.Running() {
		startStop = warningStyle.Render("[s] stop")
	}
	lap := infoStyle.Render("[l] lap")
	if !p.sw.Running() {
		lap = mutedStyle.Render("[l] lap (disabled)")
	}
	return strings.Join([]string{startStop, lap, errorStyle.Render("[r] reset")}, "  ")
}
