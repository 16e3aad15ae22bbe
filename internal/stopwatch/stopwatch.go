// Package stopwatch is the elapsed-time counter behind the stopwatch pane.
//
// The counter never owns a timer. Callers arm a tick for the current
// generation (ID) after Start and feed ticks back through Tick; a tick armed
// under an older generation is rejected, which keeps at most one live tick
// chain no matter how often the user starts and stops.
package stopwatch

import (
	"fmt"
	"time"
)

// DefaultQuantum is added to elapsed time on each running tick.
const DefaultQuantum = 10 * time.Millisecond

// Mode selects how ticks are accumulated.
type Mode string

const (
	// ModeQuantum adds a fixed quantum per tick. Late ticks under-count.
	ModeQuantum Mode = "quantum"
	// ModeWallClock adds the wall-clock delta since the previous tick.
	ModeWallClock Mode = "wallclock"
)

// ParseMode maps a config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQuantum, "":
		return ModeQuantum, nil
	case ModeWallClock:
		return ModeWallClock, nil
	}
	return "", fmt.Errorf("unknown stopwatch accumulation %q", s)
}

// Lap is one recorded lap as displayed.
type Lap struct {
	Index    int
	At       time.Duration
	Delta    time.Duration
	HasDelta bool
}

// Stopwatch holds elapsed time, running state and laps.
type Stopwatch struct {
	quantum  time.Duration
	mode     Mode
	elapsed  time.Duration
	running  bool
	laps     []time.Duration
	id       int
	lastTick time.Time
}

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithQuantum sets the tick interval and per-tick increment.
func WithQuantum(q time.Duration) Option {
	return func(s *Stopwatch) {
		if q > 0 {
			s.quantum = q
		}
	}
}

// WithMode sets the accumulation mode.
func WithMode(m Mode) Option {
	return func(s *Stopwatch) {
		if m != "" {
			s.mode = m
		}
	}
}

// New returns a stopped, zeroed stopwatch.
func New(opts ...Option) *Stopwatch {
	s := &Stopwatch{quantum: DefaultQuantum, mode: ModeQuantum}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Interval is how often the caller should deliver ticks while running.
func (s *Stopwatch) Interval() time.Duration { return s.quantum }

// Mode reports the accumulation mode.
func (s *Stopwatch) Mode() Mode { return s.mode }

// ID is the current arming generation.
func (s *Stopwatch) ID() int { return s.id }

// Elapsed is the accumulated running time.
func (s *Stopwatch) Elapsed() time.Duration { return s.elapsed }

// Running reports whether ticks are being accumulated.
func (s *Stopwatch) Running() bool { return s.running }

// Start begins accumulating. It returns true on the stopped->running
// transition, which is the only time the caller should arm a tick.
func (s *Stopwatch) Start(now time.Time) bool {
	if s.running {
		return false
	}
	s.running = true
	s.id++
	s.lastTick = now
	return true
}

// Stop pauses accumulation and keeps elapsed time. Returns true if it was running.
func (s *Stopwatch) Stop() bool {
	if !s.running {
		return false
	}
	s.running = false
	s.id++
	return true
}

// Toggle starts a stopped stopwatch or stops a running one and reports
// whether a tick needs arming.
func (s *Stopwatch) Toggle(now time.Time) bool {
	if s.running {
		s.Stop()
		return false
	}
	return s.Start(now)
}

// Reset stops the stopwatch, zeroes elapsed time and clears laps.
func (s *Stopwatch) Reset() {
	s.running = false
	s.elapsed = 0
	s.laps = nil
	s.id++
}

// Tick accumulates one tick armed under generation id. It returns true when
// the tick was accepted and the caller should arm the next one.
func (s *Stopwatch) Tick(id int, now time.Time) bool {
	if !s.running || id != s.id {
		return false
	}
	switch s.mode {
	case ModeWallClock:
		if d := now.Sub(s.lastTick); d > 0 {
			s.elapsed += d
		}
		s.lastTick = now
	default:
		s.elapsed += s.quantum
	}
	return true
}

// Lap records the current elapsed time. It is a no-op while stopped.
func (s *Stopwatch) Lap() bool {
	if !s.running {
		return false
	}
	s.laps = append(s.laps, s.elapsed)
	return true
}

// Laps returns recorded laps in order with their delta from the previous lap.
func (s *Stopwatch) Laps() []Lap {
	out := make([]Lap, 0, len(s.laps))
	for i, at := range s.laps {
		l := Lap{Index: i + 1, At: at}
		if i > 0 {
			l.Delta = at - s.laps[i-1]
			l.HasDelta = true
		}
		out = append(out, l)
	}
	return out
}
