package tui

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	confettiPieces   = 20
	confettiDuration = 3 * time.Second
	confettiFrame    = 100 * time.Millisecond
)

var confettiGlyphs = []string{"*", "✦", "•", "◆", "▲", "●"}

type confettiPiece struct {
	x, y  int
	speed int
	glyph string
	color lipgloss.Color
}

type confettiTickMsg struct{ id int }

// confetti is a short falling-pieces burst drawn over a pane. Each burst
// bumps id so frames from an earlier burst are dropped.
type confetti struct {
	id     int
	frames int
	pieces []confettiPiece
	rng    *rand.Rand
}

func newConfetti(seed int64) *confetti {
	return &confetti{rng: rand.New(rand.NewSource(seed))}
}

func (c *confetti) active() bool { return c.frames > 0 }

// start begins a new burst across width columns and returns its first frame tick.
func (c *confetti) start(width int) tea.Cmd {
	if width <= 0 {
		width = 1
	}
	c.id++
	c.frames = int(confettiDuration / confettiFrame)
	colors := confettiColors()
	c.pieces = make([]confettiPiece, confettiPieces)
	for i := range c.pieces {
		c.pieces[i] = confettiPiece{
			x:     c.rng.Intn(width),
			y:     -c.rng.Intn(4),
			speed: 1 + c.rng.Intn(2),
			glyph: confettiGlyphs[c.rng.Intn(len(confettiGlyphs))],
			color: colors[i%len(colors)],
		}
	}
	return c.tick()
}

// stop ends any burst; in-flight frames become stale.
func (c *confetti) stop() {
	c.id++
	c.frames = 0
	c.pieces = nil
}

func (c *confetti) tick() tea.Cmd {
	id := c.id
	return tea.Tick(confettiFrame, func(time.Time) tea.Msg { return confettiTickMsg{id: id} })
}

// update advances one frame and re-arms while the burst lasts.
func (c *confetti) update(msg confettiTickMsg) tea.Cmd {
	if msg.id != c.id || !c.active() {
		return nil
	}
	c.frames--
	if c.frames == 0 {
		c.pieces = nil
		return nil
	}
	for i := range c.pieces {
		c.pieces[i].y += c.pieces[i].speed
	}
	return c.tick()
}

// render draws the visible pieces over base.
func (c *confetti) render(base string, width int) string {
	if !c.active() {
		return base
	}
	height := len(splitLines(base))
	for _, p := range c.pieces {
		y := p.y % max(height, 1)
		if y < 0 {
			continue
		}
		glyph := lipgloss.NewStyle().Foreground(p.color).Render(p.glyph)
		base = overlayAt(base, glyph, p.x, y, width)
	}
	return base
}
