// Package tui runs the engine in a terminal: a Bubble Tea frame loop feeding
// Engine.Update, a lipgloss renderer for snapshots, a particle system for
// answer effects, a question bank browser and a wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock converts tick timestamps into frame deltas in milliseconds.
// The first tick after a (re)start yields the nominal frame length.
type frameClock struct {
	last    time.Time
	nominal float64
}

func newFrameClock(tickRate int) frameClock {
	return frameClock{nominal: 1000 / float64(max(tickRate, 1))}
}

// delta returns the milliseconds since the previous tick and records t.
func (c *frameClock) delta(t time.Time) float64 {
	if c.last.IsZero() || !t.After(c.last) {
		c.last = t
		return c.nominal
	}
	d := float64(t.Sub(c.last)) / float64(time.Millisecond)
	c.last = t
	return d
}

// reset forgets the previous tick so a pause does not become one long frame.
func (c *frameClock) reset() {
	c.last = time.Time{}
}
