// Package tui provides the Bubble Tea front end for the worm simulation.
// It owns the frame loop, maps keys to player actions and draws the world.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-worms/internal/core"
)

// TickMsg is sent once per frame.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after one frame at the
// given rate.
func tickCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = core.DefaultFrameRate
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
