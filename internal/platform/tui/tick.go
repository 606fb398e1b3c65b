// Package tui provides the Bubble Tea front end for the game.
// It owns the terminal loop, mouse dragging and the celebration timer; game
// rules live in the session and stage packages.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance animations.
type TickMsg time.Time

// CelebrationDoneMsg ends the celebration started by a hit.
type CelebrationDoneMsg struct {
	// Round guards against stale timers.
	Round int
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// celebrationCmd fires CelebrationDoneMsg after d.
func celebrationCmd(d time.Duration, round int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return CelebrationDoneMsg{Round: round}
	})
}
