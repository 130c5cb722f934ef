// Package tui is the Bubble Tea front end for Cash Merge. It owns every
// timer: cascade pacing and the two event clocks are tea.Tick commands
// tagged with the session generation, so ticks from before a reset are
// dropped instead of rescheduled.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cascadeMsg asks for the next cascade step.
type cascadeMsg struct{ gen uint64 }

// settleMsg ends the display of a merge.
type settleMsg struct{ gen uint64 }

// activationMsg fires the event activation clock.
type activationMsg struct{ gen uint64 }

// countdownMsg fires the one-second event countdown.
type countdownMsg struct{ gen uint64 }

func cascadeCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return cascadeMsg{gen: gen} })
}

func settleCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return settleMsg{gen: gen} })
}

func activationCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return activationMsg{gen: gen} })
}

func countdownCmd(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return countdownMsg{gen: gen} })
}
