// Package tui provides the Bubble Tea host for the platformer.
// It handles the terminal UI loop, input mapping, persistence of results
// and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// LevelsChangedMsg reports an edited level file.
type LevelsChangedMsg struct {
	Path string
}

type levelWatchErrMsg struct{ err error }

// watchLevels waits for the next watcher report. It returns nil once the
// watcher is closed.
func watchLevels(w *levels.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return LevelsChangedMsg{Path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return levelWatchErrMsg{err: err}
		}
	}
}
