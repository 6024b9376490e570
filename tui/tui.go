// Package tui provides the terminal control surface for a running backend.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidplay/vidplay/backend"
	"github.com/vidplay/vidplay/config"
	"github.com/vidplay/vidplay/log"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// URI is the media started once the program is up.
	URI string

	Backend *backend.Backend

	Fullscreen   bool
	SeekStep     time.Duration
	PollInterval time.Duration
	ShowTime     bool
}

// Run blocks until the user quits. Playback is stopped before it returns.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer options.Backend.Stop()

	if config.Watch(bubble.notifyReload) {
		log.Info("watching config for changes")
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
