package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/vidplay/vidplay/backend"
	"github.com/vidplay/vidplay/shell"
	"github.com/vidplay/vidplay/util"
)

// button is one entry of the control row.
type button struct {
	label func(s *shell.Shell) string
	kind  shell.Kind
}

var buttons = []button{
	{label: func(*shell.Shell) string { return "Play" }, kind: shell.ClickPlay},
	{label: (*shell.Shell).PauseLabel, kind: shell.ClickPause},
	{label: func(*shell.Shell) string { return "Stop" }, kind: shell.ClickStop},
	{label: func(*shell.Shell) string { return "Reset" }, kind: shell.ClickReset},
	{label: func(s *shell.Shell) string {
		if s.Fullscreen() {
			return "Window"
		}
		return "Fullscreen"
	}, kind: shell.ClickFullscreen},
}

type bubble struct {
	shell   *shell.Shell
	backend *backend.Backend
	options *Options
	keymap  *keymap

	helpC     help.Model
	progressC progress.Model

	focus         int
	width, height int

	reload chan struct{}
}

func newBubble(options *Options) *bubble {
	b := &bubble{
		shell:     shell.New(options.Backend),
		backend:   options.Backend,
		options:   options,
		keymap:    newKeymap(),
		helpC:     help.New(),
		progressC: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		reload:    make(chan struct{}, 1),
	}

	b.shell.SetSeekStep(options.SeekStep)

	if w, h, err := util.TerminalSize(); err == nil {
		b.resize(w, h)
	}

	return b
}

func (b *bubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.helpC.Width = b.width
	b.progressC.Width = b.width
}

// moveFocus cycles the focused button by delta.
func (b *bubble) moveFocus(delta int) {
	n := len(buttons)
	b.focus = ((b.focus+delta)%n + n) % n
}

// notifyReload is called by the config watcher from its own goroutine.
func (b *bubble) notifyReload() {
	select {
	case b.reload <- struct{}{}:
	default:
	}
}
