package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vidplay/vidplay/shell"
)

type keymap struct {
	pause, reset,
	forward, backward,
	fullscreen, stop, play,
	jump,
	next, prev, press,
	showHelp, quit key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		pause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "pause/resume"),
		),
		reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "forward"),
		),
		backward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "back"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play"),
		),
		jump: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "jump to 0-90%"),
		),
		next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next button"),
		),
		prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous button"),
		),
		press: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.pause, k.forward, k.backward, k.fullscreen, k.showHelp, k.quit}
}

func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.pause, k.reset, k.stop, k.play},
		{k.forward, k.backward, k.jump},
		{k.next, k.prev, k.press},
		{k.fullscreen, k.showHelp, k.quit},
	}
}

// event maps a key press straight to a shell event. Focus and help keys are not events.
func (k *keymap) event(msg tea.KeyMsg) (shell.Event, bool) {
	switch {
	case key.Matches(msg, k.quit):
		return shell.On(shell.KeyQuit), true
	case key.Matches(msg, k.pause):
		return shell.On(shell.KeyPause), true
	case key.Matches(msg, k.reset):
		return shell.On(shell.KeyReset), true
	case key.Matches(msg, k.forward):
		return shell.On(shell.KeySeekForward), true
	case key.Matches(msg, k.backward):
		return shell.On(shell.KeySeekBackward), true
	case key.Matches(msg, k.fullscreen):
		return shell.On(shell.KeyFullscreen), true
	case key.Matches(msg, k.stop):
		return shell.On(shell.ClickStop), true
	case key.Matches(msg, k.play):
		return shell.On(shell.ClickPlay), true
	case key.Matches(msg, k.jump):
		digit := msg.String()[0] - '0'
		return shell.DragTo(float64(digit) * 10), true
	default:
		return shell.Event{}, false
	}
}
