package tui

import (
	"context"
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/vidplay/vidplay/backend"
	"github.com/vidplay/vidplay/key"
	"github.com/vidplay/vidplay/log"
	"github.com/vidplay/vidplay/shell"
)

const startTimeout = 30 * time.Second

type (
	initialPlayMsg    struct{}
	startedMsg        struct{ err error }
	tickMsg           time.Time
	busMsg            backend.Message
	configReloadedMsg struct{}
)

// Init defers the first Play to the loop so the window handle is already in place.
func (b *bubble) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return initialPlayMsg{} },
		b.tick(),
		b.waitForMessage(),
		b.waitForReload(),
	)
}

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case initialPlayMsg:
		if b.options.Fullscreen {
			b.shell.Dispatch(shell.On(shell.KeyFullscreen))
		}
		return b, b.dispatch(shell.On(shell.ClickPlay))
	case startedMsg:
		return b, b.dispatch(shell.StartedWith(msg.err))
	case tickMsg:
		b.shell.Dispatch(shell.On(shell.TimerTick))
		return b, b.tick()
	case busMsg:
		return b, tea.Batch(b.dispatch(shell.FromBus(backend.Message(msg))), b.waitForMessage())
	case configReloadedMsg:
		b.applyConfig()
		return b, b.waitForReload()
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}

	return b, nil
}

func (b *bubble) handleKey(msg tea.KeyMsg) tea.Cmd {
	if ev, ok := b.keymap.event(msg); ok {
		return b.dispatch(ev)
	}

	switch {
	case bubblesKey.Matches(msg, b.keymap.next):
		b.moveFocus(1)
	case bubblesKey.Matches(msg, b.keymap.prev):
		b.moveFocus(-1)
	case bubblesKey.Matches(msg, b.keymap.press):
		return b.dispatch(shell.On(buttons[b.focus].kind))
	case bubblesKey.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return nil
}

// dispatch feeds ev to the shell and turns the resulting effect into a command.
func (b *bubble) dispatch(ev shell.Event) tea.Cmd {
	switch b.shell.Dispatch(ev) {
	case shell.EffectPlay:
		return b.play()
	case shell.EffectQuit:
		return tea.Quit
	default:
		return nil
	}
}

// play starts the backend off the loop; mpv startup blocks on its socket.
func (b *bubble) play() tea.Cmd {
	uri := b.options.URI
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
		defer cancel()

		return startedMsg{err: b.backend.Play(ctx, uri)}
	}
}

func (b *bubble) tick() tea.Cmd {
	return tea.Tick(b.options.PollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *bubble) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		return busMsg(<-b.backend.Messages())
	}
}

func (b *bubble) waitForReload() tea.Cmd {
	return func() tea.Msg {
		<-b.reload
		return configReloadedMsg{}
	}
}

// applyConfig picks up the settings that can change while playing.
func (b *bubble) applyConfig() {
	if step := viper.GetInt(key.PlayerSeekStep); step > 0 {
		b.options.SeekStep = time.Duration(step) * time.Second
	}
	b.options.ShowTime = viper.GetBool(key.TUIShowTime)
	if ms := viper.GetInt(key.PlayerPollInterval); ms > 0 {
		b.options.PollInterval = time.Duration(ms) * time.Millisecond
	}

	b.shell.SetSeekStep(b.options.SeekStep)
	log.Infof("config reloaded: seek step %s, poll %s", b.options.SeekStep, b.options.PollInterval)
}
