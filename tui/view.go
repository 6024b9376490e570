package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/vidplay/vidplay/constant"
	"github.com/vidplay/vidplay/icon"
	"github.com/vidplay/vidplay/style"
	"github.com/vidplay/vidplay/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *bubble) View() string {
	lines := []string{
		style.Title(constant.Vidplay) + " " + b.stateIcon() + " " + b.shell.Status(),
		"",
		style.Truncate(b.width)(style.Faint(b.options.URI)),
		"",
		b.progressC.ViewAs(b.shell.Slider() / 100),
	}

	if b.options.ShowTime {
		lines = append(lines, style.Faint(b.clock()))
	}

	lines = append(lines, "")

	if b.shell.ControlsVisible() {
		lines = append(lines, b.viewControls())
	} else {
		lines = append(lines, style.Faint("fullscreen, press f to return"))
	}

	if err := b.shell.Err(); err != nil {
		lines = append(lines, "", wrap.String(style.Fg(style.ErrorColor)(icon.Get(icon.Fail)+" "+err.Error()), b.width))
	}

	return b.renderLines(lines)
}

func (b *bubble) viewControls() string {
	rendered := make([]string, len(buttons))
	for i, btn := range buttons {
		rendered[i] = style.Button(btn.label(b.shell), i == b.focus)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (b *bubble) stateIcon() string {
	switch {
	case b.shell.Starting():
		return icon.Get(icon.Progress)
	case b.shell.Paused():
		return icon.Get(icon.Paused)
	case b.shell.Playing():
		return icon.Get(icon.Playing)
	default:
		return icon.Get(icon.Stopped)
	}
}

// clock renders position / duration, with dashes while the duration is unknown.
func (b *bubble) clock() string {
	total := "--:--"
	if d, ok := b.shell.Duration().Get(); ok {
		total = util.FormatClock(d)
	}
	return fmt.Sprintf("%s / %s", util.FormatClock(b.shell.Position()), total)
}

func (b *bubble) renderLines(lines []string) string {
	h := len(lines) + strings.Count(strings.Join(lines, ""), "\n")
	l := strings.Join(lines, "\n")
	if b.height > h+1 {
		l += strings.Repeat("\n", b.height-h-1)
	}
	l += "\n" + b.helpC.View(b.keymap)

	return paddingStyle.Render(l)
}
