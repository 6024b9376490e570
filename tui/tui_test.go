package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidplay/vidplay/backend"
	"github.com/vidplay/vidplay/key"
	"github.com/vidplay/vidplay/pipeline"
	"github.com/vidplay/vidplay/pipeline/pipelinetest"
	"github.com/vidplay/vidplay/shell"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeymap(t *testing.T) {
	Convey("Given the keymap", t, func() {
		k := newKeymap()

		Convey("Playback keys map to shell events", func() {
			cases := []struct {
				msg  tea.KeyMsg
				kind shell.Kind
			}{
				{tea.KeyMsg{Type: tea.KeySpace}, shell.KeyPause},
				{runes("r"), shell.KeyReset},
				{tea.KeyMsg{Type: tea.KeyRight}, shell.KeySeekForward},
				{tea.KeyMsg{Type: tea.KeyLeft}, shell.KeySeekBackward},
				{runes("f"), shell.KeyFullscreen},
				{runes("s"), shell.ClickStop},
				{runes("p"), shell.ClickPlay},
				{runes("q"), shell.KeyQuit},
				{tea.KeyMsg{Type: tea.KeyCtrlC}, shell.KeyQuit},
			}

			for _, c := range cases {
				ev, ok := k.event(c.msg)
				So(ok, ShouldBeTrue)
				So(ev.Kind, ShouldEqual, c.kind)
			}
		})

		Convey("Digits jump to tenths of the media", func() {
			ev, ok := k.event(runes("7"))
			So(ok, ShouldBeTrue)
			So(ev.Kind, ShouldEqual, shell.SliderDrag)
			So(ev.Value, ShouldEqual, 70)
		})

		Convey("Focus keys are not events", func() {
			_, ok := k.event(tea.KeyMsg{Type: tea.KeyTab})
			So(ok, ShouldBeFalse)
		})
	})
}

func TestBubble(t *testing.T) {
	Convey("Given a bubble over a fake engine", t, func() {
		engine := &pipelinetest.Engine{}
		b := backend.New(engine)
		So(b.Init(), ShouldBeNil)

		bubble := newBubble(&Options{
			URI:          "file:///tmp/video.mp4",
			Backend:      b,
			SeekStep:     10 * time.Second,
			PollInterval: time.Second,
			ShowTime:     true,
		})
		bubble.resize(100, 30)

		start := func() {
			_, cmd := bubble.Update(initialPlayMsg{})
			So(cmd, ShouldNotBeNil)
			_, cmd = bubble.Update(cmd())
			So(cmd, ShouldBeNil)
		}

		Convey("The initial play starts the media", func() {
			start()

			So(bubble.shell.Playing(), ShouldBeTrue)
			So(engine.Last().URI(), ShouldEqual, "file:///tmp/video.mp4")
			So(bubble.View(), ShouldContainSubstring, "Pause")
		})

		Convey("Starting fullscreen hides the controls", func() {
			bubble.options.Fullscreen = true
			start()

			So(bubble.shell.ControlsVisible(), ShouldBeFalse)
			So(engine.Last().Fullscreen(), ShouldBeTrue)
		})

		Convey("Space toggles the pause label", func() {
			start()
			bubble.Update(tea.KeyMsg{Type: tea.KeySpace})

			So(bubble.shell.PauseLabel(), ShouldEqual, "Resume")
			So(bubble.View(), ShouldContainSubstring, "Resume")
		})

		Convey("Enter presses the focused button", func() {
			start()
			bubble.Update(tea.KeyMsg{Type: tea.KeyTab})
			bubble.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(bubble.shell.Paused(), ShouldBeTrue)

			bubble.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
			bubble.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
			So(bubble.focus, ShouldEqual, len(buttons)-1)
		})

		Convey("Ticks move the seek bar once the duration is known", func() {
			start()
			p := engine.Last()
			p.SetDuration(100 * time.Second)
			p.SetPosition(40 * time.Second)

			_, cmd := bubble.Update(tickMsg(time.Now()))
			So(cmd, ShouldNotBeNil)
			So(bubble.shell.Slider(), ShouldEqual, 40)
			So(bubble.View(), ShouldContainSubstring, "00:40 / 01:40")
		})

		Convey("A pipeline error is shown", func() {
			start()
			engine.Last().Send(pipeline.Message{Kind: pipeline.MessageError, Err: pipeline.ErrPlayback})

			msg := bubble.waitForMessage()()
			_, cmd := bubble.Update(msg)
			So(cmd, ShouldNotBeNil)
			So(bubble.shell.Playing(), ShouldBeFalse)
			So(bubble.View(), ShouldContainSubstring, pipeline.ErrPlayback.Error())
		})

		Convey("A config reload keeps the seek step positive", func() {
			viper.Set(key.PlayerSeekStep, 0)
			bubble.applyConfig()
			So(bubble.options.SeekStep, ShouldEqual, 10*time.Second)
			So(bubble.shell.SeekStep(), ShouldEqual, 10*time.Second)

			viper.Set(key.PlayerSeekStep, 5)
			bubble.applyConfig()
			So(bubble.options.SeekStep, ShouldEqual, 5*time.Second)
			So(bubble.shell.SeekStep(), ShouldEqual, 5*time.Second)

			Reset(func() {
				viper.Set(key.PlayerSeekStep, 10)
			})
		})

		Convey("Stop during startup is applied when the start reports back", func() {
			_, playCmd := bubble.Update(initialPlayMsg{})
			So(playCmd, ShouldNotBeNil)
			bubble.Update(runes("s"))
			So(bubble.shell.Status(), ShouldEqual, "Stopping")

			bubble.Update(playCmd())
			So(bubble.shell.Playing(), ShouldBeFalse)
			So(engine.Alive(), ShouldEqual, 0)
		})

		Convey("q quits", func() {
			_, cmd := bubble.Update(runes("q"))
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldHaveSameTypeAs, tea.QuitMsg{})
		})
	})
}
