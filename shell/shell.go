// Package shell is the player's presentation logic, free of any toolkit.
//
// Every user action, timer tick and pipeline message is an Event; Dispatch
// applies it to the Controller and updates what the view should show.
package shell

import (
	"errors"
	"time"

	"github.com/samber/mo"
	"github.com/vidplay/vidplay/backend"
	"github.com/vidplay/vidplay/log"
	"github.com/vidplay/vidplay/pipeline"
	"github.com/vidplay/vidplay/util"
)

const DefaultSeekStep = 10 * time.Second

const (
	LabelPause  = "Pause"
	LabelResume = "Resume"
)

// Controller is the playback surface the shell drives. *backend.Backend implements it.
type Controller interface {
	Pause() error
	Resume() error
	Stop()
	Reset() error
	Seek(delta time.Duration) error
	SeekAbsolute(position time.Duration) error
	Position() mo.Option[time.Duration]
	Duration() mo.Option[time.Duration]
	SetFullscreen(fullscreen bool) error
	Handle(msg backend.Message) bool
}

var _ Controller = (*backend.Backend)(nil)

type Shell struct {
	ctl      Controller
	seekStep time.Duration

	starting   bool
	playing    bool

	// Requested while starting; the controller is busy until Started arrives.
	stopPending       bool
	fullscreenPending bool


	paused     bool
	fullscreen bool
	controls   bool

	duration mo.Option[time.Duration]
	position time.Duration
	slider   float64

	status  string
	lastErr error
}

func New(ctl Controller) *Shell {
	return &Shell{
		ctl:      ctl,
		seekStep: DefaultSeekStep,
		controls: true,
		duration: mo.None[time.Duration](),
		status:   "Stopped",
	}
}

// SetSeekStep changes the relative seek distance. Non-positive steps are ignored.
func (s *Shell) SetSeekStep(step time.Duration) {
	if step > 0 {
		s.seekStep = step
	}
}

func (s *Shell) SeekStep() time.Duration { return s.seekStep }

func (s *Shell) Dispatch(ev Event) Effect {
	switch ev.Kind {
	case ClickPlay:
		return s.play()
	case Started:
		s.started(ev.Err)
	case ClickPause, KeyPause:
		s.togglePause()
	case ClickStop:
		s.stop()
	case ClickReset, KeyReset:
		s.reset()
	case KeySeekForward:
		s.seek(s.seekStep)
	case KeySeekBackward:
		s.seek(-s.seekStep)
	case ClickFullscreen, KeyFullscreen:
		s.toggleFullscreen()
	case SliderDrag:
		s.drag(ev.Value)
	case TimerTick:
		s.tick()
	case BusMessage:
		s.bus(ev.Message)
	case KeyQuit:
		return EffectQuit
	}
	return EffectNone
}

func (s *Shell) play() Effect {
	if s.starting {
		if s.stopPending {
			s.stopPending = false
			s.status = "Opening"
		}
		return EffectNone
	}

	s.clear()
	s.starting = true
	s.status = "Opening"
	return EffectPlay
}

func (s *Shell) started(err error) {
	stop := s.stopPending
	s.starting = false
	s.stopPending = false

	switch {
	case err != nil:
		s.clear()
		s.fail(err)
	case stop:
		s.ctl.Stop()
		s.clear()
		s.status = "Stopped"
	default:
		s.playing = true
		s.paused = false
		s.lastErr = nil
		s.status = "Playing"
	}

	s.flushFullscreen()
}

// stop is deferred while a start is in flight.
func (s *Shell) stop() {
	if s.starting {
		s.stopPending = true
		s.status = "Stopping"
		return
	}

	s.ctl.Stop()
	s.clear()
	s.status = "Stopped"
}

func (s *Shell) togglePause() {
	if !s.playing {
		return
	}

	if s.paused {
		if err := s.ctl.Resume(); err != nil {
			s.fail(err)
			return
		}
		s.paused = false
		s.status = "Playing"
		return
	}

	if err := s.ctl.Pause(); err != nil {
		s.fail(err)
		return
	}
	s.paused = true
	s.status = "Paused"
}

func (s *Shell) reset() {
	if !s.playing {
		return
	}

	if err := s.ctl.Reset(); err != nil {
		s.fail(err)
		return
	}
	s.position = 0
	s.slider = 0
}

func (s *Shell) seek(delta time.Duration) {
	if !s.playing {
		return
	}

	err := s.ctl.Seek(delta)
	switch {
	case err == nil:
	case errors.Is(err, pipeline.ErrNotReady):
		log.Debug("seek ignored, position unknown")
	default:
		s.fail(err)
	}
}

func (s *Shell) toggleFullscreen() {
	want := !s.fullscreen
	if s.starting {
		s.fullscreenPending = !s.fullscreenPending
		s.fullscreen = want
		s.controls = !want
		return
	}

	if err := s.ctl.SetFullscreen(want); err != nil {
		s.fail(err)
		return
	}

	s.fullscreen = want
	s.controls = !want
}

// flushFullscreen hands a toggle made while starting to the controller.
func (s *Shell) flushFullscreen() {
	if !s.fullscreenPending {
		return
	}
	s.fullscreenPending = false

	if err := s.ctl.SetFullscreen(s.fullscreen); err != nil {
		s.fullscreen = !s.fullscreen
		s.controls = !s.fullscreen
		s.fail(err)
	}
}

func (s *Shell) drag(value float64) {
	if !s.playing {
		return
	}

	d, ok := s.knownDuration().Get()
	if !ok {
		return
	}

	value = util.Clamp(value, 0, 100)
	target := time.Duration(value / 100 * float64(d))
	if err := s.ctl.SeekAbsolute(target); err != nil {
		s.fail(err)
		return
	}

	s.slider = value
	s.position = target
}

func (s *Shell) tick() {
	if !s.playing {
		return
	}

	d, known := s.knownDuration().Get()

	pos, ok := s.ctl.Position().Get()
	if !ok {
		return
	}
	s.position = pos

	if known {
		s.slider = util.Clamp(float64(pos)*100/float64(d), 0, 100)
	}
}

// knownDuration returns the cached duration, querying the controller until it becomes valid.
func (s *Shell) knownDuration() mo.Option[time.Duration] {
	if s.duration.IsPresent() {
		return s.duration
	}

	if d, ok := s.ctl.Duration().Get(); ok && d > 0 {
		s.duration = mo.Some(d)
	}
	return s.duration
}

func (s *Shell) bus(msg backend.Message) {
	if !s.ctl.Handle(msg) {
		return
	}

	switch msg.Kind {
	case pipeline.MessageEOS:
		s.status = "End of stream"
	case pipeline.MessageError:
		s.clear()
		s.fail(msg.Err)
	}
}

// clear forgets everything about the current media.
func (s *Shell) clear() {
	s.starting = false
	s.stopPending = false
	s.playing = false
	s.paused = false
	s.duration = mo.None[time.Duration]()
	s.position = 0
	s.slider = 0
}

func (s *Shell) fail(err error) {
	log.Errorf("shell: %s", err)
	s.lastErr = err
	s.status = "Error"
}

func (s *Shell) Starting() bool { return s.starting }

// Playing reports whether media is loaded, paused or not.
func (s *Shell) Playing() bool { return s.playing }

func (s *Shell) Paused() bool { return s.paused }

// PauseLabel is the caption of the pause toggle.
func (s *Shell) PauseLabel() string {
	if s.paused {
		return LabelResume
	}
	return LabelPause
}

func (s *Shell) Fullscreen() bool { return s.fullscreen }

// ControlsVisible is false exactly while fullscreen.
func (s *Shell) ControlsVisible() bool { return s.controls }

// Slider is the seek bar value in percent.
func (s *Shell) Slider() float64 { return s.slider }

func (s *Shell) Position() time.Duration { return s.position }

func (s *Shell) Duration() mo.Option[time.Duration] { return s.duration }

func (s *Shell) Status() string { return s.status }

// Err is the last error shown to the user, cleared by a successful start.
func (s *Shell) Err() error { return s.lastErr }
