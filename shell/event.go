package shell

import "github.com/vidplay/vidplay/backend"

// Kind enumerates everything the shell reacts to.
type Kind int

const (
	ClickPlay Kind = iota
	ClickPause
	ClickStop
	ClickReset
	ClickFullscreen
	KeyPause
	KeyReset
	KeySeekForward
	KeySeekBackward
	KeyFullscreen
	KeyQuit
	SliderDrag
	TimerTick
	Started
	BusMessage
)

var kindNames = map[Kind]string{
	ClickPlay:       "click-play",
	ClickPause:      "click-pause",
	ClickStop:       "click-stop",
	ClickReset:      "click-reset",
	ClickFullscreen: "click-fullscreen",
	KeyPause:        "key-pause",
	KeyReset:        "key-reset",
	KeySeekForward:  "key-seek-forward",
	KeySeekBackward: "key-seek-backward",
	KeyFullscreen:   "key-fullscreen",
	KeyQuit:         "key-quit",
	SliderDrag:      "slider-drag",
	TimerTick:       "timer-tick",
	Started:         "started",
	BusMessage:      "bus-message",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one input to Dispatch. Value, Err and Message are only
// meaningful for SliderDrag, Started and BusMessage respectively.
type Event struct {
	Kind    Kind
	Value   float64
	Err     error
	Message backend.Message
}

// On is an event that carries no payload.
func On(kind Kind) Event {
	return Event{Kind: kind}
}

// DragTo is a slider drag to value, in percent.
func DragTo(value float64) Event {
	return Event{Kind: SliderDrag, Value: value}
}

// StartedWith reports the outcome of a Play requested by EffectPlay.
func StartedWith(err error) Event {
	return Event{Kind: Started, Err: err}
}

func FromBus(msg backend.Message) Event {
	return Event{Kind: BusMessage, Message: msg}
}

// Effect is work Dispatch leaves to its caller.
type Effect int

const (
	EffectNone Effect = iota

	// EffectPlay asks the caller to start playback off the event loop
	// and to dispatch StartedWith once it returns.
	EffectPlay

	EffectQuit
)
