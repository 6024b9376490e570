// Package pipeline is the boundary to the external multimedia engine.
//
// An Engine builds Pipelines; a Pipeline plays exactly one URI and reports
// asynchronous end-of-stream and error messages on its Messages channel.
// Decoding, clocking and rendering all happen inside the engine.
package pipeline

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotReady is returned by queries the engine cannot answer yet,
	// typically before the stream has buffered enough to know its duration.
	ErrNotReady = errors.New("pipeline not ready")

	// ErrUnsupported is returned when the engine cannot handle a URI or its media.
	ErrUnsupported = errors.New("unsupported media")

	// ErrPlayback wraps engine-side playback failures reported on the message stream.
	ErrPlayback = errors.New("playback error")

	// ErrEngineExited is reported when the engine goes away without being asked to.
	ErrEngineExited = errors.New("engine exited unexpectedly")

	// ErrClosed is returned by calls on a pipeline that has been closed.
	ErrClosed = errors.New("pipeline closed")
)

// State is the requested pipeline state.
type State int

const (
	StateNull State = iota
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateNull:
		return "null"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// WindowHandle is the native identifier of a drawable surface.
type WindowHandle uint64

// MessageKind enumerates the bus messages a pipeline reports.
type MessageKind int

const (
	MessageEOS MessageKind = iota
	MessageError
)

func (k MessageKind) String() string {
	if k == MessageEOS {
		return "eos"
	}
	return "error"
}

// Message is one asynchronous notification from a running pipeline.
type Message struct {
	Kind MessageKind
	Err  error
}

// Pipeline is a single playback graph for one URI.
type Pipeline interface {
	// SetURI points the pipeline at its media. It does not start playback.
	SetURI(uri string) error

	// SetState requests a state change; it does not wait for it to complete.
	SetState(state State) error

	// Seek performs a flushing seek to an absolute position.
	Seek(position time.Duration) error

	// Position returns the current playback position or ErrNotReady.
	Position() (time.Duration, error)

	// Duration returns the media duration or ErrNotReady.
	Duration() (time.Duration, error)

	// Messages is closed once the pipeline has shut down.
	Messages() <-chan Message

	// Close releases the pipeline and everything it owns.
	Close() error
}

// Overlay is implemented by pipelines whose video sink can render into a foreign window.
type Overlay interface {
	SetWindowHandle(handle WindowHandle) error
}

// Fullscreener is implemented by pipelines that own a window which can go fullscreen.
type Fullscreener interface {
	SetFullscreen(fullscreen bool) error
}

// Engine constructs pipelines and holds process-wide engine state.
type Engine interface {
	// Init performs one-time initialization and must precede NewPipeline.
	Init() error

	// NewPipeline builds an idle pipeline.
	NewPipeline(ctx context.Context) (Pipeline, error)

	// Deinit releases process-wide resources.
	Deinit() error
}
