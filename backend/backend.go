// Package backend owns the playback pipeline and exposes the player's controls.
//
// At most one pipeline is alive at a time. A new Play tears down the previous
// one first, and messages from a replaced pipeline are recognized by their
// generation and ignored.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/vidplay/vidplay/log"
	"github.com/vidplay/vidplay/pipeline"
	"github.com/vidplay/vidplay/uri"
	"github.com/vidplay/vidplay/util"
)

const busSize = 32

// State is the playback state as seen by the controls.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// Message is a pipeline message tagged with the generation of the pipeline that sent it.
type Message struct {
	pipeline.Message
	Generation uint64
}

// Backend drives a single pipeline built by engine.
type Backend struct {
	engine pipeline.Engine
	bus    chan Message

	mu          sync.Mutex
	initialized bool
	pipe        pipeline.Pipeline
	generation  uint64
	window      mo.Option[pipeline.WindowHandle]
	fullscreen  bool
	state       State
	uri         string
}

func New(engine pipeline.Engine) *Backend {
	return &Backend{
		engine: engine,
		bus:    make(chan Message, busSize),
		window: mo.None[pipeline.WindowHandle](),
	}
}

// Init initializes the engine. It must be called once before Play.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := b.engine.Init(); err != nil {
		return fmt.Errorf("engine init: %w", err)
	}

	b.initialized = true
	return nil
}

// Deinit stops playback and releases the engine.
func (b *Backend) Deinit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()

	if !b.initialized {
		return nil
	}
	b.initialized = false
	return b.engine.Deinit()
}

// SetWindow records where video should be drawn. It applies to the next Play.
func (b *Backend) SetWindow(handle pipeline.WindowHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.window = mo.Some(handle)
}

// Play replaces whatever is playing with rawURI.
// On failure nothing is left behind and the state is Stopped.
func (b *Backend) Play(ctx context.Context, rawURI string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return ErrNotInitialized
	}

	b.stopLocked()

	target := strings.TrimSpace(rawURI)
	if target == "" || uri.Scheme(target) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURI, rawURI)
	}

	p, err := b.engine.NewPipeline(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPipelineConstruction, err)
	}

	if err := b.configure(p, target); err != nil {
		b.release(p)
		return err
	}

	b.generation++
	b.pipe = p
	b.state = StatePlaying
	b.uri = target

	go b.forward(p, b.generation)

	log.WithField("uri", target).Infof("playing, generation %d", b.generation)
	return nil
}

func (b *Backend) configure(p pipeline.Pipeline, target string) error {
	if handle, ok := b.window.Get(); ok {
		if overlay, ok := p.(pipeline.Overlay); ok {
			if err := overlay.SetWindowHandle(handle); err != nil {
				return fmt.Errorf("%w: window: %w", ErrPipelineConstruction, err)
			}
		}
	}

	if b.fullscreen {
		if fs, ok := p.(pipeline.Fullscreener); ok {
			if err := fs.SetFullscreen(true); err != nil {
				log.Warnf("fullscreen: %s", err)
			}
		}
	}

	if err := p.SetURI(target); err != nil {
		if errors.Is(err, pipeline.ErrUnsupported) {
			return fmt.Errorf("%w: %w", ErrUnsupportedMedia, err)
		}
		return fmt.Errorf("%w: %w", ErrPipelineConstruction, err)
	}

	if err := p.SetState(pipeline.StatePlaying); err != nil {
		return fmt.Errorf("%w: start: %w", ErrPipelineConstruction, err)
	}

	return nil
}

// forward relays one pipeline's messages into the shared bus until the
// pipeline closes its channel.
func (b *Backend) forward(p pipeline.Pipeline, generation uint64) {
	for msg := range p.Messages() {
		select {
		case b.bus <- Message{Message: msg, Generation: generation}:
		default:
			log.Warnf("message bus full, dropping %s", msg.Kind)
		}
	}
}

// Stop tears down the pipeline. Calling it with nothing loaded is a no-op.
func (b *Backend) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
}

func (b *Backend) stopLocked() {
	b.state = StateStopped
	b.uri = ""

	if b.pipe == nil {
		return
	}

	p := b.pipe
	b.pipe = nil
	if err := p.SetState(pipeline.StateNull); err != nil {
		log.Debugf("null state: %s", err)
	}
	b.release(p)
}

func (b *Backend) release(p pipeline.Pipeline) {
	if err := p.Close(); err != nil {
		log.Warnf("pipeline close: %s", err)
	}
}

func (b *Backend) Pause() error {
	return b.transition(pipeline.StatePaused, StatePaused)
}

func (b *Backend) Resume() error {
	return b.transition(pipeline.StatePlaying, StatePlaying)
}

func (b *Backend) transition(requested pipeline.State, state State) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe == nil {
		return ErrNoPipeline
	}

	if err := b.pipe.SetState(requested); err != nil {
		return fmt.Errorf("set %s: %w", requested, err)
	}

	b.state = state
	return nil
}

// Reset seeks back to the start.
func (b *Backend) Reset() error {
	return b.SeekAbsolute(0)
}

// Seek moves by delta from the current position. If the position is not
// known yet it returns pipeline.ErrNotReady and leaves playback alone.
func (b *Backend) Seek(delta time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe == nil {
		return ErrNoPipeline
	}

	pos, err := b.pipe.Position()
	if err != nil {
		return err
	}

	return b.seekLocked(pos + delta)
}

// SeekAbsolute jumps to position, clamped to the media bounds.
func (b *Backend) SeekAbsolute(position time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe == nil {
		return ErrNoPipeline
	}

	return b.seekLocked(position)
}

func (b *Backend) seekLocked(target time.Duration) error {
	if d, err := b.pipe.Duration(); err == nil && d > 0 {
		target = util.Clamp(target, 0, d)
	} else {
		target = max(target, 0)
	}

	return b.pipe.Seek(target)
}

// Position is the current playback position, if the pipeline knows it.
func (b *Backend) Position() mo.Option[time.Duration] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe == nil {
		return mo.None[time.Duration]()
	}

	pos, err := b.pipe.Position()
	if err != nil || pos < 0 {
		return mo.None[time.Duration]()
	}
	return mo.Some(pos)
}

// Duration is the media length. Zero and negative lengths count as unknown.
func (b *Backend) Duration() mo.Option[time.Duration] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe == nil {
		return mo.None[time.Duration]()
	}

	d, err := b.pipe.Duration()
	if err != nil || d <= 0 {
		return mo.None[time.Duration]()
	}
	return mo.Some(d)
}

// SetFullscreen records the preference and forwards it to a pipeline that owns its window.
func (b *Backend) SetFullscreen(fullscreen bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fullscreen = fullscreen

	if b.pipe == nil {
		return nil
	}

	if fs, ok := b.pipe.(pipeline.Fullscreener); ok {
		return fs.SetFullscreen(fullscreen)
	}
	return nil
}

// Messages delivers pipeline messages for every pipeline this backend builds.
// The channel is never closed.
func (b *Backend) Messages() <-chan Message {
	return b.bus
}

// Handle applies msg. End of stream is only logged; an error stops playback.
// It reports false when msg came from a pipeline that is no longer current.
func (b *Backend) Handle(msg Message) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pipe == nil || msg.Generation != b.generation {
		log.Debugf("ignoring stale %s from generation %d", msg.Kind, msg.Generation)
		return false
	}

	switch msg.Kind {
	case pipeline.MessageEOS:
		log.Info("end of stream")
	case pipeline.MessageError:
		log.WithField("uri", b.uri).Errorf("pipeline error: %s", msg.Err)
		b.stopLocked()
	}

	return true
}

func (b *Backend) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// URI is the media currently loaded, or "".
func (b *Backend) URI() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.uri
}
