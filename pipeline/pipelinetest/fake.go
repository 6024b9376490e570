// Package pipelinetest provides an in-memory pipeline engine for tests.
package pipelinetest

import (
	"context"
	"sync"
	"time"

	"github.com/vidplay/vidplay/pipeline"
)

// Engine builds Pipelines and remembers every one of them.
type Engine struct {
	InitErr error
	NewErr  error

	// Prepare, when set, runs on each pipeline before it is handed out.
	Prepare func(p *Pipeline)

	mu          sync.Mutex
	initialized bool
	deinits     int
	pipelines   []*Pipeline
}

var _ pipeline.Engine = (*Engine)(nil)

func (e *Engine) Init() error {
	if e.InitErr != nil {
		return e.InitErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = true
	return nil
}

func (e *Engine) Deinit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = false
	e.deinits++
	return nil
}

func (e *Engine) NewPipeline(ctx context.Context) (pipeline.Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.NewErr != nil {
		return nil, e.NewErr
	}

	p := &Pipeline{
		durErr:   pipeline.ErrNotReady,
		posErr:   pipeline.ErrNotReady,
		messages: make(chan pipeline.Message, 8),
	}
	if e.Prepare != nil {
		e.Prepare(p)
	}

	e.mu.Lock()
	e.pipelines = append(e.pipelines, p)
	e.mu.Unlock()
	return p, nil
}

func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

func (e *Engine) Deinits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deinits
}

// Built returns every pipeline handed out so far, oldest first.
func (e *Engine) Built() []*Pipeline {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Pipeline(nil), e.pipelines...)
}

// Alive counts pipelines that have not been closed.
func (e *Engine) Alive() int {
	n := 0
	for _, p := range e.Built() {
		if !p.Closed() {
			n++
		}
	}
	return n
}

// Last is the most recently built pipeline, or nil.
func (e *Engine) Last() *Pipeline {
	built := e.Built()
	if len(built) == 0 {
		return nil
	}
	return built[len(built)-1]
}

// Pipeline records what it is asked to do. Position and duration start out not ready.
type Pipeline struct {
	SetURIErr   error
	SetStateErr error

	mu         sync.Mutex
	uri        string
	state      pipeline.State
	window     pipeline.WindowHandle
	hasWindow  bool
	fullscreen bool
	pos        time.Duration
	posErr     error
	dur        time.Duration
	durErr     error
	seeks      []time.Duration
	closed     bool
	messages   chan pipeline.Message
}

var (
	_ pipeline.Pipeline     = (*Pipeline)(nil)
	_ pipeline.Overlay      = (*Pipeline)(nil)
	_ pipeline.Fullscreener = (*Pipeline)(nil)
)

func (p *Pipeline) SetURI(uri string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SetURIErr != nil {
		return p.SetURIErr
	}
	p.uri = uri
	return nil
}

func (p *Pipeline) SetState(state pipeline.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SetStateErr != nil {
		return p.SetStateErr
	}
	p.state = state
	return nil
}

func (p *Pipeline) SetWindowHandle(handle pipeline.WindowHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.window, p.hasWindow = handle, true
	return nil
}

func (p *Pipeline) SetFullscreen(fullscreen bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullscreen = fullscreen
	return nil
}

// Seek records the target and moves the position there.
func (p *Pipeline) Seek(position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeks = append(p.seeks, position)
	p.pos, p.posErr = position, nil
	return nil
}

func (p *Pipeline) Position() (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, p.posErr
}

func (p *Pipeline) Duration() (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dur, p.durErr
}

func (p *Pipeline) Messages() <-chan pipeline.Message {
	return p.messages
}

func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.messages)
	}
	return nil
}

// SetPosition makes the position known.
func (p *Pipeline) SetPosition(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos, p.posErr = d, nil
}

// SetDuration makes the duration known. Zero is reported as-is.
func (p *Pipeline) SetDuration(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dur, p.durErr = d, nil
}

// Send emits msg on the message stream unless the pipeline is closed.
func (p *Pipeline) Send(msg pipeline.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.messages <- msg
	}
}

func (p *Pipeline) URI() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uri
}

func (p *Pipeline) State() pipeline.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Window returns the attached window handle and whether one was attached.
func (p *Pipeline) Window() (pipeline.WindowHandle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window, p.hasWindow
}

func (p *Pipeline) Fullscreen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullscreen
}

func (p *Pipeline) Seeks() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.seeks...)
}

func (p *Pipeline) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
