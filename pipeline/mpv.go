package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vidplay/vidplay/log"
	"github.com/vidplay/vidplay/uri"
)

const (
	defaultSocketWaitRetries = 10
	socketWaitDelay          = 300 * time.Millisecond
	quitTimeout              = 3 * time.Second
	messageBuffer            = 16
)

// MPVOptions configures how mpv processes are spawned.
type MPVOptions struct {
	// Executable is the mpv binary name or path.
	Executable string

	// ExtraArgs are appended to every mpv command line.
	ExtraArgs []string

	// SocketDir holds the per-pipeline IPC sockets.
	SocketDir string

	// SocketWaitRetries bounds how long startup waits for the IPC socket.
	SocketWaitRetries int

	// Headless disables video and audio output, for probing.
	Headless bool
}

// MPVEngine builds pipelines backed by one mpv process each, controlled over JSON IPC.
type MPVEngine struct {
	opts MPVOptions
	path string
}

// NewMPVEngine returns an engine; call Init before building pipelines.
func NewMPVEngine(opts MPVOptions) *MPVEngine {
	if opts.Executable == "" {
		opts.Executable = "mpv"
	}
	if opts.SocketWaitRetries <= 0 {
		opts.SocketWaitRetries = defaultSocketWaitRetries
	}
	if opts.SocketDir == "" {
		opts.SocketDir = os.TempDir()
	}
	return &MPVEngine{opts: opts}
}

// Init locates the mpv executable and prepares the socket directory.
func (e *MPVEngine) Init() error {
	path, err := exec.LookPath(e.opts.Executable)
	if err != nil {
		return fmt.Errorf("locate %s: %w", e.opts.Executable, err)
	}

	if err := os.MkdirAll(e.opts.SocketDir, 0o700); err != nil {
		return fmt.Errorf("socket dir: %w", err)
	}

	e.path = path
	log.Infof("engine initialized: %s", path)
	return nil
}

// Deinit removes the socket directory when nothing is left in it.
func (e *MPVEngine) Deinit() error {
	if e.path == "" {
		return nil
	}
	e.path = ""

	entries, err := os.ReadDir(e.opts.SocketDir)
	if err != nil || len(entries) > 0 {
		return nil
	}
	return os.Remove(e.opts.SocketDir)
}

// args builds the mpv command line. Only the IPC plumbing is forced;
// everything else is left to the user's mpv.conf and ExtraArgs.
func (e *MPVEngine) args(socketPath string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--idle=yes",
		"--pause",
		"--keep-open=no",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
	}

	if e.opts.Headless {
		args = append(args, "--vo=null", "--ao=null")
	}

	return append(args, e.opts.ExtraArgs...)
}

// NewPipeline starts an idle, paused mpv process and connects to its event stream.
func (e *MPVEngine) NewPipeline(ctx context.Context) (Pipeline, error) {
	if e.path == "" {
		return nil, errors.New("engine not initialized")
	}

	socketPath := filepath.Join(e.opts.SocketDir, fmt.Sprintf("mpv-%s.sock", uuid.NewString()))

	cmd := exec.Command(e.path, e.args(socketPath)...)
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	m := &MPV{
		socketPath: socketPath,
		cmd:        cmd,
		exited:     make(chan struct{}),
		messages:   make(chan Message, messageBuffer),
	}

	go func() {
		_ = cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(ctx, e.opts.SocketWaitRetries); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(cmd)
		}
		_ = os.Remove(socketPath)
		return nil, fmt.Errorf("mpv socket not ready: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		_ = killProcess(cmd)
		_ = os.Remove(socketPath)
		return nil, fmt.Errorf("event stream connect: %w", err)
	}
	m.events = newEventReader(conn, m.messages, m.isClosing)
	go m.events.run()

	log.WithField("socket", socketPath).Debugf("mpv pipeline started")
	return m, nil
}

// MPV is a Pipeline backed by a single mpv process.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	messages   chan Message
	events     *eventReader

	mu       sync.Mutex // serializes IPC round trips
	closed   bool
	quitting atomic.Bool
	closing  sync.Once
}

var (
	_ Pipeline     = (*MPV)(nil)
	_ Overlay      = (*MPV)(nil)
	_ Fullscreener = (*MPV)(nil)
)

func (m *MPV) waitForSocket(ctx context.Context, retries int) error {
	for i := 0; i < retries; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, retries)
}

// SetURI checks the scheme against mpv's protocol list and loads the media paused.
func (m *MPV) SetURI(u string) error {
	if scheme := uri.Scheme(u); scheme != "" && scheme != "file" {
		supported, err := m.protocols()
		if err != nil {
			return err
		}
		if !supported[scheme] {
			return fmt.Errorf("%w: scheme %q", ErrUnsupported, scheme)
		}
	}

	_, err := m.sendCommand("loadfile", u, "replace")
	return err
}

func (m *MPV) protocols() (map[string]bool, error) {
	data, err := m.sendCommand("get_property", "protocol-list")
	if err != nil {
		return nil, err
	}

	list, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("protocol-list: expected list, got %T", data)
	}

	supported := make(map[string]bool, len(list))
	for _, p := range list {
		if s, ok := p.(string); ok {
			supported[strings.ToLower(s)] = true
		}
	}
	return supported, nil
}

// SetWindowHandle embeds video output into a foreign window. It takes effect
// when the video output is created, so it must precede SetURI.
func (m *MPV) SetWindowHandle(handle WindowHandle) error {
	return m.set("wid", int64(handle))
}

func (m *MPV) SetFullscreen(fullscreen bool) error {
	return m.set("fullscreen", fullscreen)
}

func (m *MPV) SetState(state State) error {
	switch state {
	case StateNull:
		_, err := m.sendCommand("stop")
		return err
	case StatePaused:
		return m.set("pause", true)
	case StatePlaying:
		return m.set("pause", false)
	default:
		return fmt.Errorf("unknown state %d", state)
	}
}

func (m *MPV) Seek(position time.Duration) error {
	_, err := m.sendCommand("seek", position.Seconds(), "absolute+exact")
	return err
}

func (m *MPV) Position() (time.Duration, error) {
	return m.getDuration("time-pos")
}

func (m *MPV) Duration() (time.Duration, error) {
	return m.getDuration("duration")
}

func (m *MPV) Messages() <-chan Message {
	return m.messages
}

// Close asks mpv to quit, kills it if it lingers and removes the socket.
// The message channel is closed once the event stream has drained.
func (m *MPV) Close() error {
	m.closing.Do(func() {
		m.quitting.Store(true)
		_, _ = m.sendCommand("quit")

		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}

		m.events.stop()
		_ = os.Remove(m.socketPath)
	})
	return nil
}

// isClosing tells the event reader whether a lost connection was requested.
func (m *MPV) isClosing() bool {
	return m.quitting.Load()
}

func (m *MPV) set(property string, value any) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

func (m *MPV) getDuration(name string) (time.Duration, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		if isUnavailable(err) {
			return 0, ErrNotReady
		}
		return 0, err
	}

	seconds, ok := data.(float64)
	if !ok {
		if data == nil {
			return 0, ErrNotReady
		}
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
