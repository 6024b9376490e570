package pipeline

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeReply is what the fake mpv answers to one command.
type fakeReply struct {
	data  any
	error string
}

// fakeMPV speaks enough of mpv's JSON IPC to exercise the client side.
type fakeMPV struct {
	t        *testing.T
	path     string
	listener net.Listener

	mu       sync.Mutex
	replies  map[string]fakeReply
	received [][]any
	noise    bool
}

func newFakeMPV(t *testing.T) *fakeMPV {
	t.Helper()

	// keep it short, unix socket paths are length limited
	dir, err := os.MkdirTemp("", "vp")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "mpv.sock")
	listener, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{
		t:        t,
		path:     path,
		listener: listener,
		replies:  make(map[string]fakeReply),
	}
	t.Cleanup(func() { listener.Close() })

	go f.serve()
	return f
}

// on registers the reply for a command name, or for "get_property <name>".
func (f *fakeMPV) on(key string, reply fakeReply) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[key] = reply
}

// withNoise makes the server broadcast an event and a foreign reply before each answer.
func (f *fakeMPV) withNoise() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.noise = true
}

func (f *fakeMPV) commands() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]any(nil), f.received...)
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	encoder := json.NewEncoder(conn)

	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil || len(cmd.Command) == 0 {
			continue
		}

		f.mu.Lock()
		f.received = append(f.received, cmd.Command)
		key, _ := cmd.Command[0].(string)
		if key == "get_property" && len(cmd.Command) > 1 {
			name, _ := cmd.Command[1].(string)
			key += " " + name
		}
		reply, ok := f.replies[key]
		noise := f.noise
		f.mu.Unlock()

		if !ok {
			reply = fakeReply{error: "success"}
		}

		if noise {
			_ = encoder.Encode(map[string]any{"event": "playback-restart"})
			_ = encoder.Encode(map[string]any{"request_id": cmd.RequestID + 1000, "error": "success", "data": "wrong"})
		}

		_ = encoder.Encode(map[string]any{
			"request_id": cmd.RequestID,
			"error":      reply.error,
			"data":       reply.data,
		})
	}
}

// newTestMPV wires an MPV to the fake server without spawning a process.
// The returned conn is the server side of the event stream.
func newTestMPV(f *fakeMPV) (*MPV, net.Conn) {
	exited := make(chan struct{})
	close(exited)

	m := &MPV{
		socketPath: f.path,
		exited:     exited,
		messages:   make(chan Message, messageBuffer),
	}

	client, server := net.Pipe()
	m.events = newEventReader(client, m.messages, m.isClosing)
	go m.events.run()

	return m, server
}
