package pipeline

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// ipcReply covers both command replies and the events mpv broadcasts to every client.
type ipcReply struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID *int64 `json:"request_id"`
	Event     string `json:"event"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
)

const errPropertyUnavailable = "property unavailable"

var requestIDs atomic.Int64

// commandError is an error reply from mpv itself. It is never retried.
type commandError struct {
	reason string
}

func (e *commandError) Error() string {
	return "mpv error: " + e.reason
}

// sendCommand sends a JSON-IPC command to mpv, retrying transient connection failures.
func (m *MPV) sendCommand(command ...any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}

		var cmdErr *commandError
		if errors.As(err, &cmdErr) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// doSendCommand performs a single IPC round trip on a fresh connection.
// Event lines that arrive before the reply are skipped.
func doSendCommand(socketPath string, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	id := requestIDs.Add(1)
	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		var reply ipcReply
		if err := json.Unmarshal(line, &reply); err != nil {
			continue
		}

		if reply.Event != "" || reply.RequestID == nil || *reply.RequestID != id {
			continue
		}

		if reply.Error != "" && reply.Error != "success" {
			return nil, &commandError{reason: reply.Error}
		}

		return reply.Data, nil
	}
}

// isUnavailable reports whether err is mpv refusing a property that has no value yet.
func isUnavailable(err error) bool {
	var cmdErr *commandError
	return errors.As(err, &cmdErr) && cmdErr.reason == errPropertyUnavailable
}
