package pipeline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/vidplay/vidplay/log"
)

// mpvEvent is the subset of mpv's broadcast event object the pipeline cares about.
type mpvEvent struct {
	Event     string `json:"event"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

// eventReader turns mpv's newline-delimited event stream into Messages.
// It owns the message channel and closes it when the stream ends.
type eventReader struct {
	conn     net.Conn
	out      chan<- Message
	closing  func() bool
	stopOnce sync.Once
	quit     chan struct{}
	done     chan struct{}
}

func newEventReader(conn net.Conn, out chan<- Message, closing func() bool) *eventReader {
	return &eventReader{
		conn:    conn,
		out:     out,
		closing: closing,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// run reads until the connection drops. A drop nobody asked for is reported
// as ErrEngineExited before the channel closes.
func (r *eventReader) run() {
	defer close(r.done)
	defer close(r.out)

	scanner := bufio.NewScanner(r.conn)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		if msg, ok := translate(scanner.Bytes()); ok {
			r.send(msg)
		}
	}

	if !r.closing() {
		log.Warnf("mpv event stream lost: %v", scanner.Err())
		r.send(Message{Kind: MessageError, Err: ErrEngineExited})
	}
}

// send delivers msg unless the reader is being stopped, in which case
// nobody may be left to receive it.
func (r *eventReader) send(msg Message) {
	select {
	case r.out <- msg:
	case <-r.quit:
		log.Debugf("dropping %s message, event reader stopped", msg.Kind)
	}
}

// stop closes the connection and waits for run to finish.
func (r *eventReader) stop() {
	r.stopOnce.Do(func() {
		close(r.quit)
		r.conn.Close()
	})
	<-r.done
}

// translate maps one mpv event line to a Message. Only end-file with an
// eof or error reason is of interest; everything else is dropped.
func translate(line []byte) (Message, bool) {
	var ev mpvEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.Event != "end-file" {
		return Message{}, false
	}

	switch ev.Reason {
	case "eof":
		return Message{Kind: MessageEOS}, true
	case "error":
		reason := ev.FileError
		if reason == "" {
			reason = "unknown"
		}
		return Message{Kind: MessageError, Err: fmt.Errorf("%w: %s", ErrPlayback, reason)}, true
	default:
		return Message{}, false
	}
}
