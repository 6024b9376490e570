package pipeline

import (
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTranslate(t *testing.T) {
	Convey("translate", t, func() {
		Convey("end-file with eof is end of stream", func() {
			msg, ok := translate([]byte(`{"event":"end-file","reason":"eof"}`))
			So(ok, ShouldBeTrue)
			So(msg.Kind, ShouldEqual, MessageEOS)
		})

		Convey("end-file with error carries the reason", func() {
			msg, ok := translate([]byte(`{"event":"end-file","reason":"error","file_error":"unrecognized file format"}`))
			So(ok, ShouldBeTrue)
			So(msg.Kind, ShouldEqual, MessageError)
			So(errors.Is(msg.Err, ErrPlayback), ShouldBeTrue)
			So(msg.Err.Error(), ShouldContainSubstring, "unrecognized file format")
		})

		Convey("a replaced file is not reported", func() {
			_, ok := translate([]byte(`{"event":"end-file","reason":"stop"}`))
			So(ok, ShouldBeFalse)
		})

		Convey("other events and garbage are dropped", func() {
			_, ok := translate([]byte(`{"event":"file-loaded"}`))
			So(ok, ShouldBeFalse)

			_, ok = translate([]byte(`not json`))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestEventReader(t *testing.T) {
	Convey("Given an event reader", t, func() {
		client, server := net.Pipe()
		out := make(chan Message, 4)
		var closing atomic.Bool
		reader := newEventReader(client, out, closing.Load)
		go reader.run()

		Convey("it forwards end of stream", func() {
			_, err := server.Write([]byte("{\"event\":\"pause\"}\n{\"event\":\"end-file\",\"reason\":\"eof\"}\n"))
			So(err, ShouldBeNil)

			msg := <-out
			So(msg.Kind, ShouldEqual, MessageEOS)
			reader.stop()
		})

		Convey("an unexpected disconnect is an engine exit", func() {
			server.Close()

			msg := <-out
			So(msg.Kind, ShouldEqual, MessageError)
			So(msg.Err, ShouldEqual, ErrEngineExited)

			_, ok := <-out
			So(ok, ShouldBeFalse)
		})

		Convey("a requested disconnect closes quietly", func() {
			closing.Store(true)
			reader.stop()

			_, ok := <-out
			So(ok, ShouldBeFalse)
		})

		Reset(func() {
			server.Close()
			reader.stop()
		})
	})
}

func TestEventReaderUndrained(t *testing.T) {
	Convey("Given an event reader whose messages nobody reads", t, func() {
		client, server := net.Pipe()
		defer server.Close()

		out := make(chan Message)
		var closing atomic.Bool
		reader := newEventReader(client, out, closing.Load)
		go reader.run()

		_, err := server.Write([]byte("{\"event\":\"end-file\",\"reason\":\"eof\"}\n"))
		So(err, ShouldBeNil)

		Convey("stop still returns", func() {
			closing.Store(true)
			stopped := make(chan struct{})
			go func() {
				reader.stop()
				close(stopped)
			}()

			var returned bool
			select {
			case <-stopped:
				returned = true
			case <-time.After(2 * time.Second):
			}
			So(returned, ShouldBeTrue)

			_, ok := <-out
			So(ok, ShouldBeFalse)
		})
	})
}
