package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidplay/vidplay/filesystem"
	"github.com/vidplay/vidplay/pipeline"
	"github.com/vidplay/vidplay/pipeline/pipelinetest"
)

func TestRun(t *testing.T) {
	Convey("Given a fake engine", t, func() {
		engine := &pipelinetest.Engine{}
		ctx := context.Background()

		Convey("A known duration is returned and the pipeline released", func() {
			engine.Prepare = func(p *pipelinetest.Pipeline) {
				p.SetDuration(90 * time.Second)
			}

			r, err := Run(ctx, engine, "file:///tmp/video.mp4", time.Second)
			So(err, ShouldBeNil)
			So(r.URI, ShouldEqual, "file:///tmp/video.mp4")
			So(r.DurationNs, ShouldEqual, int64(90*time.Second))
			So(r.Duration, ShouldEqual, "01:30")
			So(engine.Alive(), ShouldEqual, 0)
			So(engine.Last().State(), ShouldEqual, pipeline.StateNull)
		})

		Convey("An unknown duration times out", func() {
			_, err := Run(ctx, engine, "file:///tmp/video.mp4", 150*time.Millisecond)
			So(errors.Is(err, ErrTimeout), ShouldBeTrue)
			So(engine.Alive(), ShouldEqual, 0)
		})

		Convey("A pipeline error ends the probe", func() {
			engine.Prepare = func(p *pipelinetest.Pipeline) {
				p.Send(pipeline.Message{Kind: pipeline.MessageError, Err: pipeline.ErrPlayback})
			}

			_, err := Run(ctx, engine, "file:///tmp/broken.mp4", time.Second)
			So(errors.Is(err, pipeline.ErrPlayback), ShouldBeTrue)
		})

		Convey("Engine failures surface", func() {
			engine.InitErr = errors.New("no mpv")
			_, err := Run(ctx, engine, "file:///tmp/video.mp4", time.Second)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestCache(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		filesystem.SetMemMapFs()
		Reset(filesystem.SetOsFs)

		fresh := newResult("file:///a.mp4", time.Minute)

		Convey("Nothing is cached at first", func() {
			So(Lookup("file:///a.mp4", time.Hour).IsAbsent(), ShouldBeTrue)
		})

		Convey("A remembered result can be looked up", func() {
			So(Remember(fresh, time.Hour), ShouldBeNil)

			r, ok := Lookup("file:///a.mp4", time.Hour).Get()
			So(ok, ShouldBeTrue)
			So(r.DurationNs, ShouldEqual, int64(time.Minute))
		})

		Convey("Old results are ignored and pruned", func() {
			stale := newResult("file:///b.mp4", time.Minute)
			stale.ProbedAt = time.Now().Add(-48 * time.Hour)
			So(Remember(stale, time.Hour*100), ShouldBeNil)

			So(Lookup("file:///b.mp4", 24*time.Hour).IsAbsent(), ShouldBeTrue)

			So(Remember(fresh, 24*time.Hour), ShouldBeNil)
			So(Lookup("file:///b.mp4", time.Hour*100).IsAbsent(), ShouldBeTrue)
		})
	})
}
