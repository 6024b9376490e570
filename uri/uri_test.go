package uri

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Resolve", t, func() {
		Convey("An absolute path becomes a file URI", func() {
			u, err := Resolve("/tmp/video.mp4")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "file:///tmp/video.mp4")
		})

		Convey("A relative path is made absolute", func() {
			wd, _ := os.Getwd()
			u, err := Resolve("clips/intro.webm")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "file://"+filepath.ToSlash(filepath.Join(wd, "clips/intro.webm")))
		})

		Convey("Anything carrying a colon is used verbatim", func() {
			for _, in := range []string{
				"https://example.com/stream.m3u8",
				"file:///srv/media/a.mkv",
				"dvd://1",
			} {
				u, err := Resolve(in)
				So(err, ShouldBeNil)
				So(u, ShouldEqual, in)
			}
		})

		Convey("Surrounding whitespace is ignored", func() {
			u, err := Resolve("  /tmp/video.mp4\t")
			So(err, ShouldBeNil)
			So(u, ShouldEqual, "file:///tmp/video.mp4")
		})

		Convey("Invalid arguments are rejected", func() {
			for _, in := range []string{"", "   ", "--vo=null", "/tmp/a\nb.mp4"} {
				_, err := Resolve(in)
				So(errors.Is(err, ErrInvalid), ShouldBeTrue)
			}
		})
	})
}

func TestScheme(t *testing.T) {
	Convey("Scheme", t, func() {
		So(Scheme("HTTPS://example.com/a"), ShouldEqual, "https")
		So(Scheme("file:///tmp/a"), ShouldEqual, "file")
		So(Scheme("/tmp/a"), ShouldEqual, "")
		So(Scheme(":nothing"), ShouldEqual, "")
	})
}

func TestPath(t *testing.T) {
	Convey("Path", t, func() {
		p, ok := Path("file:///tmp/my%20video.mp4")
		So(ok, ShouldBeTrue)
		So(p, ShouldEqual, filepath.FromSlash("/tmp/my video.mp4"))

		_, ok = Path("https://example.com/a.mp4")
		So(ok, ShouldBeFalse)
	})
}
