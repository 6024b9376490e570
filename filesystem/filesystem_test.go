package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Exists reflects the active backend", func() {
			SetMemMapFs()
			So(Exists("/media/a.mkv"), ShouldBeFalse)
			So(API().WriteFile("/media/a.mkv", []byte("x"), 0o644), ShouldBeNil)
			So(Exists("/media/a.mkv"), ShouldBeTrue)
		})

		Convey("CacheFs writes through the backend", func() {
			SetMemMapFs()
			fs := CacheFs{}
			So(fs.MkdirAll("/cache", os.ModePerm), ShouldBeNil)
			f, err := fs.OpenFile("/cache/probes.json", os.O_CREATE|os.O_RDWR, 0o644)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			So(Exists("/cache/probes.json"), ShouldBeTrue)
		})
	})
}
