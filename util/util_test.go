package util

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidplay/vidplay/filesystem"
)

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 10), ShouldEqual, 5)
		So(Clamp(-3, 0, 10), ShouldEqual, 0)
		So(Clamp(42, 0, 10), ShouldEqual, 10)
		So(Clamp(90*time.Second, 0, time.Minute), ShouldEqual, time.Minute)
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("logs"), ShouldEqual, "Logs")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFormatClock(t *testing.T) {
	Convey("FormatClock", t, func() {
		So(FormatClock(0), ShouldEqual, "00:00")
		So(FormatClock(83*time.Second), ShouldEqual, "01:23")
		So(FormatClock(time.Hour+2*time.Minute+5*time.Second), ShouldEqual, "1:02:05")
		So(FormatClock(-time.Second), ShouldEqual, "00:00")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		Convey("Removes directories recursively", func() {
			So(fs.WriteFile("/logs/a/vidplay.log", []byte("x"), 0o644), ShouldBeNil)
			So(Delete("/logs"), ShouldBeNil)
			So(filesystem.Exists("/logs"), ShouldBeFalse)
		})

		Convey("Fails on missing paths", func() {
			So(Delete("/missing"), ShouldNotBeNil)
		})
	})
}
