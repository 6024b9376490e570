package where

import (
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidplay/vidplay/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Config() honours the override", func() {
			t.Setenv(EnvConfigPath, "/custom/vidplay")
			So(Config(), ShouldEqual, "/custom/vidplay")
			So(lo.Must(filesystem.API().IsDir("/custom/vidplay")), ShouldBeTrue)
		})

		Convey("Logs() lives under Config()", func() {
			path := Logs()
			So(filepath.Dir(path), ShouldEqual, Config())
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Probes() lives in Cache()", func() {
			So(filepath.Dir(Probes()), ShouldEqual, Cache())
		})

		Convey("Sockets() is a volatile path", func() {
			So(Sockets(), ShouldEndWith, "vidplay")
		})
	})
}
