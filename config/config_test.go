package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidplay/vidplay/filesystem"
	"github.com/vidplay/vidplay/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.PlayerSeekStep), ShouldEqual, 10)
			So(viper.GetInt(key.PlayerPollInterval), ShouldEqual, 1000)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.seek_step"), ShouldEqual, "player_seek_step")
		})

		Convey("Watch is a no-op without a config file", func() {
			_ = Setup()
			So(Watch(func() {}), ShouldBeFalse)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlayerSeekStep]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "VIDPLAY_PLAYER_SEEK_STEP")
		})

		Convey("It should render its description", func() {
			So(field.Pretty(), ShouldContainSubstring, field.Key)
		})

		Convey("It should marshal with its type", func() {
			data, err := field.MarshalJSON()
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"type":"int"`)
		})
	})
}
