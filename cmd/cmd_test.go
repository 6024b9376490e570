package cmd

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidplay/vidplay/config"
	"github.com/vidplay/vidplay/key"
	"github.com/vidplay/vidplay/where"
)

func TestParseValue(t *testing.T) {
	Convey("parseValue", t, func() {
		Convey("follows the type of the default", func() {
			v, err := parseValue(config.Default[key.PlayerSeekStep], []string{"30"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 30)

			v, err = parseValue(config.Default[key.LogsWrite], []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			v, err = parseValue(config.Default[key.PlayerExecutable], []string{"/opt/mpv"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "/opt/mpv")

			v, err = parseValue(config.Default[key.PlayerExtraArgs], []string{"--hwdec=auto", "--mute"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"--hwdec=auto", "--mute"})
		})

		Convey("rejects malformed values", func() {
			_, err := parseValue(config.Default[key.PlayerSeekStep], []string{"ten"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(config.Default[key.LogsWrite], []string{"maybe"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(config.Default[key.LogsWrite], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("An unknown key suggests the closest one", t, func() {
		err := errUnknownKey("player.seek_stp")
		So(err.Error(), ShouldContainSubstring, "did you mean")
		So(err.Error(), ShouldContainSubstring, key.PlayerSeekStep)
	})
}

func TestJoinNames(t *testing.T) {
	Convey("joinNames", t, func() {
		So(joinNames([]string{"logs"}), ShouldEqual, "logs")
		So(joinNames([]string{"logs", "cache"}), ShouldEqual, "logs and cache")
		So(joinNames([]string{"a", "b", "c"}), ShouldEqual, "a, b and c")
	})
}

func TestEnvVariables(t *testing.T) {
	Convey("Every config key is exposed through the environment", t, func() {
		names := envVariables()
		So(names, ShouldContain, "VIDPLAY_PLAYER_SEEK_STEP")
		So(names, ShouldContain, where.EnvConfigPath)
		So(len(names), ShouldEqual, len(config.EnvExposed)+1)
	})
}

func TestFilterFields(t *testing.T) {
	Convey("filterFields matches keys fuzzily", t, func() {
		fields := filterFields(lo.Values(config.Default), "plyrseek")
		keys := lo.Map(fields, func(f config.Field, _ int) string { return f.Key })
		So(keys, ShouldContain, key.PlayerSeekStep)
		So(keys, ShouldNotContain, key.LogsWrite)
	})
}
