package log

import (
	"bytes"
	"testing"

	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidplay/vidplay/key"
)

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeFalse)

		Convey("Emissions are discarded", func() {
			var buf bytes.Buffer
			logrus.SetOutput(&buf)
			Infof("playing %s", "file:///tmp/a.mkv")
			WithField("uri", "file:///tmp/a.mkv").Warnf("eos")
			So(buf.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given logging is enabled", t, func() {
		enabled = true
		defer func() { enabled = false }()

		var buf bytes.Buffer
		logrus.SetOutput(&buf)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		logrus.SetLevel(logrus.InfoLevel)

		Convey("Structured fields reach the output", func() {
			WithField("generation", 3).Infof("pipeline built")
			So(buf.String(), ShouldContainSubstring, "generation=3")
			So(buf.String(), ShouldContainSubstring, "pipeline built")
		})

		Convey("Levels below the threshold are dropped", func() {
			Debugf("noise")
			So(buf.Len(), ShouldEqual, 0)
		})
	})
}
