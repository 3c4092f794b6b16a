package config_test

import (
	"testing"

	"github.com/diamondos/dugout/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DBPath, convey.ShouldEqual, "")
			convey.So(cfg.ShutdownGraceSeconds, convey.ShouldEqual, 10)
			convey.So(cfg.MetricsRefreshSeconds, convey.ShouldEqual, 30)
		})
	})
}
