package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/crm/internal/adapters/http/api"
	app "github.com/okian/crm/internal/app"
	"github.com/okian/crm/internal/config"
	"github.com/okian/crm/pkg/logger"
	"github.com/okian/crm/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("CRM_ADDR", ":8080")
			_ = os.Setenv("CRM_DB__DSN", ":memory:")
			defer func() {
				_ = os.Unsetenv("CRM_ADDR")
				_ = os.Unsetenv("CRM_DB__DSN")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DB.DSN, convey.ShouldEqual, ":memory:")
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should return when the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := app.New()

			convey.Convey("Then it should return when the context ends", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given main application integration", t, func() {
		_ = os.Setenv("CRM_DB__DSN", ":memory:")
		defer func() { _ = os.Unsetenv("CRM_DB__DSN") }()

		convey.Convey("When the application is assembled from configuration", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			cfg.Seed.Origins = []string{"Web"}

			svc := app.New(app.Options(cfg)...)
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()

			handler := app.NewHandler(ctx, svc,
				api.WithRequestTimeout(cfg.RequestTimeout),
				api.WithCORS(app.CORSOptions(cfg.CORS)),
			)
			srv := httptest.NewServer(handler)
			defer srv.Close()

			convey.Convey("Then all components should work together", func() {
				res, err := http.Get(srv.URL + "/origins/")
				convey.So(err, convey.ShouldBeNil)
				defer res.Body.Close()
				body, _ := io.ReadAll(res.Body)
				convey.So(res.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(string(body), convey.ShouldContainSubstring, `"description":"Web"`)
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given main application error handling", t, func() {
		convey.Convey("When testing invalid configuration", func() {
			_ = os.Setenv("CRM_DB__DRIVER", "oracle")
			defer func() { _ = os.Unsetenv("CRM_DB__DRIVER") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
