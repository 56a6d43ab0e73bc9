package echohttp

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// custom echo middleware used for request logging. Prometheus scrapes hit
// /metrics every few seconds and would drown the log, so those are skipped.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()

			err := next(c)

			if c.Path() == "/metrics" {
				return err
			}

			slog.Info("handled request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(now))
			return err
		}
	}
}
