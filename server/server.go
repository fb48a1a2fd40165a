package server

import (
	"github.com/google/uuid"
	"github.com/kgrid-demos/score/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New returns an Echo instance with request ids, request logging and panic
// recovery installed.  Routes still need to be registered.
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	requestLogger := logging.Logger(logging.SourceWeb)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				requestLogger.Error("request", append(fields, "err", v.Error)...)
				return nil
			}
			requestLogger.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	return e
}
