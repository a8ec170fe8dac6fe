package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"propertyapi/internal/logging"
)

// Logger logs each HTTP request as one JSON line on stdout with UTC timestamps.
func Logger() fiber.Handler {
	return RequestLogger(logging.New(nil, time.UTC))
}

// LoggerWithWriter is Logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return RequestLogger(logging.New(w, loc))
}

// RequestLogger logs through log. Fields:
// - request_id (set by RequestID)
// - method
// - path (no query string)
// - status
// - latency (milliseconds, float)
func RequestLogger(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		fields := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("http_request", err, fields)
		} else {
			log.Info("http_request", fields)
		}

		return err
	}
}
