package log

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// SetOutput redirects all app log events, e.g. to a MultiWriter with a file sink.
func SetOutput(w io.Writer) {
	logger = zerolog.New(w).With().Timestamp().Logger()
}

func event(level zerolog.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := logger.WithLevel(level).Str("action", action)
	if c != nil {
		e = e.Str("ip", c.IP()).Str("method", c.Method()).Str("path", c.Path()).
			Int("status", c.Response().StatusCode())
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e = e.Str("req_id", rid)
		}
	}
	if err != nil {
		e = e.Err(err)
	}
	if len(fields) > 0 {
		e = e.Fields(fields)
	}
	e.Send()
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	event(zerolog.InfoLevel, c, action, nil, fields)
}

// Audit marks actions that change state on behalf of a user.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	event(zerolog.InfoLevel, c, action, nil, fields)
}

// Security marks rejected or suspicious requests.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	event(zerolog.WarnLevel, c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	event(zerolog.ErrorLevel, c, action, err, fields)
}
