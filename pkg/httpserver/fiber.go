package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// AccessLog receives one line per request. Nil disables the access log.
	AccessLog io.Writer
	// Ready backs the readiness endpoint. Nil means always ready.
	Ready func() bool
}

// DefaultOptions logs requests to stdout.
func DefaultOptions() Options {
	return Options{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		AccessLog:    os.Stdout,
	}
}

func InitFiberServer(appName string, opts Options) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:      appName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
		ErrorHandler: errorHandler,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(requestid.New())
	s.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,HEAD,OPTIONS",
	}))
	if opts.AccessLog != nil {
		s.Use(fiberlogger.New(fiberlogger.Config{
			Format:     "${time} ${pid} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
			TimeFormat: time.RFC3339,
			Output:     opts.AccessLog,
		}))
	}

	health := healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}
	if opts.Ready != nil {
		ready := opts.Ready
		health.ReadinessProbe = func(*fiber.Ctx) bool { return ready() }
	}
	s.Use(healthcheck.New(health))

	return s
}

// errorHandler keeps fiber's own errors (404 for unknown routes, recovered
// panics) in the same {"error": ...} shape the handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
