package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewDevelopmentOnly(ctx *fiber.Ctx) error
	GetRequestID(ctx *fiber.Ctx) string
	AllowMessage(customerID string) bool
}

type Config struct {
	AppEnv       string
	HTTPRate     rate.Limit
	HTTPBurst    int
	MessageRate  rate.Limit
	MessageBurst int
}

type middleware struct {
	rateLimitter        *rateLimiter
	messageLimiter      *rateLimiter
	requestIDMiddleware fiber.Handler
	appEnv              string
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, cfg Config) Middleware {
	if cfg.HTTPRate == 0 {
		cfg.HTTPRate, cfg.HTTPBurst = 50, 100
	}
	if cfg.MessageRate == 0 {
		cfg.MessageRate, cfg.MessageBurst = 1, 5
	}

	return &middleware{
		rateLimitter:        newRateLimiter(cfg.HTTPRate, cfg.HTTPBurst),
		messageLimiter:      newRateLimiter(cfg.MessageRate, cfg.MessageBurst),
		requestIDMiddleware: NewRequestIDMiddleware(),
		appEnv:              cfg.AppEnv,
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

// NewDevelopmentOnly hides a route in production.
func (m *middleware) NewDevelopmentOnly(ctx *fiber.Ctx) error {
	if m.appEnv == "production" {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}
	return ctx.Next()
}
