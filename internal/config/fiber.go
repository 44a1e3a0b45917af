package config

import (
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger, cfg BotConfig) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:               "Romiio Bot",
			BodyLimit:             1 * 1024 * 1024,
			DisableKeepalive:      false,
			StrictRouting:         true,
			CaseSensitive:         true,
			EnablePrintRoutes:     !cfg.IsProduction(),
			DisableStartupMessage: cfg.AppEnv == "test",
			JSONEncoder:           jsoniter.Marshal,
			JSONDecoder:           jsoniter.Unmarshal,
		})

	logger.Debugf("Fiber app configured for %s", cfg.AppEnv)

	return app
}
