package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"support-desk-api/config/common"
	"support-desk-api/exception"
)

func NewFiber(cfg *common.Config, log *logrus.Logger) *fiber.App {
	appName := cfg.GetAppConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
		ErrorHandler:  exception.NewErrorHandler(log),
	})
}
