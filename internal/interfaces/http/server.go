package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
)

// NewApp construye la aplicación Fiber común a ambos servicios: recover, log de peticiones,
// /health y un ErrorHandler que responde siempre con el sobre {code, message, content}.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code := dto.CodeRejected
				if fe.Code == fiber.StatusNotFound {
					code = dto.CodeNoData
				}
				return c.Status(fe.Code).JSON(dto.ResponseDTO{Code: code, Message: fe.Message})
			}
			return fail(c, err)
		},
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}
