package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tharaka19/CCIMS-sub000/internal/application/ports"
)

// Cabeceras de correlación.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderTransactionID = "X-Transaction-ID"
)

// RequestLogger asigna un request id (o respeta el recibido), deja un logger hijo en el contexto de la
// petición y registra método, ruta, estado y latencia al terminar.
// Un X-Transaction-ID recibido (llamadas del servicio de proyectos) se propaga al contexto y a los logs.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		lctx := log.With().Str("request_id", requestID)
		ctx := c.UserContext()
		if txID := c.Get(HeaderTransactionID); txID != "" {
			lctx = lctx.Str("transaction_id", txID)
			ctx = ports.ContextWithTransactionID(ctx, txID)
		}
		reqLog := lctx.Logger()
		c.SetUserContext(reqLog.WithContext(ctx))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return err
	}
}
