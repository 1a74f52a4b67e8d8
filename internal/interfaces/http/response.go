package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tharaka19/CCIMS-sub000/internal/application/dto"
	"github.com/tharaka19/CCIMS-sub000/internal/domain"
)

// Mensajes públicos por defecto de cada clase de error.
const (
	MsgSaved            = "Saved successfully."
	MsgUpdated          = "Updated successfully."
	MsgRetrieved        = "Retrieved successfully."
	MsgDeleted          = "Deleted successfully."
	MsgNoData           = "No data found"
	MsgUnauthorized     = "Unauthorized"
	MsgDuplicated       = "Duplicated"
	MsgConflict         = "Conflict with the current state."
	MsgUpstream         = "Dependent service unavailable."
	MsgPersistence      = "Could not save the changes."
	MsgPartiallyApplied = "Quantity updated but the movement was not recorded. Contact support."
	MsgInternal         = "Internal error."
	MsgInvalidBody      = "Invalid request body."
	MsgInvalidID        = "Invalid id."
)

func success(c *fiber.Ctx, status int, message string, content any) error {
	return c.Status(status).JSON(dto.ResponseDTO{Code: dto.CodeSuccess, Message: message, Content: content})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ResponseDTO{Code: dto.CodeInvalidBody, Message: MsgInvalidBody})
}

// fail convierte un error de dominio en el sobre de respuesta; ningún error escapa sin clasificar.
// El texto de errores no clasificados no se devuelve al cliente, solo se registra.
func fail(c *fiber.Ctx, err error) error {
	status, body := classify(err)
	log := zerolog.Ctx(c.UserContext())
	switch {
	case status >= fiber.StatusInternalServerError:
		log.Error().Err(err).Str("code", body.Code).Str("path", c.Path()).Msg("petición fallida")
	case status == fiber.StatusConflict || status == fiber.StatusUnprocessableEntity:
		log.Warn().Err(err).Str("code", body.Code).Str("path", c.Path()).Msg("petición rechazada")
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, dto.ResponseDTO) {
	public := domain.PublicMessage(err)
	or := func(def string) string {
		if public != "" {
			return public
		}
		return def
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		msgs := domain.ValidationMessages(err)
		if len(msgs) == 0 {
			msgs = []string{or(MsgInvalidBody)}
		}
		return fiber.StatusUnprocessableEntity, dto.ResponseDTO{Code: dto.CodeRejected, Message: msgs}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ResponseDTO{Code: dto.CodeNoData, Message: or(MsgNoData)}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ResponseDTO{Code: dto.CodeUnauthorized, Message: or(MsgUnauthorized)}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ResponseDTO{Code: dto.CodeDuplicated, Message: or(MsgDuplicated)}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ResponseDTO{Code: dto.CodeConflict, Message: or(MsgConflict)}
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway, dto.ResponseDTO{Code: dto.CodeUpstreamUnavailable, Message: or(MsgUpstream)}
	case errors.Is(err, domain.ErrPartiallyApplied):
		return fiber.StatusInternalServerError, dto.ResponseDTO{Code: dto.CodePartiallyApplied, Message: or(MsgPartiallyApplied)}
	case errors.Is(err, domain.ErrPersistence):
		return fiber.StatusInternalServerError, dto.ResponseDTO{Code: dto.CodePersistence, Message: or(MsgPersistence)}
	default:
		return fiber.StatusInternalServerError, dto.ResponseDTO{Code: dto.CodeInternal, Message: MsgInternal}
	}
}

// paramID lee un id entero positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ResponseDTO{Code: dto.CodeRejected, Message: []string{MsgInvalidID}})
}
