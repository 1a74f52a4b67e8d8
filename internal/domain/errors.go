package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrValidation          = errors.New("entrada rechazada por validación")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrUpstreamUnavailable = errors.New("servicio externo no disponible")
	ErrPersistence         = errors.New("error de persistencia")
	ErrPartiallyApplied    = errors.New("operación aplicada parcialmente")
)

// ValidationError lleva los mensajes legibles que se devuelven al cliente.
// errors.Is(err, ErrValidation) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Messages []string
}

// NewValidationError construye el error con uno o más mensajes.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	return "validación: " + strings.Join(e.Messages, "; ")
}

// Is permite errors.Is(err, domain.ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationMessages devuelve los mensajes de validación si err es (o envuelve) un ValidationError.
func ValidationMessages(err error) []string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages
	}
	return nil
}

// Error error de dominio con un mensaje apto para mostrar al cliente.
// errors.Is(err, Kind) es verdadero.
type Error struct {
	Kind    error
	Message string
}

// NewError construye un error de la clase kind con mensaje público.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

// PublicMessage devuelve el mensaje público del primer *Error de la cadena ("" si no hay).
func PublicMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

var kinds = []error{
	ErrNotFound, ErrValidation, ErrUnauthorized, ErrDuplicate, ErrConflict,
	ErrUpstreamUnavailable, ErrPersistence, ErrPartiallyApplied,
}

// Classified indica si err pertenece a alguna de las clases de error de dominio.
func Classified(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// AsPersistence envuelve en ErrPersistence cualquier error que no tenga ya una clase de dominio.
func AsPersistence(err error) error {
	if err == nil || Classified(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
