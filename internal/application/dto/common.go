package dto

// Códigos del sobre de respuesta.
const (
	CodeSuccess             = "SUCCESS"
	CodeRejected            = "REJECTED"
	CodeNoData              = "NO_DATA"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeDuplicated          = "DUPLICATED"
	CodeConflict            = "CONFLICT"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodePersistence         = "PERSISTENCE"
	CodePartiallyApplied    = "PARTIALLY_APPLIED"
	CodeInternal            = "INTERNAL"
	CodeInvalidBody         = "INVALID_BODY"
)

// ResponseDTO sobre uniforme de todas las respuestas HTTP.
// Message es un texto o, en rechazos de validación, la lista de mensajes.
type ResponseDTO struct {
	Code    string `json:"code"`
	Message any    `json:"message"`
	Content any    `json:"content"`
}
