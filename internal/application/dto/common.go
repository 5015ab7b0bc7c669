package dto

import "github.com/tu-usuario/facturas-api/pkg/validate"

// DefaultPageSize ítems por página si el cliente no indica otra cosa.
const DefaultPageSize = 20

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = DefaultPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse error de validación con la lista completa de
// violaciones, para que el cliente corrija todo de una vez.
type ValidationErrorResponse struct {
	Code       string              `json:"code"` // siempre VALIDATION
	Message    string              `json:"message"`
	Violations validate.Violations `json:"violations"`
}

// NewValidationError construye la respuesta estándar de validación.
func NewValidationError(violations validate.Violations) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:       "VALIDATION",
		Message:    "uno o más campos no superan la validación",
		Violations: violations,
	}
}
