// Package validate centraliza la validación de requests. Usa
// go-playground/validator para las reglas declarables por tag y expone
// chequeos imperativos para lo que los tags no cubren (montos decimales,
// fechas). Todas las violaciones de un request se recolectan y se reportan
// juntas; nunca se corta en la primera.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Violation una regla incumplida sobre un campo concreto.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations lista de violaciones; implementa error para poder viajar por
// las firmas estándar de los casos de uso.
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, violation.Field+": "+violation.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

var alphaCharRe = regexp.MustCompile(`[a-zA-ZÀ-ÿ]`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Reportar los campos por su nombre json, no por el nombre Go.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// alphachar: el campo debe contener al menos una letra (los nombres "123"
	// no son nombres).
	_ = val.RegisterValidation("alphachar", func(fl validator.FieldLevel) bool {
		return alphaCharRe.MatchString(fl.Field().String())
	})
	return val
}

// Struct valida s contra sus tags `validate` y devuelve todas las
// violaciones encontradas con mensajes en castellano. Nil si todo está bien.
func Struct(s interface{}) Violations {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Violations{{Field: "_", Message: err.Error()}}
	}
	out := make(Violations, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("no puede superar los %s caracteres", fe.Param())
	case "email":
		return "no es un email válido"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "alphachar":
		return "debe contener al menos una letra"
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

// Amount valida un monto de factura: estrictamente positivo y como máximo
// max. Devuelve la violación o nil. Los tags de validator no pueden
// inspeccionar un decimal.Decimal, por eso este chequeo es imperativo.
func Amount(field string, amount decimal.Decimal, max decimal.Decimal) *Violation {
	if amount.IsZero() || amount.IsNegative() {
		return &Violation{Field: field, Message: "debe ser un monto positivo"}
	}
	if amount.GreaterThan(max) {
		return &Violation{Field: field, Message: "debe estar entre 0 y " + max.String()}
	}
	return nil
}

// Formatos de fecha aceptados para sent_at.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Date parsea una fecha en los formatos aceptados. Violación si no parsea.
func Date(field, value string) (time.Time, *Violation) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &Violation{Field: field, Message: "la fecha debe tener formato YYYY-MM-DD"}
}
