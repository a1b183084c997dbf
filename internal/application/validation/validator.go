// Package validation envuelve go-playground/validator y traduce los fallos a domain.ValidationError.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/entity"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/stay"
)

// Validator valida DTOs usando los tags `validate`. Seguro para uso concurrente.
type Validator struct {
	validate *validator.Validate
}

// New crea el validador con los nombres de campo tomados del tag json y las reglas propias.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "booking_status", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseBookingStatus(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "stay_date", func(fl validator.FieldLevel) bool {
		_, err := stay.ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: registrar regla %q: %v", tag, err))
	}
}

// Struct valida s. Devuelve *domain.ValidationError con un mensaje por campo.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &domain.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obligatorio"
	case "email":
		return "debe ser un email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "url":
		return "debe ser una URL válida"
	case "booking_status":
		return "debe ser pending, confirmed o canceled"
	case "stay_date":
		return "fecha inválida, use AAAA-MM-DD"
	default:
		return fmt.Sprintf("valor inválido (regla '%s')", fe.Tag())
	}
}
