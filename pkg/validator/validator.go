package validator

import (
	"github.com/go-playground/validator/v10"
)

// urgencyLevels are the recognized filter values, "all" meaning no filter
var urgencyLevels = map[string]bool{
	"all":      true,
	"critical": true,
	"high":     true,
	"medium":   true,
	"low":      true,
}

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a CustomValidator with the domain validations registered.
// DTOs tag urgency filters with `validate:"urgency"` instead of repeating
// the level list per field.
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("urgency", func(fl validator.FieldLevel) bool {
		return urgencyLevels[fl.Field().String()]
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
