package handler

import "github.com/go-playground/validator/v10"

// RequestValidator adapts go-playground/validator to echo's Validator
// interface. Handlers invoke it explicitly via c.Validate before persistence.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the request validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate validates the request struct against its validate tags
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
