// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "piquant/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *playground.Validate
}

// New builds the echo request validator.
func New() *echoValidator {
	return &echoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate runs struct validation and maps failures to the domain
// validation error so the error handler renders a 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
