package service

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	apperrors "userdir/internal/errors"
	"userdir/internal/model"
)

// emailPattern is the simple local@domain.tld shape; it is deliberately
// stricter than RFC 5322.
var emailPattern = regexp.MustCompile(`(?i)^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// fieldMessages maps a failing field to its client-facing message.
var fieldMessages = map[string]string{
	"Name":     "Name must be at least 2 characters long.",
	"Email":    "A valid email is required.",
	"Password": "Password must be at least 6 characters long.",
	"Role":     `Role must be either "admin" or "user".`,
	"Status":   `Status must be either "active" or "inactive".`,
}

// UserValidator validates directory input. Requests must be normalized
// before validation so length and enum rules see canonical values.
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator creates a validator with the simple_email rule
// registered.
func NewUserValidator() *UserValidator {
	v := validator.New()
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &UserValidator{validate: v}
}

// ValidateCreate checks all fields and reports the first failing rule in
// declaration order (name, email, password, role, status) as a
// field-specific ValidationError.
func (v *UserValidator) ValidateCreate(req *model.CreateUserRequest) error {
	return v.firstError(v.validate.Struct(req))
}

// ValidateUpdate checks only the fields that were provided; empty fields
// are skipped, preserving the "empty string means no change" contract.
func (v *UserValidator) ValidateUpdate(req *model.UpdateUserRequest) error {
	return v.firstError(v.validate.Struct(req))
}

func (v *UserValidator) firstError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		if msg, ok := fieldMessages[field]; ok {
			return apperrors.NewValidationError(field, msg)
		}
	}
	return err
}
