package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError carries a field -> message map for API responses.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with JSON tag names and the custom domain rules
// registered.
func New() *Validator {
	v := validator.New()

	// Report field names as they appear in DTO JSON, not Go struct fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate checks the struct and converts failures into a *ValidationError.
func (v *Validator) Validate(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errs := make(map[string]string, len(invalid))
	for _, fieldErr := range invalid {
		errs[fieldErr.Field()] = messageForTag(fieldErr)
	}
	return &ValidationError{Errors: errs}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "order_type":
		return "must be one of: standard, express, longer_video, express_longer"
	case "content_rights":
		return "must be one of: self, agency, management, third_party"
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
