// Package forms validates user input before any request is sent to the API.
package forms

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a validation failure tied to a single form field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// check validates v and converts the first failure into a FieldError using
// the messages table, keyed by struct field name
func check(v any, messages map[string]string) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating form: %w", err)
	}

	first := verrs[0]
	msg, ok := messages[first.StructField()]
	if !ok {
		msg = fmt.Sprintf("%s is invalid", first.StructField())
	}
	return &FieldError{Field: first.StructField(), Message: msg}
}
