package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError names one offending field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is every field error found in a candidate record.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		if fe.Field == "" {
			parts[i] = fe.Message
			continue
		}
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one error.
func (e ValidationErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// FromBindingError converts the validator errors produced by gin request
// binding into field errors. It reports false for any other kind of error,
// such as malformed JSON.
func FromBindingError(err error) (ValidationErrors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		out = append(out, FieldError{Field: field, Message: message(field, fe)})
	}
	return out, true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
