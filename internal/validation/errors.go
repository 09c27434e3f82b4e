package validation

import (
	"errors"
	"strings"
)

// Kind classifies why a field was rejected.
type Kind string

const (
	MissingField      Kind = "missing_field"
	TypeMismatch      Kind = "type_mismatch"
	OutOfRange        Kind = "out_of_range"
	FormatInvalid     Kind = "format_invalid"
	EnumInvalid       Kind = "enum_invalid"
	CrossFieldInvalid Kind = "cross_field_invalid"
)

// RootPath is the field name used for errors about the payload as a whole.
const RootPath = ""

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// ValidationError collects every FieldError produced by a single validation call.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == RootPath {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields groups messages by field name.
func (e *ValidationError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Has reports whether an error of the given kind was recorded for field.
func (e *ValidationError) Has(field string, kind Kind) bool {
	for _, fe := range e.Errors {
		if fe.Field == field && fe.Kind == kind {
			return true
		}
	}
	return false
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func fail(field string, kind Kind, msg string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Kind: kind, Message: msg}}}
}
