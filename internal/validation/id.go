package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

const idField = "id"

// IDParam is a path identifier that passed validation.
type IDParam struct {
	ID int64 `json:"id" validate:"gt=0"`
}

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ValidateIDParam coerces input["id"] to a positive integer.
//
// Numeric strings ("42", " 42 ", "4.2e1") and JSON numbers are accepted as long as the value is a
// whole number greater than zero.
func ValidateIDParam(input any) (IDParam, error) {
	obj, ok := asObject(input)
	if !ok {
		return IDParam{}, fail(RootPath, TypeMismatch, "Expected object, received "+receivedType(input))
	}
	raw, present := obj[idField]
	if !present {
		return IDParam{}, fail(idField, MissingField, "Required")
	}

	id, fe := coerceID(raw)
	if fe != nil {
		return IDParam{}, &ValidationError{Errors: []FieldError{*fe}}
	}

	p := IDParam{ID: id}
	if err := validate.Struct(p); err != nil {
		return IDParam{}, &ValidationError{Errors: FromValidatorErrors(err)}
	}
	return p, nil
}

// ParseID validates a single raw path segment.
func ParseID(raw string) (int64, error) {
	p, err := ValidateIDParam(map[string]any{idField: raw})
	return p.ID, err
}

func coerceID(v any) (int64, *FieldError) {
	switch x := v.(type) {
	case string:
		return coerceIDString(x)
	case json.Number:
		return coerceIDString(string(x))
	case float64:
		return coerceIDFloat(x)
	case float32:
		return coerceIDFloat(float64(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, idTooLarge()
		}
		return int64(u), nil
	}
	return 0, &FieldError{Field: idField, Kind: TypeMismatch, Message: "Expected number, received " + receivedType(v)}
}

func coerceIDString(raw string) (int64, *FieldError) {
	s := strings.TrimSpace(raw)
	if s == "" {
		// blank coerces to zero and is rejected by gt=0
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if !decimalPattern.MatchString(s) {
		return 0, &FieldError{Field: idField, Kind: TypeMismatch, Message: "Expected number, received nan"}
	}
	// only ErrRange is possible here; f is then ±Inf
	f, _ := strconv.ParseFloat(s, 64)
	return coerceIDFloat(f)
}

func coerceIDFloat(f float64) (int64, *FieldError) {
	switch {
	case math.IsNaN(f):
		return 0, &FieldError{Field: idField, Kind: TypeMismatch, Message: "Expected number, received nan"}
	case math.IsInf(f, 0) || f != math.Trunc(f):
		return 0, &FieldError{Field: idField, Kind: TypeMismatch, Message: "Expected integer, received float"}
	case f >= float64(math.MaxInt64):
		return 0, idTooLarge()
	case f < float64(math.MinInt64):
		return math.MinInt64, nil
	}
	return int64(f), nil
}

func idTooLarge() *FieldError {
	return &FieldError{
		Field:   idField,
		Kind:    OutOfRange,
		Message: fmt.Sprintf("Number must be less than or equal to %d", int64(math.MaxInt64)),
	}
}
