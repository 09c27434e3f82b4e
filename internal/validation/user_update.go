package validation

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Role is the permission level stored on a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CrossFieldPath is the field the empty-update error is reported on. The rule concerns the
// whole payload; it is attributed to "name" so existing clients keep matching on it.
const CrossFieldPath = "name"

const msgEmptyUpdate = "At least one field must be provided to update"

// UserUpdate is a normalised partial update. A nil field was omitted by the caller.
type UserUpdate struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Role  *Role   `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// Count returns how many fields are present.
func (u UserUpdate) Count() int {
	n := 0
	if u.Name != nil {
		n++
	}
	if u.Email != nil {
		n++
	}
	if u.Role != nil {
		n++
	}
	return n
}

// Fields returns the present fields in the generic shape ValidateUserUpdate accepts.
func (u UserUpdate) Fields() map[string]any {
	out := make(map[string]any, 3)
	if u.Name != nil {
		out["name"] = *u.Name
	}
	if u.Email != nil {
		out["email"] = *u.Email
	}
	if u.Role != nil {
		out["role"] = string(*u.Role)
	}
	return out
}

// refinement is a whole-object rule checked once every field passed on its own.
type refinement func(UserUpdate) *FieldError

var userUpdateRefinements = []refinement{requireAnyField}

func requireAnyField(u UserUpdate) *FieldError {
	if u.Count() > 0 {
		return nil
	}
	return &FieldError{Field: CrossFieldPath, Kind: CrossFieldInvalid, Message: msgEmptyUpdate}
}

var userUpdateOrder = map[string]int{"name": 0, "email": 1, "role": 2}

// ValidateUserUpdate checks an object with optional name, email and role keys. Unknown keys are
// ignored. Every field problem is reported together; the "at least one field" rule only runs
// when all fields are valid.
func ValidateUserUpdate(input any) (UserUpdate, error) {
	obj, ok := asObject(input)
	if !ok {
		return UserUpdate{}, fail(RootPath, TypeMismatch, "Expected object, received "+receivedType(input))
	}

	var (
		upd  UserUpdate
		errs []FieldError
	)

	if s, present, fe := stringField(obj, "name"); fe != nil {
		errs = append(errs, *fe)
	} else if present {
		name := strings.TrimSpace(s)
		upd.Name = &name
	}

	if s, present, fe := stringField(obj, "email"); fe != nil {
		errs = append(errs, *fe)
	} else if present {
		email := strings.ToLower(strings.TrimSpace(s))
		upd.Email = &email
	}

	if s, present, fe := stringField(obj, "role"); fe != nil {
		errs = append(errs, *fe)
	} else if present {
		role := Role(s)
		upd.Role = &role
	}

	errs = append(errs, FromValidatorErrors(validate.Struct(upd))...)
	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool {
			return userUpdateOrder[errs[i].Field] < userUpdateOrder[errs[j].Field]
		})
		return UserUpdate{}, &ValidationError{Errors: errs}
	}

	for _, refine := range userUpdateRefinements {
		if fe := refine(upd); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return UserUpdate{}, &ValidationError{Errors: errs}
	}
	return upd, nil
}

// DecodeUserUpdate parses a JSON request body and validates it. An empty body is treated as {}.
func DecodeUserUpdate(body []byte) (UserUpdate, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return ValidateUserUpdate(map[string]any{})
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return UserUpdate{}, fail(RootPath, TypeMismatch, "Invalid JSON: "+err.Error())
	}
	return ValidateUserUpdate(v)
}

func stringField(obj map[string]any, key string) (string, bool, *FieldError) {
	v, ok := obj[key]
	if !ok {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", true, &FieldError{Field: key, Kind: TypeMismatch, Message: "Expected string, received " + receivedType(v)}
	}
	return s, true, nil
}

func asObject(input any) (map[string]any, bool) {
	switch m := input.(type) {
	case map[string]any:
		if m == nil {
			return nil, false
		}
		return m, true
	case map[string]string:
		if m == nil {
			return nil, false
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	case IDParam:
		return map[string]any{idField: m.ID}, true
	case UserUpdate:
		return m.Fields(), true
	case *UserUpdate:
		if m == nil {
			return nil, false
		}
		return m.Fields(), true
	}
	return nil, false
}
