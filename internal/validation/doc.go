// Package validation checks and normalises user-facing request input before it reaches the
// store.
//
// Two entry points are provided:
//
//   - ValidateIDParam coerces the "id" path parameter into a positive integer.
//   - ValidateUserUpdate checks a partial update of name, email and role, trimming and
//     lower-casing where needed, and requires at least one of them to be present.
//
// Both accept loosely typed input (decoded JSON objects or path parameter maps) and return
// either the normalised value or a *ValidationError listing every rejected field. They hold no
// state and may be called concurrently.
//
// Authorization is not decided here: whether the caller may change a role is up to
// service.AuthorizeUserUpdate, which receives the validated UserUpdate.
package validation
