package service

import (
	"errors"

	"user-service/internal/validation"
)

var ErrForbidden = errors.New("forbidden")

// AuthorizeUserRead allows admins to read anyone and users to read themselves.
func AuthorizeUserRead(caller *Claims, targetID int64) error {
	if caller == nil {
		return ErrForbidden
	}
	if caller.IsAdmin() || caller.UserID == targetID {
		return nil
	}
	return ErrForbidden
}

// AuthorizeUserUpdate decides whether caller may apply upd to targetID. Non-admins may only
// edit their own name and email; any role change needs an admin.
func AuthorizeUserUpdate(caller *Claims, targetID int64, upd validation.UserUpdate) error {
	if caller == nil {
		return ErrForbidden
	}
	if caller.IsAdmin() {
		return nil
	}
	if caller.UserID != targetID || upd.Role != nil {
		return ErrForbidden
	}
	return nil
}
