// Package usecase implements the business logic for the membership feature.
package usecase

import "errors"

var (
	// ErrMemberNotFound is returned when a member cannot be found by
	// database ID, member ID or email.
	ErrMemberNotFound = errors.New("member not found")

	// ErrInvalidStatus is returned when a status value is outside the
	// pending/approved/rejected set.
	ErrInvalidStatus = errors.New("invalid member status")

	// ErrInvalidInput marks validation failures on application or admin
	// creation payloads. Wrapped errors carry the offending field.
	ErrInvalidInput = errors.New("invalid input")
)
