// Package usecase implements the business logic for the payments feature.
package usecase

import "errors"

var (
	// ErrPaymentNotFound is returned when a payment cannot be found by ID.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidCategory is returned for categories outside the
	// imdad/zakat/fitra/blindDonation set.
	ErrInvalidCategory = errors.New("invalid payment category")

	// ErrInvalidStatus is returned when a status value is outside the
	// pending/approved/rejected set.
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrScreenshotRequired is returned when a submission carries no
	// proof screenshot.
	ErrScreenshotRequired = errors.New("payment screenshot is required")
)
