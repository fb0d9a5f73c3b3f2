// Package usecase implements the business logic for the plans feature.
package usecase

import "errors"

var (
	// ErrPlanNotFound is returned when a plan cannot be found by ID.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrDuplicatePlan is returned when a residual unique index on the plan
	// table rejects an insert. The usecase repairs the index and retries once
	// before surfacing this to the caller.
	ErrDuplicatePlan = errors.New("duplicate plan conflict")

	// ErrPlanNameRequired is returned when a plan is created or updated with
	// a blank name.
	ErrPlanNameRequired = errors.New("plan name is required")

	// ErrNegativePrice is returned when a plan price is negative.
	ErrNegativePrice = errors.New("plan price must not be negative")
)
