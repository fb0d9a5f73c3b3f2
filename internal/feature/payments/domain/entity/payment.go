// Package entity defines the domain entities for the payments feature.
package entity

import "time"

// Payment statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Payment categories. blindDonation keeps its camel-cased historical form
// because stored rows already use it.
const (
	CategoryImdad         = "imdad"
	CategoryZakat         = "zakat"
	CategoryFitra         = "fitra"
	CategoryBlindDonation = "blindDonation"
)

// ValidCategory reports whether c is a recognized payment category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryImdad, CategoryZakat, CategoryFitra, CategoryBlindDonation:
		return true
	}
	return false
}

// ValidStatus reports whether s is a recognized payment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Payment is a member-submitted payment with its proof screenshot.
type Payment struct {
	ID uint `gorm:"primaryKey"`

	// AccountID links the payment to the submitting account.
	AccountID uint `gorm:"index;not null"`

	Category string  `gorm:"size:32;not null"`
	Amount   float64 `gorm:"not null"`

	// Screenshot is the public path of the uploaded proof image.
	Screenshot string `gorm:"size:512;not null"`

	Note string `gorm:"size:512"`

	Status string `gorm:"size:16;not null;default:pending"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
