// Package entity defines the domain entities for the membership feature.
package entity

import "time"

// Member statuses. Transitions are deliberately unguarded: any value in the
// set may replace any other at any time.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Membership types. All new records are one-time; "lifetime" only appears
// in legacy data. The account table spells one-time without the dash.
const (
	TypeOneTime       = "one-time"
	TypeLifetime      = "lifetime"
	TypeOneTimeLegacy = "onetime"
)

// ValidStatus reports whether s is a recognized member status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Member is the membership application of record.
//
// The plan fields are a snapshot taken at application or edit time; they do
// not follow later plan changes. MemberID is immutable once assigned and is
// never reused, even after deletion.
type Member struct {
	// ID is the database identifier.
	ID uint `gorm:"primaryKey"`

	// MemberID is the human-readable identifier, format MBR-<year>-<seq>.
	MemberID string `gorm:"uniqueIndex;size:32;not null"`

	FullName   string `gorm:"size:255;not null"`
	FatherName string `gorm:"size:255;not null"`
	Mobile     string `gorm:"size:32;not null"`

	// Email is the informal join key to the paired account. Always lowercased.
	Email string `gorm:"index;size:255;not null"`

	Address    string `gorm:"size:512;not null"`
	Occupation string `gorm:"size:255;not null"`

	// AnnualIncome is self-reported and never negative.
	AnnualIncome float64 `gorm:"not null"`

	// MembershipType is one-time for all new records; lifetime is legacy.
	MembershipType string `gorm:"size:32;not null"`

	// MembershipPlanID references the plan the fee was snapshotted from.
	// It may be stale or dangling; the snapshot below stays authoritative.
	MembershipPlanID   string  `gorm:"size:32"`
	MembershipPlanName string  `gorm:"size:255"`
	MembershipFee      float64 `gorm:"not null"`

	// ProfileImage is the public path of the uploaded profile image, if any.
	ProfileImage string `gorm:"size:512"`

	// Status is pending, approved or rejected.
	Status string `gorm:"size:16;not null;default:pending"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stats are the public membership counters.
type Stats struct {
	TotalMembers    int64 `json:"totalMembers"`
	LifetimeMembers int64 `json:"lifetimeMembers"`
	OneTimeMembers  int64 `json:"oneTimeMembers"`
}

// Summary are the admin dashboard counters.
type Summary struct {
	TotalMembers              int64 `json:"totalMembers"`
	LifetimeMembers           int64 `json:"lifetimeMembers"`
	OneTimeMembers            int64 `json:"oneTimeMembers"`
	PendingMembershipRequests int64 `json:"pendingMembershipRequests"`
	PendingPaymentRequests    int64 `json:"pendingPaymentRequests"`
}
