// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Account roles.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Account is a login identity. Every approved or pending member has a
// paired account joined by lowercased email; the administrator does not —
// admin login works against fixed environment credentials and its token
// carries a zero subject.
type Account struct {
	// ID is the database identifier.
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"size:255;not null"`

	// Email is the login identifier and the informal join key to the
	// member record. Always lowercased, unique.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	Phone string `gorm:"size:32"`

	// Password is the bcrypt hash. The default for accounts created through
	// a membership application is the applicant's mobile number.
	Password string `gorm:"size:255;not null"`

	Address string `gorm:"size:512"`

	// MembershipType uses the account table's legacy spelling: "onetime",
	// not the member record's "one-time".
	MembershipType string `gorm:"size:32"`

	// MembershipStatus mirrors the paired member record's status.
	MembershipStatus string `gorm:"size:32"`

	// Role is admin or member. Stored accounts are always members.
	Role string `gorm:"size:32;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the subset of member-record fields mirrored onto the paired
// account whenever the member record changes. Credentials are never part
// of the mirror.
type Profile struct {
	Name             string
	Phone            string
	Address          string
	MembershipType   string
	MembershipStatus string
}
