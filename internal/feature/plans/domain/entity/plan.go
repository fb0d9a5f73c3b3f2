// Package entity defines the domain entities for the plans feature.
package entity

import "time"

// Plan represents an admin-configured membership pricing option.
// Member records snapshot the plan's name and price at application time,
// so deleting a plan never changes a recorded fee.
type Plan struct {
	// ID is the unique identifier for the plan.
	ID uint `gorm:"primaryKey"`

	// Name is the display name of the plan. Blank names are normalized
	// to "Plan <price>" when listed.
	Name string `gorm:"size:255;not null"`

	// Price is the membership fee for this plan. Never negative.
	Price float64 `gorm:"not null"`

	// CreatedAt is the timestamp when the plan was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the plan was last updated.
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM.
func (Plan) TableName() string {
	return "membership_plans"
}

// Selection is the resolved fee snapshot a member record is stamped with.
// PlanID is empty when no plan exists at all.
type Selection struct {
	Fee      float64
	PlanName string
	PlanID   string
}
