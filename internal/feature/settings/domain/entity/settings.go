// Package entity defines the domain entities for the settings feature.
package entity

import "time"

// Settings is the single row of organization payment details shown to
// members: bank account, UPI handle and the payment QR image.
type Settings struct {
	ID uint `gorm:"primaryKey"`

	BankName      string `gorm:"size:255"`
	AccountName   string `gorm:"size:255"`
	AccountNumber string `gorm:"size:64"`

	// IFSC is the bank branch code used for Indian transfers.
	IFSC string `gorm:"column:ifsc;size:16"`

	UpiID string `gorm:"size:255"`

	// QRImage is the public path of the uploaded payment QR code.
	QRImage string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default gorm table name.
func (Settings) TableName() string {
	return "admin_settings"
}
