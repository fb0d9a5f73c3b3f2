package api

import "time"

// PlanResponse is the wire representation of a membership plan.
type PlanResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountResponse is the wire representation of an account. The password
// hash never leaves the server.
type AccountResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	MembershipStatus string `json:"membershipStatus"`
}

// MemberResponse is the wire representation of a member record.
type MemberResponse struct {
	ID                 uint      `json:"id"`
	MemberID           string    `json:"memberId"`
	FullName           string    `json:"fullName"`
	FatherName         string    `json:"fatherName"`
	Mobile             string    `json:"mobile"`
	Email              string    `json:"email"`
	Address            string    `json:"address"`
	Occupation         string    `json:"occupation"`
	AnnualIncome       float64   `json:"annualIncome"`
	MembershipType     string    `json:"membershipType"`
	MembershipPlanID   string    `json:"membershipPlanId,omitempty"`
	MembershipPlanName string    `json:"membershipPlanName"`
	MembershipFee      float64   `json:"membershipFee"`
	ProfileImage       string    `json:"profileImage,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PaymentPayer is the member summary joined onto an admin payment listing.
type PaymentPayer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	MemberID string `json:"memberId,omitempty"`
}

// PaymentResponse is the wire representation of a submitted payment.
type PaymentResponse struct {
	ID         uint          `json:"id"`
	Category   string        `json:"category"`
	Amount     float64       `json:"amount"`
	Screenshot string        `json:"screenshot"`
	Note       string        `json:"note,omitempty"`
	Status     string        `json:"status"`
	Payer      *PaymentPayer `json:"payer,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// SettingsResponse is the admin view of the payment settings.
type SettingsResponse struct {
	BankName      string    `json:"bankName"`
	AccountName   string    `json:"accountName"`
	AccountNumber string    `json:"accountNumber"`
	IFSC          string    `json:"ifsc"`
	UpiID         string    `json:"upiId"`
	QRImage       string    `json:"qrImage,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PublicSettingsResponse is the public payment-details view: bank and UPI
// details, the current default amount and the available plans.
type PublicSettingsResponse struct {
	BankName      string         `json:"bankName"`
	AccountName   string         `json:"accountName"`
	AccountNumber string         `json:"accountNumber"`
	IFSC          string         `json:"ifsc"`
	UpiID         string         `json:"upiId"`
	QRImage       string         `json:"qrImage,omitempty"`
	DefaultAmount float64        `json:"defaultAmount"`
	Plans         []PlanResponse `json:"plans"`
}

// ReceiptScanResponse carries the OCR text and model summary for a scanned
// payment screenshot.
type ReceiptScanResponse struct {
	Text    string `json:"text"`
	Summary string `json:"summary"`
}

// UploadResponse carries the public path of a stored upload.
type UploadResponse struct {
	Path string `json:"path"`
}
