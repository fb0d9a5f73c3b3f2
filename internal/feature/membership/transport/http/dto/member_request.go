// Package dto defines data transfer objects for the membership feature's HTTP transport layer.
package dto

// ApplyReq is the multipart form body of a public membership application.
// The optional profileImage file part is handled separately by the handler.
type ApplyReq struct {
	FullName          string  `form:"fullName" binding:"required"`
	FatherName        string  `form:"fatherName" binding:"required"`
	Mobile            string  `form:"mobile" binding:"required"`
	Email             string  `form:"email" binding:"required,email"`
	Address           string  `form:"address" binding:"required"`
	Occupation        string  `form:"occupation" binding:"required"`
	AnnualIncome      float64 `form:"annualIncome" binding:"gte=0"`
	MembershipPriceID string  `form:"membershipPriceId"`
}

// AdminCreateReq is the JSON body for admin member creation.
type AdminCreateReq struct {
	FullName          string  `json:"fullName" binding:"required"`
	FatherName        string  `json:"fatherName" binding:"required"`
	Mobile            string  `json:"mobile" binding:"required"`
	Email             string  `json:"email" binding:"required,email"`
	Address           string  `json:"address" binding:"required"`
	Occupation        string  `json:"occupation" binding:"required"`
	AnnualIncome      float64 `json:"annualIncome" binding:"gte=0"`
	MembershipPriceID string  `json:"membershipPriceId"`
	Password          string  `json:"password"`
	Status            string  `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// UpdateMemberReq is the JSON body for an admin member edit.
// Absent fields are left unchanged.
type UpdateMemberReq struct {
	FullName          *string  `json:"fullName"`
	FatherName        *string  `json:"fatherName"`
	Mobile            *string  `json:"mobile"`
	Email             *string  `json:"email" binding:"omitempty,email"`
	Address           *string  `json:"address"`
	Occupation        *string  `json:"occupation"`
	AnnualIncome      *float64 `json:"annualIncome" binding:"omitempty,gte=0"`
	MembershipPriceID *string  `json:"membershipPriceId"`
	ProfileImage      *string  `json:"profileImage"`
	Status            *string  `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// UpdateStatusReq is the JSON body for a member status change.
type UpdateStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}
