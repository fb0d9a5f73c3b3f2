// Package dto defines data transfer objects for the payments feature's HTTP transport layer.
package dto

// SubmitPaymentReq is the multipart form body of a payment submission.
// The screenshot file part is handled separately by the handler.
type SubmitPaymentReq struct {
	Category string  `form:"category" binding:"required,oneof=imdad zakat fitra blindDonation"`
	Amount   float64 `form:"amount" binding:"required,gt=0"`
	Note     string  `form:"note"`
}

// UpdatePaymentStatusReq is the JSON body for a payment status change.
type UpdatePaymentStatusReq struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}
