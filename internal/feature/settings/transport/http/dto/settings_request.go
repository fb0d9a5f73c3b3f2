// Package dto defines data transfer objects for the settings feature's HTTP transport layer.
package dto

// UpdateSettingsReq is the JSON body for a payment-details edit.
// Absent fields are left unchanged.
type UpdateSettingsReq struct {
	BankName      *string `json:"bankName"`
	AccountName   *string `json:"accountName"`
	AccountNumber *string `json:"accountNumber"`
	IFSC          *string `json:"ifsc"`
	UpiID         *string `json:"upiId"`
}
