// Package dto defines data transfer objects for the plans feature's HTTP transport layer.
package dto

// CreatePlanReq is the request body for POST /plans.
type CreatePlanReq struct {
	Name  string   `json:"name" binding:"required"`
	Price *float64 `json:"price" binding:"required,gte=0"`
}

// UpdatePlanReq is the request body for PUT /plans/:id.
// Omitted fields are left unchanged.
type UpdatePlanReq struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price" binding:"omitempty,gte=0"`
}
