// Package handler provides the HTTP handlers for the plans feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"membership_backend/internal/api"
	"membership_backend/internal/feature/plans/domain/entity"
	"membership_backend/internal/feature/plans/transport/http/dto"
	"membership_backend/internal/feature/plans/usecase"
)

// PlanUsecase defines the usecase interface for plan administration.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type PlanUsecase interface {
	List(ctx context.Context) ([]entity.Plan, error)
	Create(ctx context.Context, name string, price float64) (*entity.Plan, error)
	Update(ctx context.Context, id uint, name *string, price *float64) (*entity.Plan, error)
	Delete(ctx context.Context, id uint) error
}

// PlanHandler handles HTTP requests for plan administration.
type PlanHandler struct {
	uc PlanUsecase
}

// NewPlanHandler creates a new instance of PlanHandler.
func NewPlanHandler(uc PlanUsecase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// List returns all plans, newest first.
//
// Endpoint: GET /plans (admin)
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("plan list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list plans"})
		return
	}
	out := make([]api.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(&p))
	}
	c.JSON(http.StatusOK, out)
}

// Create adds a new plan.
//
// Endpoint: POST /plans (admin)
func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.CreatePlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "plan name and a non-negative price are required"})
		return
	}

	plan, err := h.uc.Create(c.Request.Context(), req.Name, *req.Price)
	switch {
	case errors.Is(err, usecase.ErrDuplicatePlan):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "duplicate unique index conflict on the plan table; retry after repair failed"})
		return
	case errors.Is(err, usecase.ErrPlanNameRequired), errors.Is(err, usecase.ErrNegativePrice):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("plan create failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create plan"})
		return
	}
	c.JSON(http.StatusCreated, toPlanResponse(plan))
}

// Update changes the name and/or price of a plan.
//
// Endpoint: PUT /plans/:id (admin)
func (h *PlanHandler) Update(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	var req dto.UpdatePlanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	plan, err := h.uc.Update(c.Request.Context(), id, req.Name, req.Price)
	switch {
	case errors.Is(err, usecase.ErrPlanNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "plan not found"})
		return
	case errors.Is(err, usecase.ErrPlanNameRequired), errors.Is(err, usecase.ErrNegativePrice):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("plan update failed", "error", err, "plan_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update plan"})
		return
	}
	c.JSON(http.StatusOK, toPlanResponse(plan))
}

// Delete removes a plan. Existing member records keep their fee snapshot.
//
// Endpoint: DELETE /plans/:id (admin)
func (h *PlanHandler) Delete(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "plan not found"})
			return
		}
		slog.Error("plan delete failed", "error", err, "plan_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete plan"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "plan deleted"})
}

// planID parses the :id path parameter, responding 400 on failure.
func planID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid plan id"})
		return 0, false
	}
	return uint(id), true
}

func toPlanResponse(p *entity.Plan) api.PlanResponse {
	return api.PlanResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}
