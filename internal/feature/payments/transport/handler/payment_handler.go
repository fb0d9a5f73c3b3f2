// Package handler provides the HTTP handlers for the payments feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"membership_backend/internal/api"
	"membership_backend/internal/feature/payments/domain/entity"
	"membership_backend/internal/feature/payments/transport/http/dto"
	"membership_backend/internal/feature/payments/usecase"
	jwtmw "membership_backend/internal/platform/jwt"
)

// PaymentUsecase defines the usecase interface for payment operations.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type PaymentUsecase interface {
	Submit(ctx context.Context, accountID uint, in usecase.SubmitInput) (*entity.Payment, error)
	ListMine(ctx context.Context, accountID uint) ([]entity.Payment, error)
	ListAll(ctx context.Context, filter usecase.ListFilter) ([]usecase.PaymentWithPayer, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*entity.Payment, error)
}

// ImageSaver stores an uploaded image and returns its public path.
type ImageSaver interface {
	Save(file *multipart.FileHeader, folder string) (string, error)
}

// PaymentHandler handles HTTP requests for payment operations.
type PaymentHandler struct {
	payments PaymentUsecase
	images   ImageSaver
}

// NewPaymentHandler creates a new instance of PaymentHandler.
func NewPaymentHandler(payments PaymentUsecase, images ImageSaver) *PaymentHandler {
	return &PaymentHandler{payments: payments, images: images}
}

// Submit records a payment for the authenticated member.
// The proof screenshot is a required multipart file part.
//
// Endpoint: POST /payments (authenticated)
func (h *PaymentHandler) Submit(c *gin.Context) {
	var req dto.SubmitPaymentReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	file, err := c.FormFile("screenshot")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "payment screenshot is required"})
		return
	}
	path, err := h.images.Save(file, "payments")
	if err != nil {
		slog.Warn("payment screenshot rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	accountID := c.GetUint(jwtmw.ContextUserID)
	payment, err := h.payments.Submit(c.Request.Context(), accountID, usecase.SubmitInput{
		Category:   req.Category,
		Amount:     req.Amount,
		Screenshot: path,
		Note:       req.Note,
	})
	if err != nil {
		h.writePaymentError(c, err, "payment submission failed")
		return
	}
	slog.Info("payment submitted", "payment_id", payment.ID, "category", payment.Category, "account_id", accountID)
	c.JSON(http.StatusCreated, toPaymentResponse(payment, nil))
}

// ListMine returns the authenticated caller's payments.
//
// Endpoint: GET /payments/me (authenticated)
func (h *PaymentHandler) ListMine(c *gin.Context) {
	accountID := c.GetUint(jwtmw.ContextUserID)
	payments, err := h.payments.ListMine(c.Request.Context(), accountID)
	if err != nil {
		slog.Error("payment listing failed", "error", err, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list payments"})
		return
	}
	items := make([]api.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, toPaymentResponse(&payments[i], nil))
	}
	c.JSON(http.StatusOK, items)
}

// ListAll returns the admin payment listing with payer details.
//
// Endpoint: GET /admin/payments?status=&category= (admin)
func (h *PaymentHandler) ListAll(c *gin.Context) {
	filter := usecase.ListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	payments, err := h.payments.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.writePaymentError(c, err, "admin payment listing failed")
		return
	}
	items := make([]api.PaymentResponse, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		items = append(items, toPaymentResponse(&p.Payment, &api.PaymentPayer{
			Name:     p.Payer.Name,
			Email:    p.Payer.Email,
			MemberID: p.Payer.MemberID,
		}))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateStatus moves a payment to a new review status.
//
// Endpoint: PATCH /admin/payments/:id/status (admin)
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid payment id"})
		return
	}
	var req dto.UpdatePaymentStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	payment, err := h.payments.UpdateStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		h.writePaymentError(c, err, "payment status update failed")
		return
	}
	slog.Info("payment status updated", "payment_id", payment.ID, "status", payment.Status)
	c.JSON(http.StatusOK, toPaymentResponse(payment, nil))
}

// writePaymentError maps usecase errors onto HTTP statuses.
func (h *PaymentHandler) writePaymentError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, usecase.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "payment not found"})
	case errors.Is(err, usecase.ErrInvalidCategory),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrScreenshotRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error(logMsg, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func toPaymentResponse(p *entity.Payment, payer *api.PaymentPayer) api.PaymentResponse {
	return api.PaymentResponse{
		ID:         p.ID,
		Category:   p.Category,
		Amount:     p.Amount,
		Screenshot: p.Screenshot,
		Note:       p.Note,
		Status:     p.Status,
		Payer:      payer,
		CreatedAt:  p.CreatedAt,
	}
}
