// Package handler provides the HTTP handlers for the settings feature.
package handler

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"membership_backend/internal/api"
	"membership_backend/internal/feature/settings/domain/entity"
	"membership_backend/internal/feature/settings/transport/http/dto"
	"membership_backend/internal/feature/settings/usecase"
)

// SettingsUsecase defines the usecase interface for settings operations.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type SettingsUsecase interface {
	Get(ctx context.Context) (*entity.Settings, error)
	GetPublic(ctx context.Context) (usecase.PublicDetails, error)
	UpdatePaymentDetails(ctx context.Context, in usecase.UpdateInput) (*entity.Settings, error)
	SetQRImage(ctx context.Context, path string) (*entity.Settings, error)
}

// ImageSaver stores an uploaded image and returns its public path.
type ImageSaver interface {
	Save(file *multipart.FileHeader, folder string) (string, error)
}

// SettingsHandler handles HTTP requests for settings operations.
type SettingsHandler struct {
	settings SettingsUsecase
	images   ImageSaver
}

// NewSettingsHandler creates a new instance of SettingsHandler.
func NewSettingsHandler(settings SettingsUsecase, images ImageSaver) *SettingsHandler {
	return &SettingsHandler{settings: settings, images: images}
}

// Get returns the admin view of the payment settings.
//
// Endpoint: GET /admin/settings (admin)
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settings.Get(c.Request.Context())
	if err != nil {
		slog.Error("settings lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(s))
}

// GetPublic returns the member-facing payment details: bank and UPI fields,
// the current default amount and the plan list.
//
// Endpoint: GET /payment-details
func (h *SettingsHandler) GetPublic(c *gin.Context) {
	details, err := h.settings.GetPublic(c.Request.Context())
	if err != nil {
		slog.Error("public payment details failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load payment details"})
		return
	}
	plans := make([]api.PlanResponse, 0, len(details.Plans))
	for _, p := range details.Plans {
		plans = append(plans, api.PlanResponse{ID: p.ID, Name: p.Name, Price: p.Price, CreatedAt: p.CreatedAt})
	}
	s := details.Settings
	c.JSON(http.StatusOK, api.PublicSettingsResponse{
		BankName:      s.BankName,
		AccountName:   s.AccountName,
		AccountNumber: s.AccountNumber,
		IFSC:          s.IFSC,
		UpiID:         s.UpiID,
		QRImage:       s.QRImage,
		DefaultAmount: details.DefaultAmount,
		Plans:         plans,
	})
}

// Update applies a partial edit to the bank and UPI fields.
//
// Endpoint: PUT /admin/settings (admin)
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	s, err := h.settings.UpdatePaymentDetails(c.Request.Context(), usecase.UpdateInput{
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		IFSC:          req.IFSC,
		UpiID:         req.UpiID,
	})
	if err != nil {
		slog.Error("settings update failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(s))
}

// UploadQR replaces the payment QR image.
//
// Endpoint: POST /admin/settings/qr (admin, multipart)
func (h *SettingsHandler) UploadQR(c *gin.Context) {
	file, err := c.FormFile("qrImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "qr image is required"})
		return
	}
	path, err := h.images.Save(file, "qr")
	if err != nil {
		slog.Warn("qr image rejected", "error", err)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	s, err := h.settings.SetQRImage(c.Request.Context(), path)
	if err != nil {
		slog.Error("qr image update failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update qr image"})
		return
	}
	c.JSON(http.StatusOK, toSettingsResponse(s))
}

func toSettingsResponse(s *entity.Settings) api.SettingsResponse {
	return api.SettingsResponse{
		BankName:      s.BankName,
		AccountName:   s.AccountName,
		AccountNumber: s.AccountNumber,
		IFSC:          s.IFSC,
		UpiID:         s.UpiID,
		QRImage:       s.QRImage,
		UpdatedAt:     s.UpdatedAt,
	}
}
