// Package handler provides the HTTP handlers for the receiptscan feature.
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"membership_backend/internal/api"
	"membership_backend/internal/feature/receiptscan/domain/entity"
)

// ReceiptScanUsecase defines the usecase interface for receipt scanning.
// Following Go convention, the interface is defined by the consumer (handler)
// rather than the provider (usecase).
type ReceiptScanUsecase interface {
	Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error)
}

// ReceiptScanHandler handles HTTP requests for receipt scanning.
type ReceiptScanHandler struct {
	uc ReceiptScanUsecase
}

// NewReceiptScanHandler creates a new instance of ReceiptScanHandler.
func NewReceiptScanHandler(uc ReceiptScanUsecase) *ReceiptScanHandler {
	return &ReceiptScanHandler{uc: uc}
}

// Scan uploads a payment screenshot and returns its OCR text and summary.
//
// Endpoint: POST /admin/receipts/scan (admin)
// Content-Type: multipart/form-data
// Field: image (image file, max 10MB)
func (h *ReceiptScanHandler) Scan(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("receipt image missing", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open receipt image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close receipt image", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read receipt image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	result, err := h.uc.Scan(c.Request.Context(), imageData)
	if err != nil {
		slog.Error("receipt scan failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "receipt scan failed"})
		return
	}

	c.JSON(http.StatusOK, api.ReceiptScanResponse{
		Text:    result.Text,
		Summary: result.Summary,
	})
}
