package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"membership_backend/internal/feature/receiptscan/domain/entity"
)

// mockReceiptScanUsecase is a mock implementation of the ReceiptScanUsecase interface.
type mockReceiptScanUsecase struct {
	ScanFunc func(ctx context.Context, imageData []byte) (*entity.ScanResult, error)
}

func (m *mockReceiptScanUsecase) Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
	if m.ScanFunc != nil {
		return m.ScanFunc(ctx, imageData)
	}
	return nil, errors.New("scan failed")
}

func newScanRouter(uc ReceiptScanUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/receipts/scan", NewReceiptScanHandler(uc).Scan)
	return r
}

func scanRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "receipt.png")
	if err != nil {
		t.Fatalf("failed to create file part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write file part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, "/admin/receipts/scan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestReceiptScanHandler_Scan(t *testing.T) {
	t.Run("success: returns text and summary", func(t *testing.T) {
		var gotData []byte
		uc := &mockReceiptScanUsecase{
			ScanFunc: func(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
				gotData = imageData
				return &entity.ScanResult{Text: "Paid Rs 500", Summary: "Rs 500 paid via UPI."}, nil
			},
		}

		w := httptest.NewRecorder()
		newScanRouter(uc).ServeHTTP(w, scanRequest(t, []byte("fake-png")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []byte("fake-png"), gotData)

		var body gin.H
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Paid Rs 500", body["text"])
		assert.Equal(t, "Rs 500 paid via UPI.", body["summary"])
	})

	t.Run("failure: missing image part", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/admin/receipts/scan", nil)
		newScanRouter(&mockReceiptScanUsecase{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("failure: scan pipeline unavailable", func(t *testing.T) {
		uc := &mockReceiptScanUsecase{
			ScanFunc: func(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
				return nil, errors.New("vision api unreachable")
			},
		}

		w := httptest.NewRecorder()
		newScanRouter(uc).ServeHTTP(w, scanRequest(t, []byte("fake-png")))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
