package di

import (
	"context"
	"errors"
	"log"

	"membership_backend/internal/feature/receiptscan/adapters/gemini"
	"membership_backend/internal/feature/receiptscan/adapters/vision"
	"membership_backend/internal/feature/receiptscan/domain/entity"
	"membership_backend/internal/feature/receiptscan/transport/handler"
	"membership_backend/internal/feature/receiptscan/usecase"
)

// NewReceiptScanUsecase wires the Vision and Gemini clients into the receipt
// scanner. When either client cannot be created (no Google credentials in the
// environment), the endpoint stays mounted but reports itself unavailable
// instead of taking the server down.
func NewReceiptScanUsecase(ctx context.Context) handler.ReceiptScanUsecase {
	extractor, err := vision.NewVisionTextExtractor(ctx)
	if err != nil {
		log.Println("[WARN] Vision client unavailable. Receipt scanning disabled:", err)
		return unavailableScanner{}
	}
	summarizer, err := gemini.NewGeminiSummarizer(ctx)
	if err != nil {
		log.Println("[WARN] Gemini client unavailable. Receipt scanning disabled:", err)
		return unavailableScanner{}
	}
	return usecase.NewReceiptScanUsecase(extractor, summarizer)
}

// unavailableScanner stands in when the Google clients could not be created.
type unavailableScanner struct{}

func (unavailableScanner) Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
	return nil, errors.New("receipt scanning is not configured")
}
