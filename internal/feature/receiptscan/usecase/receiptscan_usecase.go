// Package usecase implements the business logic for the receiptscan feature.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"membership_backend/internal/feature/receiptscan/domain/entity"
)

const (
	// MaxImageSize is the maximum accepted screenshot size (10MB).
	MaxImageSize = 10 * 1024 * 1024

	// SummaryPromptTemplate asks the model to condense the OCR text of a
	// payment screenshot into the fields a reviewer cares about.
	SummaryPromptTemplate = "The following text was extracted from a payment receipt screenshot. " +
		"Summarize in one short paragraph: the amount paid, the payment method or reference number, " +
		"the date, and anything that looks inconsistent.\n\n%s"
)

// TextExtractor extracts text from an image.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type TextExtractor interface {
	// ExtractText runs OCR over the image bytes and returns the full text.
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// ReceiptSummarizer generates a summary from a prompt.
// Following Go convention, the interface is defined by the consumer (usecase)
// rather than the provider (adapters).
type ReceiptSummarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// receiptScanUsecase turns a payment screenshot into reviewable text.
type receiptScanUsecase struct {
	extractor  TextExtractor
	summarizer ReceiptSummarizer
}

// NewReceiptScanUsecase creates a new instance of receiptScanUsecase.
func NewReceiptScanUsecase(extractor TextExtractor, summarizer ReceiptSummarizer) *receiptScanUsecase {
	return &receiptScanUsecase{extractor: extractor, summarizer: summarizer}
}

// Scan runs OCR over the screenshot and summarizes the extracted text.
// A screenshot with no recognizable text yields an empty result rather
// than an error.
func (u *receiptScanUsecase) Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("image size exceeds maximum of %d bytes", MaxImageSize)
	}

	text, err := u.extractor.ExtractText(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return &entity.ScanResult{}, nil
	}

	summary, err := u.summarizer.Summarize(ctx, fmt.Sprintf(SummaryPromptTemplate, text))
	if err != nil {
		return nil, fmt.Errorf("receipt summarizer failed: %w", err)
	}
	return &entity.ScanResult{Text: text, Summary: summary}, nil
}
