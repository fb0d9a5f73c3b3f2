// Package gemini provides a receipt-summary client backed by the Google
// Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"membership_backend/internal/feature/receiptscan/usecase"
)

const (
	// DefaultModel is the default Gemini model.
	DefaultModel = "gemini-2.5-flash"
)

// GeminiSummarizer generates receipt summaries using the Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// Compile-time check that GeminiSummarizer implements ReceiptSummarizer.
var _ usecase.ReceiptSummarizer = (*GeminiSummarizer)(nil)

// NewGeminiSummarizer creates a new instance of GeminiSummarizer using
// application default credentials. The environment variables
// GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION
// are required.
func NewGeminiSummarizer(ctx context.Context) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiSummarizer{client: client, model: DefaultModel}, nil
}

// Summarize generates a summary from the given prompt.
func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return resp.Text(), nil
}
