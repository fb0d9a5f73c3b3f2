// Package vision provides a text-extraction client backed by the Google
// Cloud Vision API.
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"membership_backend/internal/feature/receiptscan/usecase"
)

// VisionTextExtractor extracts text from images using the Vision API.
type VisionTextExtractor struct {
	client *gvision.ImageAnnotatorClient
}

// Compile-time check that VisionTextExtractor implements TextExtractor.
var _ usecase.TextExtractor = (*VisionTextExtractor)(nil)

// NewVisionTextExtractor creates a new instance of VisionTextExtractor
// using application default credentials.
func NewVisionTextExtractor(ctx context.Context) (*VisionTextExtractor, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionTextExtractor{client: client}, nil
}

// Close releases the Vision API client.
func (v *VisionTextExtractor) Close() error {
	return v.client.Close()
}

// ExtractText runs TEXT_DETECTION over the image bytes and returns the
// full recognized text. An image with no text returns an empty string.
func (v *VisionTextExtractor) ExtractText(ctx context.Context, imageData []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imageData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", nil
	}
	if resp.Responses[0].Error != nil {
		return "", fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	// The first annotation aggregates the full text of the image.
	annotations := resp.Responses[0].TextAnnotations
	if len(annotations) == 0 {
		return "", nil
	}
	return annotations[0].Description, nil
}
