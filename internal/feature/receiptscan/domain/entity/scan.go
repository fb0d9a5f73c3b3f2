// Package entity defines the domain models for the receiptscan feature.
package entity

// ScanResult is the outcome of scanning a payment screenshot.
type ScanResult struct {
	// Text is the raw OCR text extracted from the image.
	Text string
	// Summary is the model-generated summary of the receipt contents.
	Summary string
}
