package port

import "context"

// OcrClient abstracts the document-text-detection service.
type OcrClient interface {
	// DetectText runs OCR directly on the supplied bytes.
	DetectText(ctx context.Context, data []byte) (string, error)
	// DetectStoredText runs OCR on an object previously staged in storage.
	DetectStoredText(ctx context.Context, bucket, key string) (string, error)
}
