package textract

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"receiptscan/internal/domain"
	"receiptscan/internal/port"
)

// Textract is the direct OCR text source: bytes go straight to the OCR call.
type Textract struct {
	ocr port.OcrClient
}

// NewTextract creates a direct OCR text source.
func NewTextract(ocr port.OcrClient) *Textract {
	return &Textract{ocr: ocr}
}

func (t *Textract) Load(ctx context.Context, data []byte) (domain.TextContent, error) {
	text, err := t.ocr.DetectText(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOcrServiceFailed, err)
	}
	return domain.TextContent(text), nil
}

// S3Upload is the staged OCR text source: input bytes are uploaded to the
// staging bucket first, OCR runs against the stored object, and the object is
// deleted afterwards whether or not OCR succeeded.
type S3Upload struct {
	ocr     port.OcrClient
	storage port.ObjectStorage
	bucket  string
}

// NewS3Upload creates a staged OCR text source using the given bucket.
func NewS3Upload(ocr port.OcrClient, storage port.ObjectStorage, bucket string) *S3Upload {
	return &S3Upload{ocr: ocr, storage: storage, bucket: bucket}
}

func (t *S3Upload) Load(ctx context.Context, data []byte) (domain.TextContent, error) {
	key := "ocr-staging/" + uuid.New().String()

	err := t.storage.Upload(ctx, port.UploadInput{
		Bucket:      t.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageWriteFailed, err)
	}
	defer func() {
		if err := t.storage.Delete(ctx, t.bucket, key); err != nil {
			log.Printf("textract.S3Upload: deleting staged object %s/%s: %v", t.bucket, key, err)
		}
	}()

	text, err := t.ocr.DetectStoredText(ctx, t.bucket, key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOcrServiceFailed, err)
	}
	return domain.TextContent(text), nil
}
