package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to stage an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// ObjectStorage abstracts cloud object storage used to stage OCR input.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) error
	Delete(ctx context.Context, bucket, key string) error
}
