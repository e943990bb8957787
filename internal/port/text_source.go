package port

import (
	"context"

	"receiptscan/internal/domain"
)

// TextSource produces receipt text from raw image or PDF bytes. Implementations
// fail with domain.ErrStorageWriteFailed when staging the input fails and with
// domain.ErrOcrServiceFailed when the OCR call itself errors.
type TextSource interface {
	Load(ctx context.Context, data []byte) (domain.TextContent, error)
}
