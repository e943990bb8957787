package textract

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"receiptscan/internal/config"
)

// DetectDocumentTextAPI is the slice of the Textract client the OCR adapter
// needs; tests substitute it with a mock.
type DetectDocumentTextAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// Client adapts the AWS Textract service to port.OcrClient.
type Client struct {
	api DetectDocumentTextAPI
}

// NewClient creates a Textract-backed OCR client.
func NewClient(cfg *config.TextractConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &Client{api: textract.NewFromConfig(awsCfg)}, nil
}

// NewClientWithAPI creates a client over an explicit API implementation (for testing).
func NewClientWithAPI(api DetectDocumentTextAPI) *Client {
	return &Client{api: api}
}

func (c *Client) DetectText(ctx context.Context, data []byte) (string, error) {
	out, err := c.api.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: data},
	})
	if err != nil {
		return "", fmt.Errorf("textract detect: %w", err)
	}
	return joinLines(out.Blocks), nil
}

func (c *Client) DetectStoredText(ctx context.Context, bucket, key string) (string, error) {
	out, err := c.api.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("textract detect (s3): %w", err)
	}
	return joinLines(out.Blocks), nil
}

// joinLines concatenates LINE blocks in the order Textract returns them,
// which follows reading order.
func joinLines(blocks []types.Block) string {
	var b strings.Builder
	for _, block := range blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(*block.Text)
	}
	return b.String()
}
