package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockOcrClient is a mock implementation of port.OcrClient.
type MockOcrClient struct {
	mock.Mock
}

func (m *MockOcrClient) DetectText(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *MockOcrClient) DetectStoredText(ctx context.Context, bucket, key string) (string, error) {
	args := m.Called(ctx, bucket, key)
	return args.String(0), args.Error(1)
}
