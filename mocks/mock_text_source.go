package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"receiptscan/internal/domain"
)

// MockTextSource is a mock implementation of port.TextSource.
type MockTextSource struct {
	mock.Mock
}

func (m *MockTextSource) Load(ctx context.Context, data []byte) (domain.TextContent, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(domain.TextContent), args.Error(1)
}
