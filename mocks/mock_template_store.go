package mocks

import "github.com/stretchr/testify/mock"

// MockTemplateStore is a mock implementation of port.TemplateStore.
type MockTemplateStore struct {
	mock.Mock
}

func (m *MockTemplateStore) Load(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}
