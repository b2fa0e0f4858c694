package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderPDF(ctx context.Context, sourceName string, source []byte) ([]byte, error) {
	args := m.Called(ctx, sourceName, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
