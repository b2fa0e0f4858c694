package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendFileSubmitted(ctx context.Context, toEmail, fileName, uploaderName string) error {
	args := m.Called(ctx, toEmail, fileName, uploaderName)
	return args.Error(0)
}

func (m *MockEmailSender) SendFileReviewed(ctx context.Context, toEmail, fileName, decision, comment string) error {
	args := m.Called(ctx, toEmail, fileName, decision, comment)
	return args.Error(0)
}
