package noop

import (
	"context"
	"log"

	"budgetflow/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs notifications to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendFileSubmitted(_ context.Context, toEmail, fileName, uploaderName string) error {
	log.Printf("[NOOP EMAIL] To %s: %s uploaded %q for review", toEmail, uploaderName, fileName)
	return nil
}

func (s *noopSender) SendFileReviewed(_ context.Context, toEmail, fileName, decision, comment string) error {
	log.Printf("[NOOP EMAIL] To %s: file %q was %s (comment: %q)", toEmail, fileName, decision, comment)
	return nil
}
