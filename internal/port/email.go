package port

import "context"

// EmailSender defines the contract for workflow notification emails.
type EmailSender interface {
	// SendFileSubmitted notifies reviewers that a file awaits approval.
	SendFileSubmitted(ctx context.Context, toEmail, fileName, uploaderName string) error
	// SendFileReviewed notifies the uploader of an approve or reject
	// decision; comment carries the rejection reason when present.
	SendFileReviewed(ctx context.Context, toEmail, fileName, decision, comment string) error
}
