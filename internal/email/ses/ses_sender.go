package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"budgetflow/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendFileSubmitted(ctx context.Context, toEmail, fileName, uploaderName string) error {
	subject := fmt.Sprintf("Budget file awaiting review: %s", fileName)
	htmlBody := buildSubmittedHTML(fileName, uploaderName, s.frontendURL)
	textBody := fmt.Sprintf("%s uploaded %q and it is awaiting your review.\n\nReview it at %s/budgets\n\nBudgetFlow", uploaderName, fileName, s.frontendURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendFileReviewed(ctx context.Context, toEmail, fileName, decision, comment string) error {
	subject := fmt.Sprintf("Your budget file was %s: %s", decision, fileName)
	htmlBody := buildReviewedHTML(fileName, decision, comment, s.frontendURL)
	textBody := fmt.Sprintf("Your file %q was %s.", fileName, decision)
	if comment != "" {
		textBody += fmt.Sprintf("\n\nReviewer comment: %s", comment)
	}
	textBody += fmt.Sprintf("\n\nSee details at %s/budgets\n\nBudgetFlow", s.frontendURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSubmittedHTML(fileName, uploaderName, frontendURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Budget file awaiting review</h2>
  <p><strong>%s</strong> uploaded <strong>%s</strong> and it is awaiting your review.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s/budgets" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Review Submission</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">BudgetFlow - Budget Planning Platform</p>
</body>
</html>`, html.EscapeString(uploaderName), html.EscapeString(fileName), frontendURL)
}

func buildReviewedHTML(fileName, decision, comment, frontendURL string) string {
	commentBlock := ""
	if comment != "" {
		commentBlock = fmt.Sprintf(`<p style="background: #f5f5f5; padding: 12px; border-radius: 6px;">Reviewer comment: %s</p>`, html.EscapeString(comment))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your budget file was %s</h2>
  <p>File <strong>%s</strong> was %s.</p>
  %s
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s/budgets" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View File</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">BudgetFlow - Budget Planning Platform</p>
</body>
</html>`, html.EscapeString(decision), html.EscapeString(fileName), html.EscapeString(decision), commentBlock, frontendURL)
}
