// Package jobs defines the asynq task types, the queue client and the
// background worker: reset email delivery and the scheduled low stock scan.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail delivers transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeLowStockScan walks product quantities and raises alerts.
	TaskTypeLowStockScan = "stock:scan"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewLowStockScanTask constructs the scheduled scan task. The scan covers
// every company, so the payload is empty.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeLowStockScan, nil)
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Delivery goes to stdout until an SMTP relay is configured.
	slog.Default().Info("send email", "to", payload.To, "subject", payload.Subject)
	return nil
}

// ResetEmailBody renders the reset email for a token.
func ResetEmailBody(token string) string {
	return fmt.Sprintf("A password reset was requested for your account.\n\nYour reset token: %s\n\nThe token expires in one hour. If you did not request this, ignore this message.", token)
}
