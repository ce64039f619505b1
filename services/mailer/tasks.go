package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Task types drained by the mail worker.
const (
	TypeVerificationEmail  = "email:verification"
	TypePasswordResetEmail = "email:password_reset"
	TypeOrderReminderEmail = "email:order_reminder"
)

// AccountEmailPayload is shared by verification and password-reset tasks.
type AccountEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// OrderReminderPayload reminds a client of an upcoming confirmed booking.
type OrderReminderPayload struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	OrderID       string `json:"order_id"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
}

// NewOrderReminderTask builds a reminder task scheduled to fire at fireAt.
func NewOrderReminderTask(payload OrderReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return asynq.NewTask(TypeOrderReminderEmail, b), []asynq.Option{asynq.ProcessAt(fireAt)}, nil
}

// Enqueuer queues outbound emails on the asynq mail queue. It satisfies the
// account service's Mailer interface.
type Enqueuer struct {
	Client *asynq.Client
}

func (e *Enqueuer) enqueueAccountEmail(ctx context.Context, taskType, email, name, token string) error {
	b, err := json.Marshal(AccountEmailPayload{Email: email, Name: name, Token: token})
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, asynq.NewTask(taskType, b), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}
	return nil
}

// EnqueueVerificationEmail queues the email-verification message.
func (e *Enqueuer) EnqueueVerificationEmail(ctx context.Context, email, name, token string) error {
	return e.enqueueAccountEmail(ctx, TypeVerificationEmail, email, name, token)
}

// EnqueuePasswordResetEmail queues the password-reset message.
func (e *Enqueuer) EnqueuePasswordResetEmail(ctx context.Context, email, name, token string) error {
	return e.enqueueAccountEmail(ctx, TypePasswordResetEmail, email, name, token)
}

// EnqueueOrderReminder queues a booking reminder to fire at the given time.
func (e *Enqueuer) EnqueueOrderReminder(ctx context.Context, payload OrderReminderPayload, fireAt time.Time) error {
	task, opts, err := NewOrderReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue order reminder: %w", err)
	}
	return nil
}
