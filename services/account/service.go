// Package account implements client and admin authentication: registration
// with email verification, credential login with lockout, TOTP second
// factor, and token lifecycle against the Redis auth cache.
package account

import (
	"context"

	adminRepo "tidywave/database/repository/admin"
	clientRepo "tidywave/database/repository/client"
)

// Mailer enqueues outbound account emails. Delivery is asynchronous; a
// failed enqueue fails the operation that needed the email.
type Mailer interface {
	EnqueueVerificationEmail(ctx context.Context, email, name, token string) error
	EnqueuePasswordResetEmail(ctx context.Context, email, name, token string) error
}

// Service wires the account repositories and the mail queue.
type Service struct {
	Clients clientRepo.ClientRepository
	Admins  adminRepo.AdminRepository
	Mail    Mailer
}
