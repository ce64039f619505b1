// Package mailer sends transactional email over SMTP and defines the asynq
// tasks that defer delivery off the request path.
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"tidywave/config"
)

// Mailer composes and sends the transactional emails. All sends happen from
// worker handlers, never inside an HTTP request.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	base   string
}

// New builds a Mailer from the SMTP configuration.
func New() *Mailer {
	cfg := config.AppConfig
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		base:   cfg.PublicURL,
	}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send %q to %s: %w", subject, to, err)
	}
	return nil
}

// SendVerification delivers the email-verification link.
func (m *Mailer) SendVerification(email, name, token string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nPlease confirm your email address by opening the link below:\n\n%s/auth/verify-email?token=%s\n\nThe link expires in %d hours. If you did not create an account, ignore this message.\n",
		name, m.base, token, config.AppConfig.VerificationTokenHours)
	return m.send(email, "Confirm your email", body)
}

// SendPasswordReset delivers the password-reset link.
func (m *Mailer) SendPasswordReset(email, name, token string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Open the link below to choose a new one:\n\n%s/auth/password-reset?token=%s\n\nIf you did not ask for this, ignore this message and your password stays unchanged.\n",
		name, m.base, token)
	return m.send(email, "Reset your password", body)
}

// SendOrderReminder delivers the day-before booking reminder.
func (m *Mailer) SendOrderReminder(p OrderReminderPayload) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nA reminder that your cleaning is booked for %s at %s.\n\nIf you need to reschedule, cancel the booking and pick a new slot.\n",
		p.Name, p.ScheduledDate, p.ScheduledTime)
	return m.send(p.Email, "Your cleaning is tomorrow", body)
}
