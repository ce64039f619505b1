package models

import "time"

// Client is a customer account. Password is accepted on registration only and
// never persisted; PasswordHash stores the bcrypt digest.
type Client struct {
	ID                  string    `bson:"id" json:"id"`
	FullName            string    `bson:"full_name" json:"full_name"`
	Email               string    `bson:"email" json:"email"`
	Phone               string    `bson:"phone" json:"phone"`
	Address             string    `bson:"address" json:"address"`
	Password            string    `bson:"-" json:"password,omitempty"`
	PasswordHash        string    `bson:"password_hash" json:"-"`
	TOTPSecret          string    `bson:"totp_secret,omitempty" json:"-"`
	TOTPEnabled         bool      `bson:"totp_enabled" json:"totp_enabled"`
	EmailVerified       bool      `bson:"email_verified" json:"email_verified"`
	VerificationToken   string    `bson:"verification_token,omitempty" json:"-"`
	VerificationExpires time.Time `bson:"verification_expires,omitempty" json:"-"`
	FailedLoginAttempts int       `bson:"failed_login_attempts" json:"-"`
	LockedUntil         time.Time `bson:"locked_until,omitempty" json:"-"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}

// Locked reports whether the account is currently locked out.
func (c *Client) Locked(now time.Time) bool {
	return !c.LockedUntil.IsZero() && now.Before(c.LockedUntil)
}
