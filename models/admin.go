package models

import "time"

// Admin is a back-office account.
type Admin struct {
	ID                  string    `bson:"id" json:"id"`
	Username            string    `bson:"username" json:"username"`
	Email               string    `bson:"email" json:"email"`
	PasswordHash        string    `bson:"password_hash" json:"-"`
	Role                string    `bson:"role" json:"role"`
	TOTPSecret          string    `bson:"totp_secret,omitempty" json:"-"`
	TOTPEnabled         bool      `bson:"totp_enabled" json:"totp_enabled"`
	FailedLoginAttempts int       `bson:"failed_login_attempts" json:"-"`
	LockedUntil         time.Time `bson:"locked_until,omitempty" json:"-"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}
