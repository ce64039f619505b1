package account

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tidywave/config"
	"tidywave/models"
	"tidywave/utils"
)

// RegisterRequest is the client sign-up payload.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest carries client credentials plus the TOTP code when the
// account has a second factor enabled.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code"`
}

var (
	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[\W_]`)
)

// verifyPasswordComplexity checks that the password contains at least one
// lowercase letter, one uppercase letter, one digit, and one symbol.
func verifyPasswordComplexity(pw string) error {
	switch {
	case len(pw) < 8:
		return &AuthError{Code: CodeWeakPassword, Message: "password must be at least 8 characters long"}
	case !upperRe.MatchString(pw):
		return &AuthError{Code: CodeWeakPassword, Message: "password must include at least one uppercase letter"}
	case !lowerRe.MatchString(pw):
		return &AuthError{Code: CodeWeakPassword, Message: "password must include at least one lowercase letter"}
	case !digitRe.MatchString(pw):
		return &AuthError{Code: CodeWeakPassword, Message: "password must include at least one number"}
	case !symbolRe.MatchString(pw):
		return &AuthError{Code: CodeWeakPassword, Message: "password must include at least one symbol"}
	}
	return nil
}

// Register creates a client account and queues the verification email. The
// account can log in immediately; verification only gates nothing beyond the
// verified badge and is re-requestable.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.Client, error) {
	logger := utils.GetLogger()

	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, &AuthError{Code: CodeInvalidInput, Message: "full name, email and password are required"}
	}
	if err := verifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.Clients.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("failed to check for existing client", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, &AuthError{Code: CodeEmailTaken, Message: "an account with this email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now().UTC()
	client := &models.Client{
		ID:                  uuid.New().String(),
		FullName:            req.FullName,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		PasswordHash:        string(hash),
		VerificationToken:   uuid.New().String(),
		VerificationExpires: now.Add(time.Duration(config.AppConfig.VerificationTokenHours) * time.Hour),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.Clients.Create(ctx, client); err != nil {
		logger.Error("failed to create client", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	if err := s.Mail.EnqueueVerificationEmail(ctx, client.Email, client.FullName, client.VerificationToken); err != nil {
		logger.Error("failed to enqueue verification email", zap.Error(err), zap.String("clientID", client.ID))
	}

	logger.Info("client registered", zap.String("clientID", client.ID))
	return client, nil
}

// VerifyEmail consumes a verification token. Expired or unknown tokens are
// rejected; verification is idempotent for an already-verified account.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	client, err := s.Clients.GetByVerificationToken(ctx, token)
	if err != nil || client == nil {
		return errInvalidToken()
	}

	client.EmailVerified = true
	client.VerificationToken = ""
	client.VerificationExpires = time.Time{}
	client.UpdatedAt = time.Now().UTC()
	if err := s.Clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	utils.GetLogger().Info("client email verified", zap.String("clientID", client.ID))
	return nil
}

// ResendVerification issues a fresh verification token for an unverified
// account. It reports success for unknown emails so the endpoint cannot be
// used to probe which addresses have accounts.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	client, err := s.Clients.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up client: %w", err)
	}
	if client == nil || client.EmailVerified {
		return nil
	}

	client.VerificationToken = uuid.New().String()
	client.VerificationExpires = time.Now().UTC().Add(time.Duration(config.AppConfig.VerificationTokenHours) * time.Hour)
	client.UpdatedAt = time.Now().UTC()
	if err := s.Clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to rotate verification token: %w", err)
	}
	return s.Mail.EnqueueVerificationEmail(ctx, client.Email, client.FullName, client.VerificationToken)
}

// Login authenticates a client. Failed attempts are counted and the account
// locks for a configured window after too many. Accounts with TOTP enabled
// must present a valid code; its absence is signalled with CodeTOTPRequired
// so the UI can prompt for it.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*models.Client, *TokenPair, error) {
	logger := utils.GetLogger()
	now := time.Now().UTC()

	client, err := s.Clients.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.Error("failed to fetch client for login", zap.Error(err))
		return nil, nil, fmt.Errorf("authentication failed, please try again")
	}
	if client == nil {
		return nil, nil, errInvalidCredentials()
	}
	if client.Locked(now) {
		return nil, nil, errAccountLocked()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, client, now)
		return nil, nil, errInvalidCredentials()
	}

	if client.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, nil, &AuthError{Code: CodeTOTPRequired, Message: "a TOTP code is required"}
		}
		if !validTOTPCode(client.TOTPSecret, req.TOTPCode) {
			s.recordFailedLogin(ctx, client, now)
			return nil, nil, &AuthError{Code: CodeInvalidTOTP, Message: "invalid TOTP code"}
		}
	}

	if client.FailedLoginAttempts > 0 || !client.LockedUntil.IsZero() {
		client.FailedLoginAttempts = 0
		client.LockedUntil = time.Time{}
		client.UpdatedAt = now
		if err := s.Clients.Update(ctx, client); err != nil {
			logger.Error("failed to reset login counters", zap.Error(err))
		}
	}

	pair, err := issueTokens(ctx, client.ID, utils.PrincipalClient)
	if err != nil {
		logger.Error("failed to issue tokens", zap.Error(err))
		return nil, nil, fmt.Errorf("authentication failed, please try again")
	}

	logger.Info("client logged in", zap.String("clientID", client.ID))
	return client, pair, nil
}

// recordFailedLogin bumps the failure counter and locks the account when the
// limit is hit. Best-effort; a failed persist never masks the auth error.
func (s *Service) recordFailedLogin(ctx context.Context, client *models.Client, now time.Time) {
	client.FailedLoginAttempts++
	if client.FailedLoginAttempts >= config.AppConfig.MaxFailedLogins {
		client.LockedUntil = now.Add(time.Duration(config.AppConfig.LockoutMinutes) * time.Minute)
		client.FailedLoginAttempts = 0
		utils.GetLogger().Warn("client account locked",
			zap.String("clientID", client.ID), zap.Time("until", client.LockedUntil))
	}
	client.UpdatedAt = now
	if err := s.Clients.Update(ctx, client); err != nil {
		utils.GetLogger().Error("failed to record failed login", zap.Error(err))
	}
}

// RequestPasswordReset queues a reset email. Like ResendVerification, it
// reports success for unknown emails.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	client, err := s.Clients.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up client: %w", err)
	}
	if client == nil {
		return nil
	}

	client.VerificationToken = uuid.New().String()
	client.VerificationExpires = time.Now().UTC().Add(time.Duration(config.AppConfig.VerificationTokenHours) * time.Hour)
	client.UpdatedAt = time.Now().UTC()
	if err := s.Clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return s.Mail.EnqueuePasswordResetEmail(ctx, client.Email, client.FullName, client.VerificationToken)
}

// ResetPassword consumes a reset token and installs the new password. All
// existing sessions are revoked.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := verifyPasswordComplexity(newPassword); err != nil {
		return err
	}

	client, err := s.Clients.GetByVerificationToken(ctx, token)
	if err != nil || client == nil {
		return errInvalidToken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	client.PasswordHash = string(hash)
	client.VerificationToken = ""
	client.VerificationExpires = time.Time{}
	client.FailedLoginAttempts = 0
	client.LockedUntil = time.Time{}
	client.UpdatedAt = time.Now().UTC()
	if err := s.Clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.Logout(ctx, client.ID, ""); err != nil {
		utils.GetLogger().Error("failed to revoke sessions after reset", zap.Error(err))
	}

	utils.GetLogger().Info("client password reset", zap.String("clientID", client.ID))
	return nil
}

// GetClient fetches a client profile.
func (s *Service) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return s.Clients.GetByID(ctx, id)
}

// ProfileUpdate carries the client-editable profile fields. Email changes go
// through re-verification and are not handled here.
type ProfileUpdate struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateProfile edits the client's own profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.Client, error) {
	client, err := s.Clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FullName != "" {
		client.FullName = update.FullName
	}
	client.Phone = update.Phone
	client.Address = update.Address
	client.UpdatedAt = time.Now().UTC()

	if err := s.Clients.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return client, nil
}
