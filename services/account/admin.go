package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tidywave/config"
	adminRepo "tidywave/database/repository/admin"
	"tidywave/models"
	"tidywave/utils"
)

// AdminLoginRequest carries back-office credentials.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code"`
}

// AdminLogin authenticates a back-office account with the same lockout and
// TOTP rules as client login.
func (s *Service) AdminLogin(ctx context.Context, req AdminLoginRequest) (*models.Admin, *TokenPair, error) {
	logger := utils.GetLogger()
	now := time.Now().UTC()

	admin, err := s.Admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, adminRepo.ErrNotFound) {
			return nil, nil, errInvalidCredentials()
		}
		logger.Error("failed to fetch admin for login", zap.Error(err))
		return nil, nil, fmt.Errorf("authentication failed, please try again")
	}
	if !admin.LockedUntil.IsZero() && now.Before(admin.LockedUntil) {
		return nil, nil, errAccountLocked()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedAdminLogin(ctx, admin, now)
		return nil, nil, errInvalidCredentials()
	}

	if admin.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, nil, &AuthError{Code: CodeTOTPRequired, Message: "a TOTP code is required"}
		}
		if !validTOTPCode(admin.TOTPSecret, req.TOTPCode) {
			s.recordFailedAdminLogin(ctx, admin, now)
			return nil, nil, &AuthError{Code: CodeInvalidTOTP, Message: "invalid TOTP code"}
		}
	}

	if admin.FailedLoginAttempts > 0 || !admin.LockedUntil.IsZero() {
		admin.FailedLoginAttempts = 0
		admin.LockedUntil = time.Time{}
		admin.UpdatedAt = now
		if err := s.Admins.Update(ctx, admin); err != nil {
			logger.Error("failed to reset admin login counters", zap.Error(err))
		}
	}

	pair, err := issueTokens(ctx, admin.ID, utils.PrincipalAdmin)
	if err != nil {
		logger.Error("failed to issue admin tokens", zap.Error(err))
		return nil, nil, fmt.Errorf("authentication failed, please try again")
	}

	logger.Info("admin logged in", zap.String("adminID", admin.ID))
	return admin, pair, nil
}

func (s *Service) recordFailedAdminLogin(ctx context.Context, admin *models.Admin, now time.Time) {
	admin.FailedLoginAttempts++
	if admin.FailedLoginAttempts >= config.AppConfig.MaxFailedLogins {
		admin.LockedUntil = now.Add(time.Duration(config.AppConfig.LockoutMinutes) * time.Minute)
		admin.FailedLoginAttempts = 0
		utils.GetLogger().Warn("admin account locked",
			zap.String("adminID", admin.ID), zap.Time("until", admin.LockedUntil))
	}
	admin.UpdatedAt = now
	if err := s.Admins.Update(ctx, admin); err != nil {
		utils.GetLogger().Error("failed to record failed admin login", zap.Error(err))
	}
}

// CreateAdmin provisions a back-office account. Only existing admins reach
// this through the API; it is also used by first-run seeding.
func (s *Service) CreateAdmin(ctx context.Context, username, email, password, role string) (*models.Admin, error) {
	if username == "" || password == "" {
		return nil, &AuthError{Code: CodeInvalidInput, Message: "username and password are required"}
	}
	if err := verifyPasswordComplexity(password); err != nil {
		return nil, err
	}

	if existing, err := s.Admins.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, &AuthError{Code: CodeEmailTaken, Message: "an admin with this username already exists"}
	} else if err != nil && !errors.Is(err, adminRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &models.Admin{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Admins.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	utils.GetLogger().Info("admin created", zap.String("adminID", admin.ID), zap.String("role", role))
	return admin, nil
}
