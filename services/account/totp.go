package account

import (
	"context"
	"fmt"
	"time"

	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"

	"tidywave/config"
	"tidywave/utils"
)

// TOTPSetup is returned when a client begins TOTP enrolment. The secret stays
// provisional until EnableTOTP confirms the client's authenticator works.
type TOTPSetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

func validTOTPCode(secret, code string) bool {
	return totp.Validate(code, secret)
}

// SetupTOTP generates a new secret for the client and returns the otpauth
// provisioning URL for authenticator apps. Calling it again before enabling
// replaces the provisional secret.
func (s *Service) SetupTOTP(ctx context.Context, clientID string) (*TOTPSetup, error) {
	client, err := s.Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.TOTPEnabled {
		return nil, &AuthError{Code: CodeInvalidInput, Message: "TOTP is already enabled"}
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      config.AppConfig.TOTPIssuer,
		AccountName: client.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	client.TOTPSecret = key.Secret()
	client.UpdatedAt = time.Now().UTC()
	if err := s.Clients.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	return &TOTPSetup{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

// EnableTOTP turns the second factor on after the client proves their
// authenticator produces valid codes for the provisional secret.
func (s *Service) EnableTOTP(ctx context.Context, clientID, code string) error {
	client, err := s.Clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client.TOTPSecret == "" {
		return &AuthError{Code: CodeInvalidInput, Message: "TOTP setup has not been started"}
	}
	if !validTOTPCode(client.TOTPSecret, code) {
		return &AuthError{Code: CodeInvalidTOTP, Message: "invalid TOTP code"}
	}

	client.TOTPEnabled = true
	client.UpdatedAt = time.Now().UTC()
	if err := s.Clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to enable TOTP: %w", err)
	}

	utils.GetLogger().Info("TOTP enabled", zap.String("clientID", clientID))
	return nil
}

// DisableTOTP removes the second factor. The current code is required so a
// stolen session alone cannot weaken the account.
func (s *Service) DisableTOTP(ctx context.Context, clientID, code string) error {
	client, err := s.Clients.GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	if !client.TOTPEnabled {
		return nil
	}
	if !validTOTPCode(client.TOTPSecret, code) {
		return &AuthError{Code: CodeInvalidTOTP, Message: "invalid TOTP code"}
	}

	client.TOTPEnabled = false
	client.TOTPSecret = ""
	client.UpdatedAt = time.Now().UTC()
	if err := s.Clients.Update(ctx, client); err != nil {
		return fmt.Errorf("failed to disable TOTP: %w", err)
	}

	utils.GetLogger().Info("TOTP disabled", zap.String("clientID", clientID))
	return nil
}
