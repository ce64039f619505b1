package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tidywave/config"
	clientRepo "tidywave/database/repository/client"
	"tidywave/models"
)

type fakeClientRepo struct {
	clients map[string]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*models.Client{}}
}

func (r *fakeClientRepo) Create(_ context.Context, c *models.Client) error {
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, c *models.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return clientRepo.ErrNotFound
	}
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*models.Client, error) {
	if c, ok := r.clients[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, clientRepo.ErrNotFound
}

func (r *fakeClientRepo) GetByEmail(_ context.Context, email string) (*models.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) GetByVerificationToken(_ context.Context, token string) (*models.Client, error) {
	now := time.Now().UTC()
	for _, c := range r.clients {
		if c.VerificationToken == token && c.VerificationExpires.After(now) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

type fakeMailer struct {
	verifications []string
	resets        []string
}

func (m *fakeMailer) EnqueueVerificationEmail(_ context.Context, email, _, _ string) error {
	m.verifications = append(m.verifications, email)
	return nil
}

func (m *fakeMailer) EnqueuePasswordResetEmail(_ context.Context, email, _, _ string) error {
	m.resets = append(m.resets, email)
	return nil
}

func testAccountConfig() {
	config.AppConfig.MaxFailedLogins = 3
	config.AppConfig.LockoutMinutes = 15
	config.AppConfig.VerificationTokenHours = 24
}

func TestVerifyPasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		ok       bool
	}{
		{"acceptable", "Str0ng!pass", true},
		{"too short", "S0r!t", false},
		{"no uppercase", "weak0!pass", false},
		{"no digit", "Weakk!pass", false},
		{"no symbol", "Weak0ppass", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyPasswordComplexity(tt.password)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, CodeWeakPassword, authErr.Code)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	testAccountConfig()
	repo := newFakeClientRepo()
	mail := &fakeMailer{}
	svc := &Service{Clients: repo, Mail: mail}

	client, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Ada",
		Email:    "ada@example.com",
		Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.NotEmpty(t, client.PasswordHash)
	assert.NotEqual(t, "Str0ng!pass", client.PasswordHash)
	assert.False(t, client.EmailVerified)
	assert.NotEmpty(t, client.VerificationToken)
	assert.Equal(t, []string{"ada@example.com"}, mail.verifications)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	testAccountConfig()
	svc := &Service{Clients: newFakeClientRepo(), Mail: &fakeMailer{}}

	_, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Ada", Email: "ada@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		FullName: "Ada Again", Email: "ada@example.com", Password: "Str0ng!pass",
	})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeEmailTaken, authErr.Code)
}

func TestVerifyEmail(t *testing.T) {
	testAccountConfig()
	repo := newFakeClientRepo()
	svc := &Service{Clients: repo, Mail: &fakeMailer{}}

	client, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Ada", Email: "ada@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), client.VerificationToken))

	stored, err := repo.GetByID(context.Background(), client.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailVerified)
	assert.Empty(t, stored.VerificationToken)

	err = svc.VerifyEmail(context.Background(), client.VerificationToken)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeInvalidToken, authErr.Code)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	testAccountConfig()
	repo := newFakeClientRepo()
	repo.clients["c1"] = &models.Client{
		ID:                  "c1",
		Email:               "ada@example.com",
		VerificationToken:   "tok",
		VerificationExpires: time.Now().UTC().Add(-time.Hour),
	}
	svc := &Service{Clients: repo, Mail: &fakeMailer{}}

	err := svc.VerifyEmail(context.Background(), "tok")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeInvalidToken, authErr.Code)
}

func TestLoginWrongPasswordLocksAccount(t *testing.T) {
	testAccountConfig()
	repo := newFakeClientRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.clients["c1"] = &models.Client{
		ID: "c1", Email: "ada@example.com", PasswordHash: string(hash),
	}
	svc := &Service{Clients: repo, Mail: &fakeMailer{}}

	for i := 0; i < config.AppConfig.MaxFailedLogins; i++ {
		_, _, err := svc.Login(context.Background(), LoginRequest{
			Email: "ada@example.com", Password: "wrong",
		})
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, CodeInvalidCredentials, authErr.Code)
	}

	// Even the right password is rejected while the lockout holds.
	_, _, err = svc.Login(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "Str0ng!pass",
	})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeAccountLocked, authErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	testAccountConfig()
	svc := &Service{Clients: newFakeClientRepo(), Mail: &fakeMailer{}}

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeInvalidCredentials, authErr.Code)
}

func TestLoginRequiresTOTPWhenEnabled(t *testing.T) {
	testAccountConfig()
	repo := newFakeClientRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("Str0ng!pass"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.clients["c1"] = &models.Client{
		ID: "c1", Email: "ada@example.com", PasswordHash: string(hash),
		TOTPEnabled: true, TOTPSecret: "JBSWY3DPEHPK3PXP",
	}
	svc := &Service{Clients: repo, Mail: &fakeMailer{}}

	_, _, err = svc.Login(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "Str0ng!pass",
	})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeTOTPRequired, authErr.Code)

	_, _, err = svc.Login(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "Str0ng!pass", TOTPCode: "000000",
	})
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, CodeInvalidTOTP, authErr.Code)
}

func TestResendVerificationUnknownEmailSilent(t *testing.T) {
	testAccountConfig()
	mail := &fakeMailer{}
	svc := &Service{Clients: newFakeClientRepo(), Mail: mail}

	require.NoError(t, svc.ResendVerification(context.Background(), "nobody@example.com"))
	assert.Empty(t, mail.verifications)
}

func TestRequestPasswordResetRotatesToken(t *testing.T) {
	testAccountConfig()
	repo := newFakeClientRepo()
	mail := &fakeMailer{}
	svc := &Service{Clients: repo, Mail: mail}

	client, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Ada", Email: "ada@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	originalToken := client.VerificationToken

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "ada@example.com"))
	assert.Equal(t, []string{"ada@example.com"}, mail.resets)

	stored, err := repo.GetByID(context.Background(), client.ID)
	require.NoError(t, err)
	assert.NotEqual(t, originalToken, stored.VerificationToken)
}
