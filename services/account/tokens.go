package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tidywave/config"
	"tidywave/utils"
)

// TokenPair is the result of a successful authentication: a short-lived JWT
// access token and an opaque refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
}

// issueTokens creates a fresh token pair for the principal and records both
// in the auth cache: the access token's hash under auth:<subject> so the auth
// middleware can verify it without a database read, and the refresh token's
// hash under refresh:<hash> so refresh tokens are single-use and revocable.
func issueTokens(ctx context.Context, subject, kind string) (*TokenPair, error) {
	accessTTL := time.Duration(config.AppConfig.AccessTokenMinutes) * time.Minute
	refreshTTL := time.Duration(config.AppConfig.RefreshTokenDays) * 24 * time.Hour

	access, err := utils.GenerateToken(subject, kind, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh := uuid.New().String() + uuid.New().String()

	cache := utils.GetAuthCacheClient()
	if err := cache.Set(ctx, utils.AuthCachePrefix+subject, utils.HashToken(access), accessTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache access token: %w", err)
	}
	refreshKey := utils.RefreshTokenPrefix + utils.HashToken(refresh)
	if err := cache.Set(ctx, refreshKey, kind+":"+subject, refreshTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(accessTTL.Seconds()),
	}, nil
}

// Refresh rotates a refresh token: the presented token is consumed and a new
// pair is issued. An unknown or already-used token is rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	cache := utils.GetAuthCacheClient()
	key := utils.RefreshTokenPrefix + utils.HashToken(refreshToken)

	principal, err := cache.Get(ctx, key).Result()
	if err != nil || principal == "" {
		return nil, errInvalidToken()
	}
	kind, subject, ok := strings.Cut(principal, ":")
	if !ok {
		return nil, errInvalidToken()
	}

	// Single use: consume before reissuing.
	if err := cache.Del(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}

	pair, err := issueTokens(ctx, subject, kind)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Debug("token pair refreshed", zap.String("subject", subject), zap.String("kind", kind))
	return pair, nil
}

// Logout revokes the principal's cached access token and the presented
// refresh token. Missing cache entries are fine; logout is idempotent.
func (s *Service) Logout(ctx context.Context, subject, refreshToken string) error {
	cache := utils.GetAuthCacheClient()
	keys := []string{utils.AuthCachePrefix + subject}
	if refreshToken != "" {
		keys = append(keys, utils.RefreshTokenPrefix+utils.HashToken(refreshToken))
	}
	if err := cache.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}
