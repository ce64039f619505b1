package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tidywave/middleware"
	"tidywave/services/account"
)

// AuthHandler serves client authentication endpoints.
type AuthHandler struct {
	Accounts *account.Service
}

func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

// RegisterHandler creates a client account and queues the verification email.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	client, err := h.Accounts.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

// LoginHandler authenticates a client and returns a token pair.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	client, pair, err := h.Accounts.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client, "tokens": pair})
}

// RefreshHandler rotates a refresh token into a new pair.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	pair, err := h.Accounts.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// LogoutHandler revokes the caller's tokens.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)

	clientID := c.GetString(middleware.ContextClientID)
	if err := h.Accounts.Logout(c.Request.Context(), clientID, req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// VerifyEmailHandler consumes an email verification token.
func (h *AuthHandler) VerifyEmailHandler(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	if err := h.Accounts.VerifyEmail(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ResendVerificationHandler re-issues the verification email.
func (h *AuthHandler) ResendVerificationHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Accounts.ResendVerification(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification email sent if the account exists"})
}

// ForgotPasswordHandler queues a password reset email.
func (h *AuthHandler) ForgotPasswordHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reset email sent if the account exists"})
}

// ResetPasswordHandler consumes a reset token and sets the new password.
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Accounts.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// ProfileHandler returns the caller's own profile.
func (h *AuthHandler) ProfileHandler(c *gin.Context) {
	client, err := h.Accounts.GetClient(c.Request.Context(), c.GetString(middleware.ContextClientID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateProfileHandler edits the caller's profile fields.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	var req account.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	client, err := h.Accounts.UpdateProfile(c.Request.Context(), c.GetString(middleware.ContextClientID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// SetupTOTPHandler starts TOTP enrolment for the caller.
func (h *AuthHandler) SetupTOTPHandler(c *gin.Context) {
	setup, err := h.Accounts.SetupTOTP(c.Request.Context(), c.GetString(middleware.ContextClientID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setup)
}

// EnableTOTPHandler confirms enrolment with a code from the authenticator.
func (h *AuthHandler) EnableTOTPHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Accounts.EnableTOTP(c.Request.Context(), c.GetString(middleware.ContextClientID), req.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "TOTP enabled"})
}

// DisableTOTPHandler removes the second factor.
func (h *AuthHandler) DisableTOTPHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Accounts.DisableTOTP(c.Request.Context(), c.GetString(middleware.ContextClientID), req.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "TOTP disabled"})
}
