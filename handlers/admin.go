package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cleanerRepo "tidywave/database/repository/cleaner"
	"tidywave/middleware"
	"tidywave/models"
	"tidywave/services/account"
)

// AdminHandler serves back-office authentication and staff management.
type AdminHandler struct {
	Accounts *account.Service
	Cleaners cleanerRepo.CleanerRepository
}

func NewAdminHandler(accounts *account.Service, cleaners cleanerRepo.CleanerRepository) *AdminHandler {
	return &AdminHandler{Accounts: accounts, Cleaners: cleaners}
}

// LoginHandler authenticates an admin and returns a token pair.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req account.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	admin, pair, err := h.Accounts.AdminLogin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin, "tokens": pair})
}

// LogoutHandler revokes the admin's tokens.
func (h *AdminHandler) LogoutHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&req)

	adminID := c.GetString(middleware.ContextAdminID)
	if err := h.Accounts.Logout(c.Request.Context(), adminID, req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CreateAdminHandler provisions another back-office account.
func (h *AdminHandler) CreateAdminHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	admin, err := h.Accounts.CreateAdmin(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// CleanerInput carries the editable cleaner fields.
type CleanerInput struct {
	FullName      string   `json:"full_name" binding:"required"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	CalendarEmail string   `json:"calendar_email"`
	ServiceIDs    []string `json:"service_ids"`
}

// CreateCleanerHandler adds a staff member.
func (h *AdminHandler) CreateCleanerHandler(c *gin.Context) {
	var req CleanerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	now := time.Now().UTC()
	cleaner := &models.Cleaner{
		ID:            uuid.New().String(),
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		CalendarEmail: req.CalendarEmail,
		ServiceIDs:    req.ServiceIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.Cleaners.Create(c.Request.Context(), cleaner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cleaner)
}

// UpdateCleanerHandler edits a staff member.
func (h *AdminHandler) UpdateCleanerHandler(c *gin.Context) {
	var req CleanerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	cleaner, err := h.Cleaners.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	cleaner.FullName = req.FullName
	cleaner.Phone = req.Phone
	cleaner.Email = req.Email
	cleaner.CalendarEmail = req.CalendarEmail
	cleaner.ServiceIDs = req.ServiceIDs
	cleaner.UpdatedAt = time.Now().UTC()
	if err := h.Cleaners.Update(c.Request.Context(), cleaner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cleaner)
}

// ListCleanersHandler lists all staff.
func (h *AdminHandler) ListCleanersHandler(c *gin.Context) {
	cleaners, err := h.Cleaners.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cleaners)
}

// GetCleanerHandler fetches one staff member.
func (h *AdminHandler) GetCleanerHandler(c *gin.Context) {
	cleaner, err := h.Cleaners.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cleaner)
}
