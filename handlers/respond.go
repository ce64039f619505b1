package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adminRepo "tidywave/database/repository/admin"
	cleanerRepo "tidywave/database/repository/cleaner"
	clientRepo "tidywave/database/repository/client"
	orderRepo "tidywave/database/repository/order"
	serviceRepo "tidywave/database/repository/service"
	"tidywave/models"
	"tidywave/services/account"
	"tidywave/services/catalog"
	"tidywave/services/order"
)

// respondError maps service errors onto HTTP statuses. Anything unrecognized
// is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var authErr *account.AuthError
	if errors.As(err, &authErr) {
		status := http.StatusUnauthorized
		switch authErr.Code {
		case account.CodeAccountLocked:
			status = http.StatusForbidden
		case account.CodeEmailTaken:
			status = http.StatusConflict
		case account.CodeWeakPassword, account.CodeInvalidInput:
			status = http.StatusBadRequest
		case account.CodeNotFound:
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": authErr.Message, "code": authErr.Code})
		return
	}

	var bookingErr *order.BookingError
	if errors.As(err, &bookingErr) {
		status := http.StatusBadRequest
		switch bookingErr.Code {
		case order.CodeSlotUnavailable:
			status = http.StatusUnprocessableEntity
		case order.CodeInvalidTransition:
			status = http.StatusConflict
		case order.CodeUnknownCleaner:
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": bookingErr.Message, "code": bookingErr.Code})
		return
	}

	var catErr *catalog.CatalogError
	if errors.As(err, &catErr) {
		status := http.StatusBadRequest
		if catErr.Code == catalog.CodeUnknownBlock {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": catErr.Message, "code": catErr.Code})
		return
	}

	var transitionErr *models.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error(), "code": order.CodeInvalidTransition})
		return
	}

	switch {
	case errors.Is(err, serviceRepo.ErrNotFound),
		errors.Is(err, orderRepo.ErrNotFound),
		errors.Is(err, clientRepo.ErrNotFound),
		errors.Is(err, adminRepo.ErrNotFound),
		errors.Is(err, cleanerRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
