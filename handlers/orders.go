package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	orderRepo "tidywave/database/repository/order"
	"tidywave/middleware"
	"tidywave/models"
	"tidywave/services/order"
)

// OrderHandler serves client booking endpoints and their admin counterparts.
type OrderHandler struct {
	Orders *order.Service
}

func NewOrderHandler(orders *order.Service) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// AvailableSlotsHandler lists bookable start times for a date. The optional
// duration query (minutes) scopes the probe to the caller's intended booking.
func (h *OrderHandler) AvailableSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	duration, _ := strconv.Atoi(c.Query("duration"))

	slots, err := h.Orders.AvailableSlots(c.Request.Context(), date, duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// PreviewOrderHandler prices a prospective order without booking it.
func (h *OrderHandler) PreviewOrderHandler(c *gin.Context) {
	var req struct {
		Items []models.OrderItemInput `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	total, err := h.Orders.PreviewOrder(c.Request.Context(), req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, total)
}

// CreateOrderHandler books an order for the authenticated client.
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ord, err := h.Orders.CreateOrder(c.Request.Context(), c.GetString(middleware.ContextClientID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ord)
}

// ListMyOrdersHandler lists the caller's own orders.
func (h *OrderHandler) ListMyOrdersHandler(c *gin.Context) {
	orders, err := h.Orders.ListClientOrders(c.Request.Context(), c.GetString(middleware.ContextClientID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetMyOrderHandler fetches one of the caller's orders.
func (h *OrderHandler) GetMyOrderHandler(c *gin.Context) {
	ord, err := h.Orders.GetClientOrder(c.Request.Context(), c.GetString(middleware.ContextClientID), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// CancelMyOrderHandler cancels one of the caller's orders.
func (h *OrderHandler) CancelMyOrderHandler(c *gin.Context) {
	ord, err := h.Orders.CancelOrder(c.Request.Context(), c.GetString(middleware.ContextClientID), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// ListOrdersHandler lists orders for admins, filtered by status and date
// range query parameters.
func (h *OrderHandler) ListOrdersHandler(c *gin.Context) {
	filter := orderRepo.ListFilter{
		Status:   models.OrderStatus(c.Query("status")),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	if filter.Status != "" && !models.ValidOrderStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	orders, err := h.Orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderHandler fetches any order for admins.
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	ord, err := h.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// UpdateOrderStatusHandler moves an order along its lifecycle.
func (h *OrderHandler) UpdateOrderStatusHandler(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Notes  string             `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ord, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}

// AssignCleanerHandler attaches a cleaner to an order.
func (h *OrderHandler) AssignCleanerHandler(c *gin.Context) {
	var req struct {
		CleanerID string `json:"cleaner_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ord, err := h.Orders.AssignCleaner(c.Request.Context(), c.Param("id"), req.CleanerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ord)
}
