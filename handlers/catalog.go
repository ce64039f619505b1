package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tidywave/models"
	"tidywave/services/catalog"
	"tidywave/services/pricing"
)

// CatalogHandler serves the public catalog and its admin management.
type CatalogHandler struct {
	Catalog *catalog.Service
	Pricer  *pricing.Pricer
}

func NewCatalogHandler(cat *catalog.Service, pricer *pricing.Pricer) *CatalogHandler {
	return &CatalogHandler{Catalog: cat, Pricer: pricer}
}

// ListPublishedHandler lists the services visible to clients.
func (h *CatalogHandler) ListPublishedHandler(c *gin.Context) {
	services, err := h.Catalog.ListServices(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetPublishedHandler fetches one published service.
func (h *CatalogHandler) GetPublishedHandler(c *gin.Context) {
	svc, err := h.Catalog.GetPublishedService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// PricingStructureHandler returns the active pricing blocks of a published
// service, in display order, for the booking form.
func (h *CatalogHandler) PricingStructureHandler(c *gin.Context) {
	blocks, err := h.Catalog.PricingStructure(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, blocks)
}

// QuoteHandler prices one published service from explicit block selections
// without creating anything.
func (h *CatalogHandler) QuoteHandler(c *gin.Context) {
	var req struct {
		Selections []models.PricingSelection `json:"selections" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	quote, err := h.Pricer.QuoteService(c.Request.Context(), c.Param("id"), req.Selections)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateServiceHandler adds a catalog entry.
func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	var req catalog.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	svc, err := h.Catalog.CreateService(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateServiceHandler edits a catalog entry.
func (h *CatalogHandler) UpdateServiceHandler(c *gin.Context) {
	var req catalog.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	svc, err := h.Catalog.UpdateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ListServicesHandler lists the whole catalog for admins.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.ListServices(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetServiceHandler fetches any service for admins.
func (h *CatalogHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// SetPublishedHandler publishes or unpublishes a service.
func (h *CatalogHandler) SetPublishedHandler(c *gin.Context) {
	var req struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	svc, err := h.Catalog.SetPublished(c.Request.Context(), c.Param("id"), *req.Published)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// AddBlockHandler appends a pricing block to a service.
func (h *CatalogHandler) AddBlockHandler(c *gin.Context) {
	var req catalog.BlockInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Catalog.AddBlock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// UpdateBlockHandler edits a pricing block.
func (h *CatalogHandler) UpdateBlockHandler(c *gin.Context) {
	var req catalog.BlockInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	block, err := h.Catalog.UpdateBlock(c.Request.Context(), c.Param("id"), c.Param("blockID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// SetBlockActiveHandler activates or deactivates a pricing block.
func (h *CatalogHandler) SetBlockActiveHandler(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Catalog.SetBlockActive(c.Request.Context(), c.Param("id"), c.Param("blockID"), *req.Active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "block updated"})
}

// ReorderBlocksHandler rewrites the display order of a service's blocks.
func (h *CatalogHandler) ReorderBlocksHandler(c *gin.Context) {
	var req struct {
		BlockIDs []string `json:"block_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	svc, err := h.Catalog.ReorderBlocks(c.Request.Context(), c.Param("id"), req.BlockIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}
