package handlers

import (
	"net/http"
	"strconv"

	"localserve/database/repository"
	"localserve/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandlers serves the fixed service set and per-service filter
// definitions for clients building search forms.
type CatalogHandlers struct {
	Catalog repository.CatalogRepository
}

func NewCatalogHandlers(catalog repository.CatalogRepository) *CatalogHandlers {
	return &CatalogHandlers{Catalog: catalog}
}

func (h *CatalogHandlers) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.Services(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services})
}

func (h *CatalogHandlers) ServiceFiltersHandler(c *gin.Context) {
	serviceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "service id must be an integer"})
		return
	}
	if _, err := h.Catalog.ServiceByID(c.Request.Context(), serviceID); err != nil {
		utils.RespondWithError(c, err)
		return
	}
	filters, err := h.Catalog.FiltersByService(c.Request.Context(), serviceID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": filters})
}
