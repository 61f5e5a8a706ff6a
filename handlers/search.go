package handlers

import (
	"net/http"
	"strconv"

	"localserve/middleware"
	"localserve/models"
	"localserve/utils"

	"github.com/gin-gonic/gin"
)

// SearchInput is the provider search payload. Coordinates are pointers so the
// equator and the prime meridian survive the required check.
type SearchInput struct {
	Latitude   *float64                         `json:"latitude" binding:"required"`
	Longitude  *float64                         `json:"longitude" binding:"required"`
	RadiusKm   float64                          `json:"radius"`
	ServiceID  int                              `json:"service_id" binding:"required"`
	CustomerID string                           `json:"customer_id" binding:"required"`
	Filters    []models.CustomerFilterSelection `json:"filters,omitempty"`
	SortBy     string                           `json:"sort_by,omitempty"`
}

// SearchHandler runs a provider search around the given coordinates.
// Zero matches is a successful response with empty data, not an error.
func (hb *HandlerBundle) SearchHandler(c *gin.Context) {
	var req SearchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	searchReq := models.SearchRequest{
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		RadiusKm:   req.RadiusKm,
		ServiceID:  req.ServiceID,
		CustomerID: req.CustomerID,
		Filters:    req.Filters,
		SortBy:     req.SortBy,
	}
	results, query, err := hb.SearchService.Search(c.Request.Context(), searchReq, nil)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	middleware.SearchesTotal.Inc()

	message := "Providers found"
	if len(results) == 0 {
		message = "No providers available within the requested radius"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       message,
		"data":          results,
		"searchDetails": query,
	})
}

// FilterSearchRequest is the filter-based provider search payload. The
// recurring terms drive the per-provider cost display.
type FilterSearchRequest struct {
	ServiceID       int                              `json:"service_id" binding:"required"`
	CustomerID      string                           `json:"customer_id" binding:"required"`
	CustomerFilters []models.CustomerFilterSelection `json:"customer_filters" binding:"required"`
	Latitude        *float64                         `json:"latitude,omitempty"`
	Longitude       *float64                         `json:"longitude,omitempty"`
	RadiusKm        float64                          `json:"radius_km,omitempty"`
	DaysPerWeek     int                              `json:"days_per_week,omitempty"`
	WeeksDuration   int                              `json:"weeks_duration,omitempty"`
	HoursPerDay     int                              `json:"hours_per_day,omitempty"`
	SortBy          string                           `json:"sort_by,omitempty"`
}

// FilterSearchHandler scores providers against the customer's filters and
// attaches a recurring-rate cost per provider.
func (hb *HandlerBundle) FilterSearchHandler(c *gin.Context) {
	var req FilterSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "location is required"})
		return
	}

	terms := models.RecurringTerms{
		DaysPerWeek:   req.DaysPerWeek,
		WeeksDuration: req.WeeksDuration,
		HoursPerDay:   req.HoursPerDay,
	}
	if terms.DaysPerWeek == 0 {
		terms.DaysPerWeek = 7
	}
	if terms.WeeksDuration == 0 {
		terms.WeeksDuration = 1
	}

	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = models.SortByRelevance
	}

	searchReq := models.SearchRequest{
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		RadiusKm:   req.RadiusKm,
		ServiceID:  req.ServiceID,
		CustomerID: req.CustomerID,
		Filters:    req.CustomerFilters,
		SortBy:     sortBy,
	}
	results, query, err := hb.SearchService.Search(c.Request.Context(), searchReq, &terms)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	middleware.SearchesTotal.Inc()

	message := "Providers matched"
	if len(results) == 0 {
		message = "No providers matched your filters within the requested radius"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       message,
		"data":          results,
		"searchDetails": query,
	})
}

// SearchHistoryHandler lists the authenticated customer's recent searches
// with their stored snapshots.
func (hb *HandlerBundle) SearchHistoryHandler(c *gin.Context) {
	customerID := c.GetString(middleware.CustomerIDKey)

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := hb.SearchService.History(c.Request.Context(), customerID, limit)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}
