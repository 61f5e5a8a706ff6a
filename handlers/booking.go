package handlers

import (
	"net/http"

	"localserve/middleware"
	"localserve/services/booking"
	"localserve/utils"

	"github.com/gin-gonic/gin"
)

type bookingPreviewInput struct {
	CustomerID string `json:"customer_id" binding:"required"`
	ServiceID  int    `json:"service_id" binding:"required"`
}

// BookingPreviewHandler prices a booking in one-off mode from the customer's
// previously saved filter selection.
func (hb *HandlerBundle) BookingPreviewHandler(c *gin.Context) {
	var req bookingPreviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	breakdown, err := hb.BookingService.Preview(c.Request.Context(), req.CustomerID, req.ServiceID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": breakdown})
}

// CreateBookingHandler creates a booking plus its filter-selection rows in
// one transaction for the authenticated customer.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}
	req.CustomerID = c.GetString(middleware.CustomerIDKey)

	b, breakdown, err := hb.BookingService.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"booking": b, "pricing": breakdown},
	})
}

// CancelBookingHandler applies the tiered refund policy. Cancellation once
// the service time has passed is rejected.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	customerID := c.GetString(middleware.CustomerIDKey)

	quote, err := hb.BookingService.Cancel(c.Request.Context(), bookingID, customerID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": quote})
}

// AdvanceIntentHandler opens a payment intent for the booking's advance.
func (hb *HandlerBundle) AdvanceIntentHandler(c *gin.Context) {
	bookingID := c.Param("id")
	customerID := c.GetString(middleware.CustomerIDKey)

	intent, err := hb.BookingService.CreateAdvanceIntent(c.Request.Context(), bookingID, customerID)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": intent})
}
