package handlers

import (
	"errors"
	"net/http"

	"localserve/middleware"
	"localserve/models"
	"localserve/utils"

	"github.com/gin-gonic/gin"
)

type otpRequestInput struct {
	MobileNumber string `json:"mobile_number" binding:"required"`
}

type otpVerifyInput struct {
	MobileNumber string `json:"mobile_number" binding:"required"`
	OTP          string `json:"otp" binding:"required"`
}

// RequestOTPHandler issues a passcode for the mobile number, subject to the
// per-mobile rolling-window limit.
func (hb *HandlerBundle) RequestOTPHandler(c *gin.Context) {
	var req otpRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	expiresAt, masked, err := hb.Verification.RequestCode(c.Request.Context(), req.MobileNumber)
	if err != nil {
		middleware.OTPRequestsTotal.WithLabelValues("rejected").Inc()
		utils.RespondWithError(c, err)
		return
	}
	middleware.OTPRequestsTotal.WithLabelValues("sent").Inc()

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "OTP sent",
		"otp_expires_at": expiresAt,
		"masked_mobile":  masked,
	})
}

// ResendOTPHandler issues a fresh passcode; resends count against the same
// rolling-window limit as first requests.
func (hb *HandlerBundle) ResendOTPHandler(c *gin.Context) {
	hb.RequestOTPHandler(c)
}

// VerifyOTPHandler checks the passcode and completes the verification state
// machine: new customers get identity only, returning customers additionally
// get their last search replayed against live data.
func (hb *HandlerBundle) VerifyOTPHandler(c *gin.Context) {
	var req otpVerifyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid input", "details": err.Error()})
		return
	}

	result, remaining, err := hb.Verification.VerifyCode(c.Request.Context(), req.MobileNumber, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrOTPNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "OTP_NOT_FOUND", "message": "OTP not found or expired"})
		case errors.Is(err, models.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, gin.H{
				"success":           false,
				"code":              "INVALID_OTP",
				"message":           "Incorrect OTP",
				"remainingAttempts": remaining,
			})
		default:
			utils.RespondWithError(c, err)
		}
		return
	}

	if result.Replay != nil {
		middleware.SearchReplaysTotal.Inc()
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified",
		"data":    result,
	})
}
