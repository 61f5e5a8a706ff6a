package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"localserve/models"
	"localserve/services/notification"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// OTPStore keeps passcode hashes and counters. Counter increments must be
// atomic: two near-simultaneous requests for the same mobile number must not
// both observe a stale pre-increment count and slip past a threshold.
type OTPStore interface {
	SaveCode(ctx context.Context, mobile, hash string, ttl time.Duration) error
	GetCode(ctx context.Context, mobile string) (string, error)
	DeleteCode(ctx context.Context, mobile string) error
	IncrAttempts(ctx context.Context, mobile string, ttl time.Duration) (int64, error)
	ResetAttempts(ctx context.Context, mobile string) error
	// IncrRequests bumps the rolling-window request counter and reports the
	// new count plus the time left until the window resets.
	IncrRequests(ctx context.Context, mobile string, window time.Duration) (int64, time.Duration, error)
}

// OTPService issues and verifies one-time passcodes. Codes are stored
// bcrypt-hashed with a TTL; issuance is rate-limited per mobile number and
// verification allows a bounded number of mismatches before a fresh request
// is required.
type OTPService struct {
	Store           OTPStore
	Gateway         notification.SMSGateway
	Logger          *zap.Logger
	RequestsPerHour int
	MaxAttempts     int
	CodeTTL         time.Duration
}

func NewOTPService(store OTPStore, gateway notification.SMSGateway, logger *zap.Logger, requestsPerHour, maxAttempts int, codeTTL time.Duration) *OTPService {
	return &OTPService{
		Store:           store,
		Gateway:         gateway,
		Logger:          logger,
		RequestsPerHour: requestsPerHour,
		MaxAttempts:     maxAttempts,
		CodeTTL:         codeTTL,
	}
}

// Request generates a 6-digit code, stores its hash and sends it. Returns
// the expiry time and the masked mobile number to echo back to the caller.
func (s *OTPService) Request(ctx context.Context, mobile string) (time.Time, string, error) {
	if !mobilePattern.MatchString(mobile) {
		return time.Time{}, "", models.NewValidationError("mobile_number", "invalid mobile number")
	}

	count, windowLeft, err := s.Store.IncrRequests(ctx, mobile, time.Hour)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to count OTP requests: %w", err)
	}
	if count > int64(s.RequestsPerHour) {
		return time.Time{}, "", &models.RateLimitError{RetryAfter: windowLeft}
	}

	code, err := generateCode()
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("failed to hash OTP: %w", err)
	}

	if err := s.Store.SaveCode(ctx, mobile, string(hash), s.CodeTTL); err != nil {
		return time.Time{}, "", fmt.Errorf("failed to store OTP: %w", err)
	}
	// A fresh code resets the mismatch budget.
	if err := s.Store.ResetAttempts(ctx, mobile); err != nil {
		s.Logger.Warn("failed to reset OTP attempts", zap.Error(err))
	}

	message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(s.CodeTTL.Minutes()))
	if err := s.Gateway.SendSMS(ctx, mobile, message); err != nil {
		s.Logger.Error("failed to send OTP", zap.String("mobile", MaskMobile(mobile)), zap.Error(err))
		return time.Time{}, "", fmt.Errorf("failed to send OTP")
	}

	s.Logger.Info("OTP sent", zap.String("mobile", MaskMobile(mobile)))
	return time.Now().Add(s.CodeTTL), MaskMobile(mobile), nil
}

// VerifyCode checks a submitted code. On mismatch it returns ErrInvalidOTP
// with the remaining attempt budget; once the budget is spent the code is
// discarded and MaxAttemptsExceededError instructs the caller to restart.
func (s *OTPService) VerifyCode(ctx context.Context, mobile, code string) (int, error) {
	if !mobilePattern.MatchString(mobile) {
		return 0, models.NewValidationError("mobile_number", "invalid mobile number")
	}
	if !codePattern.MatchString(code) {
		return 0, models.NewValidationError("otp", "must be a 6-digit code")
	}

	hash, err := s.Store.GetCode(ctx, mobile)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch OTP: %w", err)
	}
	if hash == "" {
		return 0, models.ErrOTPNotFound
	}

	attempts, err := s.Store.IncrAttempts(ctx, mobile, s.CodeTTL)
	if err != nil {
		return 0, fmt.Errorf("failed to count OTP attempts: %w", err)
	}
	if attempts > int64(s.MaxAttempts) {
		_ = s.Store.DeleteCode(ctx, mobile)
		return 0, &models.MaxAttemptsExceededError{}
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		remaining := s.MaxAttempts - int(attempts)
		if remaining <= 0 {
			_ = s.Store.DeleteCode(ctx, mobile)
			return 0, &models.MaxAttemptsExceededError{}
		}
		return remaining, models.ErrInvalidOTP
	}

	if err := s.Store.DeleteCode(ctx, mobile); err != nil {
		s.Logger.Warn("failed to delete OTP after verification", zap.Error(err))
	}
	if err := s.Store.ResetAttempts(ctx, mobile); err != nil {
		s.Logger.Warn("failed to reset OTP attempts", zap.Error(err))
	}
	return 0, nil
}

// generateCode produces a 6-digit decimal passcode.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// MaskMobile hides all but the last four digits of a mobile number.
func MaskMobile(mobile string) string {
	if len(mobile) <= 4 {
		return mobile
	}
	return strings.Repeat("*", len(mobile)-4) + mobile[len(mobile)-4:]
}
