package auth

import (
	"context"
	"fmt"
	"time"

	"localserve/database/repository"
	"localserve/models"
	"localserve/services/search"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VerificationResult is the terminal outcome of a successful verification.
// Replay is populated only for returning customers with prior search history;
// a returning customer whose replayed search finds zero current providers
// still gets a non-nil Replay with empty data.
type VerificationResult struct {
	State    string               `json:"state"`
	Token    string               `json:"token"`
	Customer models.Customer      `json:"customer"`
	Replay   *search.ReplayResult `json:"search_context,omitempty"`
}

// VerificationService runs the customer verification state machine:
// otp_pending moves to otp_verified_new_customer or
// otp_verified_returning_customer depending on whether a prior successful
// login exists, and returning customers get their last search replayed live.
type VerificationService struct {
	OTP       *OTPService
	Customers repository.CustomerRepository
	Search    *search.Service
	Tokens    TokenIssuer
	Logger    *zap.Logger
}

func NewVerificationService(otp *OTPService, customers repository.CustomerRepository, searchSvc *search.Service, tokens TokenIssuer, logger *zap.Logger) *VerificationService {
	return &VerificationService{
		OTP:       otp,
		Customers: customers,
		Search:    searchSvc,
		Tokens:    tokens,
		Logger:    logger,
	}
}

// RequestCode issues a passcode for the mobile number.
func (s *VerificationService) RequestCode(ctx context.Context, mobile string) (time.Time, string, error) {
	return s.OTP.Request(ctx, mobile)
}

// VerifyCode validates the passcode and completes the state machine. On a
// mismatch the remaining attempt budget is returned alongside the error.
func (s *VerificationService) VerifyCode(ctx context.Context, mobile, code string) (*VerificationResult, int, error) {
	remaining, err := s.OTP.VerifyCode(ctx, mobile, code)
	if err != nil {
		return nil, remaining, err
	}

	customer, err := s.Customers.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to look up customer: %w", err)
	}

	now := time.Now()
	returning := customer != nil && customer.IsReturning()

	if customer == nil {
		c := models.Customer{
			ID:           uuid.New().String(),
			MobileNumber: mobile,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.Customers.Create(ctx, c); err != nil {
			return nil, 0, fmt.Errorf("failed to create customer: %w", err)
		}
		customer = &c
	}

	if err := s.Customers.MarkLogin(ctx, customer.ID, now); err != nil {
		return nil, 0, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := s.Tokens.Issue(Identity{CustomerID: customer.ID, MobileNumber: mobile})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to issue credential: %w", err)
	}

	result := &VerificationResult{
		Token:    token,
		Customer: *customer,
	}

	if !returning {
		result.State = models.StateVerifiedNewCustomer
		return result, 0, nil
	}

	result.State = models.StateVerifiedReturning
	replay, err := s.Search.Replay(ctx, customer.ID)
	if err != nil {
		// A failed replay degrades to identity-only; verification itself
		// succeeded.
		s.Logger.Error("search replay failed", zap.String("customerId", customer.ID), zap.Error(err))
		return result, 0, nil
	}
	result.Replay = replay
	return result, 0, nil
}
