package models

import (
	"time"
)

// Customer verification states. A customer moves from otp_pending to one of
// the two verified states depending on whether a prior successful login exists.
const (
	StateOTPPending          = "otp_pending"
	StateVerifiedNewCustomer = "otp_verified_new_customer"
	StateVerifiedReturning   = "otp_verified_returning_customer"
)

type Customer struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name,omitempty" json:"name,omitempty"`
	MobileNumber string     `bson:"mobileNumber" json:"mobile_number"`
	LastLoginAt  *time.Time `bson:"lastLoginAt,omitempty" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updated_at"`

	// Most recent filter selection saved for booking previews.
	SavedFilters []CustomerFilterSelection `bson:"savedFilters,omitempty" json:"saved_filters,omitempty"`
}

// IsReturning reports whether the customer has logged in successfully before.
func (c *Customer) IsReturning() bool {
	return c.LastLoginAt != nil
}
