package pricing

import (
	"time"

	"localserve/models"
)

// Refund tiers by hours remaining until the scheduled service time. Refund
// percentage never decreases as more notice is given.
const (
	fullRefundHours = 48
	highRefundHours = 24
)

// CancellationQuote computes the tiered refund for cancelling a booking of
// the given total, scheduledAt relative to now. Cancellation is disallowed
// once the service time has arrived or passed.
func CancellationQuote(total float64, scheduledAt, now time.Time) (models.CancellationQuote, error) {
	hours := scheduledAt.Sub(now).Hours()
	if hours <= 0 {
		return models.CancellationQuote{}, models.NewValidationError("scheduled_at", "cancellation is not allowed once the service time has passed")
	}

	var refundPct int
	switch {
	case hours >= fullRefundHours:
		refundPct = 100
	case hours >= highRefundHours:
		refundPct = 75
	default:
		refundPct = 50
	}
	chargePct := 100 - refundPct

	return models.CancellationQuote{
		RefundPercent: refundPct,
		ChargePercent: chargePct,
		RefundAmount:  total * float64(refundPct) / 100,
		ChargeAmount:  total * float64(chargePct) / 100,
	}, nil
}
