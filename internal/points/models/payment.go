package models

import (
	"slices"
	"time"

	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
)

// WonPerPoint is the exchange rate of a top-up.
const WonPerPoint int64 = 10

// AllowedAmounts are the top-up amounts in won a reader may choose from.
var AllowedAmounts = []int64{1000, 5000, 10000, 50000}

// Payment is the history record of one top-up.
type Payment struct {
	ID        id.PaymentID `json:"id"`
	ReaderID  id.ReaderID  `json:"reader_id"`
	AmountWon int64        `json:"amount_won"`
	Points    int64        `json:"points"`
	Method    string       `json:"method"`
	CreatedAt time.Time    `json:"created_at"`
}

// ValidateAmount rejects amounts outside AllowedAmounts.
func ValidateAmount(amountWon int64) error {
	if !slices.Contains(AllowedAmounts, amountWon) {
		return dErrors.Validation("amount must be one of 1000, 5000, 10000 or 50000 won")
	}
	return nil
}

// PointsFor converts won to points, dropping any remainder.
func PointsFor(amountWon int64) int64 {
	return amountWon / WonPerPoint
}

// NewPayment builds the record of a processed top-up. The ID is assigned by
// the store.
func NewPayment(readerID id.ReaderID, amountWon int64, method string, now time.Time) (*Payment, error) {
	if err := ValidateAmount(amountWon); err != nil {
		return nil, err
	}
	if method == "" {
		return nil, dErrors.Validation("payment method is required")
	}
	return &Payment{
		ReaderID:  readerID,
		AmountWon: amountWon,
		Points:    PointsFor(amountWon),
		Method:    method,
		CreatedAt: now,
	}, nil
}
