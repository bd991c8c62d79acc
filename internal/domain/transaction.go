package domain

import (
	"math"
	"time"
)

// TransactionKind represents the kind of a host ledger record
type TransactionKind string

const (
	TransactionEarning TransactionKind = "earning"
	TransactionPayout  TransactionKind = "payout"
)

// Transaction represents an append-only host ledger record
// Payouts carry a negative NetAmount
type Transaction struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"kind"`
	GrossAmount *float64        `json:"grossAmount,omitempty"`
	Commission  *float64        `json:"commission,omitempty"`
	NetAmount   float64         `json:"netAmount"`
	Timestamp   time.Time       `json:"timestamp"`
	ListingID   *string         `json:"listingId,omitempty"`
	RequestID   *string         `json:"requestId,omitempty"`
}

// RoundMoney rounds an amount to cents
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
