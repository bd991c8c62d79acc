package create_payout

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreatePayoutRequest HTTP request model
type CreatePayoutRequest struct {
	Amount float64 `json:"amount"`
}

// PayoutResponse HTTP response model
type PayoutResponse struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	NetAmount float64 `json:"netAmount"`
	Timestamp string  `json:"timestamp"`
	Balance   float64 `json:"balance"`
}

// FromTransaction конвертирует транзакцию выплаты в HTTP response
func FromTransaction(tx domain.Transaction, balance float64) *PayoutResponse {
	return &PayoutResponse{
		ID:        tx.ID,
		Amount:    -tx.NetAmount,
		NetAmount: tx.NetAmount,
		Timestamp: tx.Timestamp.Format(time.RFC3339),
		Balance:   balance,
	}
}
