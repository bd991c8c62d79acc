package get_host_dashboard

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getHostDashboard "github.com/m04kA/SMC-ParkingService/internal/usecase/get_host_dashboard"
)

// DashboardResponse HTTP response model
type DashboardResponse struct {
	Online             bool                  `json:"online"`
	RequestsToday      int                   `json:"requestsToday"`
	AcceptedToday      int                   `json:"acceptedToday"`
	EarningsToday      float64               `json:"earningsToday"`
	AcceptanceRate     int                   `json:"acceptanceRate"`
	Balance            float64               `json:"balance"`
	ActiveReservations int                   `json:"activeReservations"`
	PendingRequests    int                   `json:"pendingRequests"`
	Transactions       []TransactionResponse `json:"transactions"`
}

// TransactionResponse модель транзакции
type TransactionResponse struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	GrossAmount *float64 `json:"grossAmount,omitempty"`
	Commission  *float64 `json:"commission,omitempty"`
	NetAmount   float64  `json:"netAmount"`
	Timestamp   string   `json:"timestamp"`
	ListingID   *string  `json:"listingId,omitempty"`
	RequestID   *string  `json:"requestId,omitempty"`
}

// FromTransaction конвертирует транзакцию в HTTP модель
func FromTransaction(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Kind:        string(tx.Kind),
		GrossAmount: tx.GrossAmount,
		Commission:  tx.Commission,
		NetAmount:   tx.NetAmount,
		Timestamp:   tx.Timestamp.Format(time.RFC3339),
		ListingID:   tx.ListingID,
		RequestID:   tx.RequestID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getHostDashboard.Response) *DashboardResponse {
	txs := make([]TransactionResponse, len(resp.Transactions))
	for i, tx := range resp.Transactions {
		txs[i] = FromTransaction(tx)
	}

	return &DashboardResponse{
		Online:             resp.Online,
		RequestsToday:      resp.Stats.RequestsToday,
		AcceptedToday:      resp.Stats.AcceptedToday,
		EarningsToday:      resp.Stats.EarningsToday,
		AcceptanceRate:     resp.Stats.AcceptanceRate,
		Balance:            resp.Balance,
		ActiveReservations: resp.ActiveReservations,
		PendingRequests:    resp.PendingRequests,
		Transactions:       txs,
	}
}
