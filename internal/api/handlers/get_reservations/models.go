package get_reservations

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        string   `json:"id"`
	ListingID string   `json:"listingId"`
	Date      string   `json:"date"`
	StartKey  string   `json:"startKey"`
	EndKey    string   `json:"endKey"`
	Slots     []string `json:"slots"`
	State     string   `json:"state"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// FromDomain конвертирует бронирование в HTTP response
func FromDomain(r domain.Reservation, keys []domain.SlotKey) ReservationResponse {
	slots := make([]string, len(keys))
	for i, k := range keys {
		slots[i] = string(k)
	}
	return ReservationResponse{
		ID:        r.ID,
		ListingID: r.ListingID,
		Date:      r.Date.Format(domain.DateFormat),
		StartKey:  string(r.StartKey),
		EndKey:    string(r.EndKey),
		Slots:     slots,
		State:     string(r.State),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}
