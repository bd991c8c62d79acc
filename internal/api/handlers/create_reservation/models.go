package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createReservation "github.com/m04kA/SMC-ParkingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ListingID string `json:"listingId"`
	Date      string `json:"date"`      // "2026-10-19"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             string   `json:"id"`
	ListingID      string   `json:"listingId"`
	ListingName    string   `json:"listingName"`
	Date           string   `json:"date"`
	StartKey       string   `json:"startKey"`
	EndKey         string   `json:"endKey"`
	Slots          []string `json:"slots"`
	State          string   `json:"state"`
	Hours          float64  `json:"hours"`
	EstimatedPrice float64  `json:"estimatedPrice"`
	FreeCount      int      `json:"freeCount"`
	CreatedAt      string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	// Парсим время
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &createReservation.Request{
		ListingID: r.ListingID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	slots := make([]string, len(resp.Slots))
	for i, k := range resp.Slots {
		slots[i] = string(k)
	}

	return &ReservationResponse{
		ID:             resp.Reservation.ID,
		ListingID:      resp.Reservation.ListingID,
		ListingName:    resp.ListingName,
		Date:           resp.Reservation.Date.Format(domain.DateFormat),
		StartKey:       string(resp.Reservation.StartKey),
		EndKey:         string(resp.Reservation.EndKey),
		Slots:          slots,
		State:          string(resp.Reservation.State),
		Hours:          resp.Hours,
		EstimatedPrice: resp.EstimatedPrice,
		FreeCount:      resp.FreeCount,
		CreatedAt:      resp.Reservation.CreatedAt.Format(time.RFC3339),
	}
}
