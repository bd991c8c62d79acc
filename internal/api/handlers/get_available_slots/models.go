package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

// ListingSlotsResponse HTTP response model
type ListingSlotsResponse struct {
	ListingID     string  `json:"listingId"`
	ListingName   string  `json:"listingName"`
	IsActive      bool    `json:"isActive"`
	PricePerHour  float64 `json:"pricePerHour"`
	Date          string  `json:"date"`
	CapacityTotal int     `json:"capacityTotal"`
	FreeCount     int     `json:"freeCount"`
	Slots         []Slot  `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	Key       string `json:"key"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Blocked   bool   `json:"blocked"`
	Past      bool   `json:"past"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(listingID, dateStr string, now time.Time) (*getAvailableSlots.Request, error) {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateStr != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, dateStr, now.Location())
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &getAvailableSlots.Request{
		ListingID: listingID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *ListingSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			Key:       string(s.Key),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Blocked:   s.Blocked,
			Past:      s.Past,
			Available: s.Available(),
		}
	}

	return &ListingSlotsResponse{
		ListingID:     resp.ListingID,
		ListingName:   resp.ListingName,
		IsActive:      resp.IsActive,
		PricePerHour:  resp.PricePerHour,
		Date:          resp.Date.Format(domain.DateFormat),
		CapacityTotal: resp.CapacityTotal,
		FreeCount:     resp.FreeCount,
		Slots:         slots,
	}
}
