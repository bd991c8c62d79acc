package get_host_requests

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/earnings"
)

// HostRequestsResponse HTTP response model
type HostRequestsResponse struct {
	Online  bool                  `json:"online"`
	Queue   []HostRequestResponse `json:"queue"`
	History []HostRequestResponse `json:"history"`
}

// HostRequestResponse модель заявки
type HostRequestResponse struct {
	ID            string  `json:"id"`
	ListingID     string  `json:"listingId"`
	ListingName   string  `json:"listingName,omitempty"`
	DriverID      string  `json:"driverId"`
	DriverName    string  `json:"driverName,omitempty"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours int     `json:"durationHours"`
	GrossPrice    float64 `json:"grossPrice"`
	NetPayout     float64 `json:"netPayout"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	RejectedAt    *string `json:"rejectedAt,omitempty"`
	Recoverable   bool    `json:"recoverable"`
}

// FromDomain конвертирует заявку в HTTP модель
func FromDomain(r domain.HostRequest, now time.Time) HostRequestResponse {
	resp := HostRequestResponse{
		ID:            r.ID,
		ListingID:     r.ListingID,
		ListingName:   r.ListingName,
		DriverID:      r.DriverID,
		DriverName:    r.DriverName,
		StartTime:     r.StartTime.Format(time.RFC3339),
		EndTime:       r.EndTime.Format(time.RFC3339),
		DurationHours: r.DurationHours,
		GrossPrice:    r.GrossPrice,
		NetPayout:     earnings.NetAmount(r.GrossPrice),
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		Recoverable:   r.IsRecoverable(now),
	}
	if r.RejectedAt != nil {
		at := r.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &at
	}
	return resp
}

func fromDomainList(list []domain.HostRequest, now time.Time) []HostRequestResponse {
	out := make([]HostRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomain(r, now))
	}
	return out
}
