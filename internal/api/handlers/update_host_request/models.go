package update_host_request

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	ActionAccept  = "accept"
	ActionReject  = "reject"
	ActionRecover = "recover"
)

// TransitionResponse HTTP response model
// Request пустой, если переход не применён
type TransitionResponse struct {
	Applied bool             `json:"applied"`
	Action  string           `json:"action"`
	Request *RequestResponse `json:"request,omitempty"`
}

// RequestResponse модель заявки после перехода
type RequestResponse struct {
	ID         string  `json:"id"`
	ListingID  string  `json:"listingId"`
	DriverID   string  `json:"driverId"`
	Status     string  `json:"status"`
	GrossPrice float64 `json:"grossPrice"`
	RejectedAt *string `json:"rejectedAt,omitempty"`
}

func fromDomain(r domain.HostRequest) *RequestResponse {
	resp := &RequestResponse{
		ID:         r.ID,
		ListingID:  r.ListingID,
		DriverID:   r.DriverID,
		Status:     string(r.Status),
		GrossPrice: r.GrossPrice,
	}
	if r.RejectedAt != nil {
		at := r.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &at
	}
	return resp
}
