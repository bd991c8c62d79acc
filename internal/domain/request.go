package domain

import "time"

// RequestStatus represents the status of a host request
// There is no resting "accepted" state: accept moves pending straight to in-progress
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestRejected   RequestStatus = "rejected"
	RequestInProgress RequestStatus = "in-progress"
	RequestCompleted  RequestStatus = "completed"
)

// HostRequest represents an inbound booking request for a host's listing
type HostRequest struct {
	ID            string        `json:"id"`
	ListingID     string        `json:"listingId"`
	ListingName   string        `json:"listingName,omitempty"`
	DriverID      string        `json:"driverId"`
	DriverName    string        `json:"driverName,omitempty"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	DurationHours int           `json:"durationHours"`
	GrossPrice    float64       `json:"grossPrice"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	RejectedAt    *time.Time    `json:"rejectedAt,omitempty"`
}

// IsLive returns true for pending and in-progress requests
func (r *HostRequest) IsLive() bool {
	for _, s := range LiveStatuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// IsAccepted returns true if the request was accepted at some point
func (r *HostRequest) IsAccepted() bool {
	return r.Status == RequestInProgress || r.Status == RequestCompleted
}

// IsRecoverable returns true if a rejected request is still inside the recovery window
func (r *HostRequest) IsRecoverable(now time.Time) bool {
	if r.Status != RequestRejected || r.RejectedAt == nil {
		return false
	}
	return now.Sub(*r.RejectedAt) <= RecoveryWindow
}

// IsExpired returns true if a rejected request left the recovery window
func (r *HostRequest) IsExpired(now time.Time) bool {
	if r.RejectedAt == nil {
		return false
	}
	return now.Sub(*r.RejectedAt) > RecoveryWindow
}

// IsDue returns true if an in-progress request reached its end time
func (r *HostRequest) IsDue(now time.Time) bool {
	return r.Status == RequestInProgress && !now.Before(r.EndTime)
}

// Clone returns a copy that does not share the RejectedAt pointer
func (r HostRequest) Clone() HostRequest {
	if r.RejectedAt != nil {
		at := *r.RejectedAt
		r.RejectedAt = &at
	}
	return r
}
