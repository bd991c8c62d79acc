package domain

import "time"

// ReservationState represents the state of a driver reservation
type ReservationState string

const (
	ReservationActive    ReservationState = "active"
	ReservationCompleted ReservationState = "completed"
)

// Reservation represents a driver booking over a contiguous slot range
type Reservation struct {
	ID        string           `json:"id"`
	ListingID string           `json:"listingId"`
	Date      time.Time        `json:"date"`
	StartKey  SlotKey          `json:"startKey"`
	EndKey    SlotKey          `json:"endKey"`
	State     ReservationState `json:"state"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// IsActive returns true if the reservation still holds its slots
func (r *Reservation) IsActive() bool {
	return r.State == ReservationActive
}
