package domain

import (
	"strings"

	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// SlotKey canonical identifier of one catalog slot, e.g. "09:00-10:00"
type SlotKey string

// TimeSlot represents one fixed-width interval of the service day
type TimeSlot struct {
	Start types.TimeString
	End   types.TimeString
}

// Key returns the canonical slot key
func (s TimeSlot) Key() SlotKey {
	return SlotKey(s.Start.String() + "-" + s.End.String())
}

// Contains returns true if the slot lies within [start, end)
func (s TimeSlot) Contains(start, end types.TimeString) bool {
	return !s.Start.IsBefore(start) && !s.End.IsAfter(end)
}

// ParseSlotKey splits a slot key into its boundaries
func ParseSlotKey(key SlotKey) (TimeSlot, bool) {
	start, end, ok := strings.Cut(string(key), "-")
	if !ok {
		return TimeSlot{}, false
	}
	startTime, err := types.NewTimeStringFromString(start)
	if err != nil {
		return TimeSlot{}, false
	}
	endTime, err := types.NewTimeStringFromString(end)
	if err != nil {
		return TimeSlot{}, false
	}
	return TimeSlot{Start: startTime, End: endTime}, true
}
