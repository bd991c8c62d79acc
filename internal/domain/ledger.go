package domain

import "sort"

// LedgerEntry availability bookkeeping of one listing
// Invariant: 0 <= FreeCount <= CapacityTotal
type LedgerEntry struct {
	ListingID        string
	CapacityTotal    int
	FreeCount        int
	ReservedSlotKeys map[SlotKey]struct{}
}

// NewLedgerEntry creates an entry with every space free
func NewLedgerEntry(listingID string, capacity int) *LedgerEntry {
	if capacity < 0 {
		capacity = 0
	}
	return &LedgerEntry{
		ListingID:        listingID,
		CapacityTotal:    capacity,
		FreeCount:        capacity,
		ReservedSlotKeys: make(map[SlotKey]struct{}),
	}
}

// IsReserved returns true if the slot key is blocked
func (e *LedgerEntry) IsReserved(key SlotKey) bool {
	_, ok := e.ReservedSlotKeys[key]
	return ok
}

// HasFreeSpace returns true if at least one space is free
func (e *LedgerEntry) HasFreeSpace() bool {
	return e.FreeCount > 0
}

// Clone returns a deep copy of the entry
func (e *LedgerEntry) Clone() LedgerEntry {
	keys := make(map[SlotKey]struct{}, len(e.ReservedSlotKeys))
	for k := range e.ReservedSlotKeys {
		keys[k] = struct{}{}
	}
	return LedgerEntry{
		ListingID:        e.ListingID,
		CapacityTotal:    e.CapacityTotal,
		FreeCount:        e.FreeCount,
		ReservedSlotKeys: keys,
	}
}

// SortedKeys returns reserved keys in lexical order ("HH:MM-HH:MM" sorts chronologically)
func (e *LedgerEntry) SortedKeys() []SlotKey {
	keys := make([]SlotKey, 0, len(e.ReservedSlotKeys))
	for k := range e.ReservedSlotKeys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
