package availability

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// entryDocument persisted form of one ledger entry
type entryDocument struct {
	CapacityTotal    int              `json:"capacityTotal"`
	FreeCount        int              `json:"freeCount"`
	ReservedSlotKeys []domain.SlotKey `json:"reservedSlotKeys"`
}

// ledgerDocument persisted ledger, keyed by listing id
type ledgerDocument map[string]entryDocument
