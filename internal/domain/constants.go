package domain

import "time"

// Business constants
const (
	CommissionRate = 0.10             // Platform commission taken from every accepted request
	RecoveryWindow = 60 * time.Second // A rejected request can be restored within this window
)

// Default configuration values
const (
	DefaultDayStart         = "06:00"
	DefaultDayEnd           = "23:00"
	DefaultSlotMinutes      = 60
	DefaultGenerateInterval = 10 * time.Second
	DefaultSweepInterval    = time.Second
	DefaultMinDurationHours = 1
	DefaultMaxDurationHours = 4
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Document keys of the shared key-value medium
const (
	KeyHostRequests       = "hostRequests"
	KeyHostOnline         = "isOnline"
	KeyRequestHistory     = "hostRequestHistory"
	KeyActiveReservations = "activeReservations"
	KeyDriverReservations = "driverReservations"
	KeyAvailability       = "availability"
	KeyTransactions       = "transactions"
)

// LiveStatuses статусы заявок, которые учитываются при проверке дубликатов водителей
var LiveStatuses = []RequestStatus{
	RequestPending,
	RequestInProgress,
}
