package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// SlotCatalog интерфейс каталога слотов
type SlotCatalog interface {
	SlotsCoveringRange(start, end types.TimeString) ([]domain.SlotKey, error)
	AdditionalSlots(currentEnd, newEnd types.TimeString) []domain.SlotKey
	KeysBetween(from, to domain.SlotKey) []domain.SlotKey
	Slot(key domain.SlotKey) (domain.TimeSlot, bool)
}

// AvailabilityLedger интерфейс реестра доступности
type AvailabilityLedger interface {
	Reserve(ctx context.Context, listingID string, keys []domain.SlotKey) error
	Release(ctx context.Context, listingID string, keys []domain.SlotKey) error
}

// DocumentStore интерфейс хранилища документов
type DocumentStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Metrics интерфейс метрик операций бронирования
type Metrics interface {
	IncReservationOperation(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
