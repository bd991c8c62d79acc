package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ListingDirectory интерфейс справочника парковок
type ListingDirectory interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
}

// SlotCatalog интерфейс каталога временных слотов
type SlotCatalog interface {
	Slots() []domain.TimeSlot
}

// AvailabilityLedger интерфейс реестра доступности
type AvailabilityLedger interface {
	Register(ctx context.Context, listing domain.Listing)
	Entry(listingID string) (domain.LedgerEntry, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
