package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// ListingDirectory интерфейс справочника парковок
type ListingDirectory interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
}

// SlotCatalog интерфейс каталога слотов
type SlotCatalog interface {
	SlotsCoveringRange(start, end types.TimeString) ([]domain.SlotKey, error)
	SlotWidth() time.Duration
}

// AvailabilityLedger интерфейс реестра доступности
type AvailabilityLedger interface {
	Register(ctx context.Context, listing domain.Listing)
	Entry(listingID string) (domain.LedgerEntry, error)
}

// ReservationManager интерфейс менеджера бронирований
type ReservationManager interface {
	Create(ctx context.Context, in reservations.CreateInput) (*domain.Reservation, error)
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
