package availability

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SlotCatalog интерфейс каталога слотов
type SlotCatalog interface {
	Contains(key domain.SlotKey) bool
	Position(key domain.SlotKey) int
}

// DocumentStore интерфейс хранилища документов
type DocumentStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Metrics интерфейс метрик свободных мест
type Metrics interface {
	SetFreeSpaces(listingID string, free int)
	DeleteFreeSpaces(listingID string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
