package replication

import (
	"context"
	"io"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Broadcaster транспорт снимков между контекстами исполнения
type Broadcaster interface {
	Publish(ctx context.Context, snapshot domain.Snapshot) error
	Subscribe(ctx context.Context, handler func(domain.Snapshot)) (io.Closer, error)
}

// DocumentStore интерфейс хранилища документов
type DocumentStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Metrics интерфейс метрик репликации
type Metrics interface {
	IncSnapshot(key, direction string)
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
