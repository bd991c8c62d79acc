package requests

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ListingDirectory интерфейс справочника парковок
type ListingDirectory interface {
	ListListings(ctx context.Context) ([]domain.Listing, error)
}

// DriverPool интерфейс списка водителей, от имени которых приходят заявки
type DriverPool interface {
	Drivers(ctx context.Context) ([]domain.Driver, error)
}

// EarningsRecorder интерфейс журнала начислений
type EarningsRecorder interface {
	RecordEarning(ctx context.Context, req domain.HostRequest) (domain.Transaction, error)
}

// ChatDispatcher интерфейс асинхронного открытия чата после принятия заявки
type ChatDispatcher interface {
	Dispatch(ctx context.Context, req domain.ConversationRequest) error
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// Replicator интерфейс публикации снимков в другие контексты исполнения
type Replicator interface {
	Publish(ctx context.Context, key string, value interface{}) error
}

// DocumentStore интерфейс хранилища документов
type DocumentStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Metrics интерфейс метрик переходов заявок
type Metrics interface {
	IncRequestTransition(transition string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RandomSource источник случайных чисел (*rand.Rand)
type RandomSource interface {
	Intn(n int) int
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
