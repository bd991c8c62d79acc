package requests

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Config параметры движка заявок
type Config struct {
	GenerateInterval time.Duration
	SweepInterval    time.Duration
	MinDurationHours int
	MaxDurationHours int
	HostID           string
	HostName         string
}

// Validate проверяет конфигурацию
func (c Config) Validate() error {
	if c.GenerateInterval <= 0 || c.SweepInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.MinDurationHours <= 0 || c.MaxDurationHours < c.MinDurationHours {
		return ErrInvalidConfig
	}
	return nil
}

// DefaultConfig конфигурация по умолчанию
func DefaultConfig() Config {
	return Config{
		GenerateInterval: domain.DefaultGenerateInterval,
		SweepInterval:    domain.DefaultSweepInterval,
		MinDurationHours: domain.DefaultMinDurationHours,
		MaxDurationHours: domain.DefaultMaxDurationHours,
		HostID:           "host",
		HostName:         "Host",
	}
}

// SweepResult результат одного прохода очистки
type SweepResult struct {
	Purged    int
	Completed int
}

// Dependencies внешние зависимости движка
type Dependencies struct {
	Listings   ListingDirectory
	Drivers    DriverPool
	Earnings   EarningsRecorder
	Chat       ChatDispatcher
	Notifier   Notifier
	Replicator Replicator
	Store      DocumentStore
	Metrics    Metrics
	Logger     Logger
	Random     RandomSource
}
