package get_host_dashboard

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RequestEngine интерфейс движка заявок хоста
type RequestEngine interface {
	Online() bool
	ActiveReservations() int
	AllRequests() []domain.HostRequest
}

// EarningsLedger интерфейс журнала транзакций
type EarningsLedger interface {
	Balance() float64
	Transactions() []domain.Transaction
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
