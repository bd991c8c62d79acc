package create_payout

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type EarningsService interface {
	RequestPayout(ctx context.Context, amount float64) (domain.Transaction, error)
	Balance() float64
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
