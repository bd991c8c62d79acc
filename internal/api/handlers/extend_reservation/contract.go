package extend_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
)

type ReservationService interface {
	Extend(ctx context.Context, id string, extra time.Duration) (reservations.ExtendResult, error)
	Get(id string) (*domain.Reservation, bool)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
