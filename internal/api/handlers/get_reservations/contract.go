package get_reservations

import "github.com/m04kA/SMC-ParkingService/internal/domain"

type ReservationService interface {
	List() []domain.Reservation
	Slots(r domain.Reservation) []domain.SlotKey
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
