package reservations

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// CreateInput параметры создания бронирования
type CreateInput struct {
	ListingID string
	Date      time.Time
	Start     types.TimeString
	End       types.TimeString
}

// ExtendResult результат продления
// Applied == false, если бронирование не найдено, не активно или продление не добавило слотов
type ExtendResult struct {
	Applied     bool
	AddedSlots  []domain.SlotKey
	Reservation *domain.Reservation
}
