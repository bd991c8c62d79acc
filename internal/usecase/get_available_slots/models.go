package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Request модель запроса на получение сетки слотов парковки
type Request struct {
	ListingID string
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со слотами парковки
type Response struct {
	ListingID     string
	ListingName   string
	IsActive      bool
	PricePerHour  float64
	Date          time.Time
	CapacityTotal int
	FreeCount     int
	Slots         []Slot
}

// Slot модель временного слота
type Slot struct {
	Key       domain.SlotKey
	StartTime types.TimeString
	EndTime   types.TimeString
	Blocked   bool // Слот уже занят бронированием
	Past      bool // Слот уже начался (только для сегодняшней даты)
}

// Available возвращает true, если слот можно выбрать
func (s Slot) Available() bool {
	return !s.Blocked && !s.Past
}
