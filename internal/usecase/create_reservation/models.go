package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ListingID string           // ID парковки
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало диапазона, граница слота
	EndTime   types.TimeString // Конец диапазона, граница слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation    domain.Reservation
	Slots          []domain.SlotKey // Заблокированные слоты
	ListingName    string           // Название парковки
	Hours          float64          // Длительность в часах
	EstimatedPrice float64          // Оценка стоимости: цена за час x часы
	FreeCount      int              // Свободных мест после бронирования
}
