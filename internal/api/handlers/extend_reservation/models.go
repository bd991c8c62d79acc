package extend_reservation

import "github.com/m04kA/SMC-ParkingService/internal/service/reservations"

// ExtendReservationRequest HTTP request model
// ExtraMinutes отсчитывается от начала последнего слота бронирования, а не от его конца:
// продление не больше ширины слота не добавляет слотов и возвращает applied=false со статусом 200.
// Это не ошибка, бронирование остаётся прежним
type ExtendReservationRequest struct {
	ExtraMinutes int `json:"extraMinutes"`
}

// ExtendReservationResponse HTTP response model
type ExtendReservationResponse struct {
	Applied    bool     `json:"applied"`
	AddedSlots []string `json:"addedSlots"`
	EndKey     string   `json:"endKey,omitempty"`
}

// FromServiceResult конвертирует результат сервиса в HTTP response
func FromServiceResult(res reservations.ExtendResult) *ExtendReservationResponse {
	added := make([]string, len(res.AddedSlots))
	for i, k := range res.AddedSlots {
		added[i] = string(k)
	}
	resp := &ExtendReservationResponse{
		Applied:    res.Applied,
		AddedSlots: added,
	}
	if res.Reservation != nil {
		resp.EndKey = string(res.Reservation.EndKey)
	}
	return resp
}
