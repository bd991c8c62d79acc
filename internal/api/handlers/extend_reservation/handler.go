package extend_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDuration    = "продление должно быть положительным"
	msgNotFound           = "бронирование не найдено"
	msgSlotsBusy          = "слоты продления недоступны"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	var req ExtendReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/extend - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.ExtraMinutes <= 0 {
		h.logger.Warn("PATCH /reservations/{id}/extend - Invalid duration: %d", req.ExtraMinutes)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	if _, ok := h.service.Get(reservationID); !ok {
		h.logger.Warn("PATCH /reservations/{id}/extend - Reservation not found: reservation_id=%s", reservationID)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	result, err := h.service.Extend(r.Context(), reservationID, time.Duration(req.ExtraMinutes)*time.Minute)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidDuration):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, reservations.ErrReserve):
			h.logger.Warn("PATCH /reservations/{id}/extend - Reserve failed: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondConflict(w, msgSlotsBusy)

		default:
			h.logger.Error("PATCH /reservations/{id}/extend - Failed to extend: reservation_id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/extend - Extend processed: reservation_id=%s, applied=%t, added=%d",
		reservationID, result.Applied, len(result.AddedSlots))
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
