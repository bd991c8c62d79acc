package complete_reservation

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

// AppliedResponse ответ идемпотентной операции
type AppliedResponse struct {
	Applied bool `json:"applied"`
}

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

// Handle PATCH /api/v1/reservations/{reservationId}/complete
// Повторное завершение или неизвестный ID отвечают 200 с applied=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	applied := h.service.Complete(r.Context(), reservationID)

	h.logger.Info("PATCH /reservations/{id}/complete - reservation_id=%s, applied=%t", reservationID, applied)
	handlers.RespondJSON(w, http.StatusOK, AppliedResponse{Applied: applied})
}
