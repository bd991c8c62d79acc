package get_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
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

// Handle GET /api/v1/reservations
// Query params: state (optional, active|completed)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	state := domain.ReservationState(r.URL.Query().Get("state"))

	list := h.service.List()
	result := make([]ReservationResponse, 0, len(list))
	for _, res := range list {
		if state != "" && res.State != state {
			continue
		}
		result = append(result, FromDomain(res, h.service.Slots(res)))
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
