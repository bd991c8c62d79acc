package set_host_status

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingOnline      = "поле online обязательно"
)

type Handler struct {
	engine RequestEngine
	logger Logger
}

func NewHandler(engine RequestEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// Handle PUT /api/v1/host/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SetHostStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /host/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Online == nil {
		handlers.RespondBadRequest(w, msgMissingOnline)
		return
	}

	applied := h.engine.SetOnline(r.Context(), *req.Online)

	h.logger.Info("PUT /host/status - online=%t, applied=%t", *req.Online, applied)
	handlers.RespondJSON(w, http.StatusOK, HostStatusResponse{
		Online:  h.engine.Online(),
		Applied: applied,
	})
}
