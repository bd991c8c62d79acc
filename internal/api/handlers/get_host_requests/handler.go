package get_host_requests

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Handler struct {
	engine RequestEngine
	now    func() time.Time
	logger Logger
}

func NewHandler(engine RequestEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		now:    time.Now,
		logger: logger,
	}
}

// Handle GET /api/v1/host/requests
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	queue := h.engine.Requests()
	history := h.engine.History()

	h.logger.Info("GET /host/requests - queue=%d, history=%d", len(queue), len(history))
	handlers.RespondJSON(w, http.StatusOK, HostRequestsResponse{
		Online:  h.engine.Online(),
		Queue:   fromDomainList(queue, now),
		History: fromDomainList(history, now),
	})
}
