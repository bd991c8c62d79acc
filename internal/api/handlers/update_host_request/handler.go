package update_host_request

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const msgUnknownAction = "неизвестное действие, ожидается accept, reject или recover"

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

// Handle PATCH /api/v1/host/requests/{requestId}/{action}
// Переход из неподходящего состояния отвечает 200 с applied=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestID := vars["requestId"]
	action := vars["action"]

	var transition func(ctx context.Context, id string) (domain.HostRequest, bool)
	switch action {
	case ActionAccept:
		transition = h.engine.Accept
	case ActionReject:
		transition = h.engine.Reject
	case ActionRecover:
		transition = h.engine.Recover
	default:
		h.logger.Warn("PATCH /host/requests/{id}/{action} - Unknown action: %s", action)
		handlers.RespondBadRequest(w, msgUnknownAction)
		return
	}

	updated, applied := transition(r.Context(), requestID)

	resp := TransitionResponse{Applied: applied, Action: action}
	if applied {
		resp.Request = fromDomain(updated)
	}

	h.logger.Info("PATCH /host/requests/{id}/%s - request_id=%s, applied=%t", action, requestID, applied)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
