package get_host_dashboard

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	getHostDashboard "github.com/m04kA/SMC-ParkingService/internal/usecase/get_host_dashboard"
)

const msgInvalidLimit = "некорректный limit"

type Handler struct {
	useCase GetHostDashboardUseCase
	logger  Logger
}

func NewHandler(useCase GetHostDashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/host/dashboard
// Query params: limit (optional, количество последних транзакций)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getHostDashboard.Request{}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			h.logger.Warn("GET /host/dashboard - Invalid limit: %q", limitStr)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.TransactionsLimit = limit
	}

	result := h.useCase.Execute(req)

	h.logger.Info("GET /host/dashboard - Dashboard retrieved: balance=%.2f, transactions=%d",
		result.Balance, len(result.Transactions))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
