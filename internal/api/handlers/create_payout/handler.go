package create_payout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/earnings"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidAmount       = "сумма выплаты должна быть положительной"
	msgInsufficientBalance = "недостаточно средств на балансе"
)

type Handler struct {
	service EarningsService
	logger  Logger
}

func NewHandler(service EarningsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/host/payouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /host/payouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tx, err := h.service.RequestPayout(r.Context(), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, earnings.ErrInvalidAmount):
			h.logger.Warn("POST /host/payouts - Invalid amount: %.2f", req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, earnings.ErrInsufficientBalance):
			h.logger.Warn("POST /host/payouts - Insufficient balance: amount=%.2f", req.Amount)
			handlers.RespondUnprocessable(w, msgInsufficientBalance)

		default:
			h.logger.Error("POST /host/payouts - Failed to request payout: amount=%.2f, error=%v", req.Amount, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /host/payouts - Payout created: id=%s, amount=%.2f", tx.ID, req.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromTransaction(tx, h.service.Balance()))
}
