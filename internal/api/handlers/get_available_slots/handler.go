package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate        = "дата уже прошла"
	msgListingNotFound = "парковка не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	clock   TimeProvider
	logger  Logger
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		clock:   realClock{},
		logger:  logger,
	}
}

// Handle GET /api/v1/listings/{listingId}/slots
// Query params: date (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID := mux.Vars(r)["listingId"]

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(listingID, r.URL.Query().Get("date"), h.clock.Now())
	if err != nil {
		h.logger.Warn("GET /listings/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrListingNotFound):
			h.logger.Warn("GET /listings/{id}/slots - Listing not found: listing_id=%s", listingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /listings/{id}/slots - Past date: listing_id=%s", listingID)
			handlers.RespondBadRequest(w, msgPastDate)

		default:
			h.logger.Error("GET /listings/{id}/slots - Failed to get slots: listing_id=%s, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /listings/{id}/slots - Slots retrieved successfully: listing_id=%s, slots_count=%d, free=%d",
		listingID, len(result.Slots), result.FreeCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
