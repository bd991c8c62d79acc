package create_reservation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ParkingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgPastDate           = "дата бронирования уже прошла"
	msgInvalidTimeRange   = "интервал не совпадает с границами слотов"
	msgListingNotFound    = "парковка не найдена"
	msgListingInactive    = "парковка не принимает бронирования"
	msgSlotNotAvailable   = "выбранные слоты уже заняты"
	msgNoFreeSpaces       = "на парковке нет свободных мест"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if strings.HasPrefix(err.Error(), "date") {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Past date: listing_id=%s", req.ListingID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createReservation.ErrInvalidTimeRange):
			h.logger.Warn("POST /reservations - Invalid time range: listing_id=%s, range=%s-%s",
				req.ListingID, req.StartTime, req.EndTime)
			handlers.RespondUnprocessable(w, msgInvalidTimeRange)

		case errors.Is(err, createReservation.ErrListingNotFound):
			h.logger.Warn("POST /reservations - Listing not found: listing_id=%s", req.ListingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, createReservation.ErrListingInactive):
			h.logger.Warn("POST /reservations - Listing inactive: listing_id=%s", req.ListingID)
			handlers.RespondConflict(w, msgListingInactive)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slots not available: listing_id=%s, range=%s-%s",
				req.ListingID, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrNoFreeSpaces):
			h.logger.Warn("POST /reservations - No free spaces: listing_id=%s", req.ListingID)
			handlers.RespondConflict(w, msgNoFreeSpaces)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: listing_id=%s, error=%v", req.ListingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, listing_id=%s",
		result.Reservation.ID, req.ListingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
