package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/listingservice"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
)

// UseCase use case подтверждения бронирования водителем
type UseCase struct {
	listings     ListingDirectory
	catalog      SlotCatalog
	ledger       AvailabilityLedger
	reservations ReservationManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	listings ListingDirectory,
	catalog SlotCatalog,
	ledger AvailabilityLedger,
	reservations ReservationManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		listings:     listings,
		catalog:      catalog,
		ledger:       ledger,
		reservations: reservations,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: listing=%s, date=%s, range=%s-%s",
		req.ListingID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	// 3. Получаем парковку, она должна существовать и быть активной
	listing, err := uc.listings.GetListing(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingservice.ErrListingNotFound) {
			uc.logger.Warn("CreateReservation: listing id=%s not found", req.ListingID)
			return nil, ErrListingNotFound
		}
		uc.logger.Error("CreateReservation: failed to get listing id=%s: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get listing: %v", ErrInternal, err)
	}
	if !listing.IsActive {
		uc.logger.Warn("CreateReservation: listing id=%s is not active", req.ListingID)
		return nil, ErrListingInactive
	}

	// 4. Получаем слоты диапазона
	keys, err := uc.catalog.SlotsCoveringRange(req.StartTime, req.EndTime)
	if err != nil || len(keys) == 0 {
		uc.logger.Warn("CreateReservation: range %s-%s is not aligned to slots: %v", req.StartTime, req.EndTime, err)
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, req.StartTime, req.EndTime)
	}

	// 5. Проверяем доступность (парковка могла появиться в справочнике после загрузки реестра)
	uc.ledger.Register(ctx, *listing)
	entry, err := uc.ledger.Entry(listing.ID)
	if err != nil {
		uc.logger.Error("CreateReservation: ledger entry for listing=%s: %v", listing.ID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	if !entry.HasFreeSpace() {
		uc.logger.Warn("CreateReservation: no free spaces on listing=%s", listing.ID)
		return nil, ErrNoFreeSpaces
	}

	if blocked := findBlocked(entry, keys); len(blocked) > 0 {
		uc.logger.Warn("CreateReservation: slots %v already blocked on listing=%s", blocked, listing.ID)
		return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, blocked)
	}

	// 6. Создаем бронирование
	reservation, err := uc.reservations.Create(ctx, reservations.CreateInput{
		ListingID: listing.ID,
		Date:      req.Date,
		Start:     req.StartTime,
		End:       req.EndTime,
	})
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidRange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	// 7. Считаем оценку стоимости
	hours := float64(len(keys)) * uc.catalog.SlotWidth().Hours()
	freeCount := entry.FreeCount
	if after, err := uc.ledger.Entry(listing.ID); err == nil {
		freeCount = after.FreeCount
	} else if !errors.Is(err, availability.ErrListingNotFound) {
		uc.logger.Warn("CreateReservation: failed to read free count: %v", err)
	}

	uc.logger.Info("CreateReservation: reservation id=%s created, slots=%d, free=%d", reservation.ID, len(keys), freeCount)

	return &Response{
		Reservation:    *reservation,
		Slots:          keys,
		ListingName:    listing.Name,
		Hours:          hours,
		EstimatedPrice: domain.RoundMoney(listing.PricePerHour * hours),
		FreeCount:      freeCount,
	}, nil
}
