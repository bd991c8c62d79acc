package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/listingservice"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// UseCase use case получения сетки слотов парковки
type UseCase struct {
	listings     ListingDirectory
	catalog      SlotCatalog
	ledger       AvailabilityLedger
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(listings ListingDirectory, catalog SlotCatalog, ledger AvailabilityLedger, logger Logger) *UseCase {
	return &UseCase{
		listings:     listings,
		catalog:      catalog,
		ledger:       ledger,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Прошедшие даты не показываем
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, req.Date.Format(domain.DateFormat))
	}

	// 3. Получаем парковку
	listing, err := uc.listings.GetListing(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingservice.ErrListingNotFound) {
			uc.logger.Warn("GetAvailableSlots: listing id=%s not found", req.ListingID)
			return nil, ErrListingNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get listing id=%s: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get listing: %v", ErrInternal, err)
	}

	// 4. Получаем запись реестра (регистрируем парковку, если её ещё нет)
	uc.ledger.Register(ctx, *listing)
	entry, err := uc.ledger.Entry(listing.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: ledger entry for listing=%s: %v", listing.ID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Строим сетку слотов
	today := isToday(req.Date, now)
	current := types.NewTimeString(now)

	catalogSlots := uc.catalog.Slots()
	slots := make([]Slot, 0, len(catalogSlots))
	for _, s := range catalogSlots {
		slots = append(slots, Slot{
			Key:       s.Key(),
			StartTime: s.Start,
			EndTime:   s.End,
			Blocked:   entry.IsReserved(s.Key()),
			Past:      today && s.Start.IsBefore(current),
		})
	}

	uc.logger.Info("GetAvailableSlots: listing=%s, date=%s, slots=%d, blocked=%d, free=%d",
		listing.ID, req.Date.Format(domain.DateFormat), len(slots), len(entry.ReservedSlotKeys), entry.FreeCount)

	return &Response{
		ListingID:     listing.ID,
		ListingName:   listing.Name,
		IsActive:      listing.IsActive,
		PricePerHour:  listing.PricePerHour,
		Date:          req.Date,
		CapacityTotal: entry.CapacityTotal,
		FreeCount:     entry.FreeCount,
		Slots:         slots,
	}, nil
}
