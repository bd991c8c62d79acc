// Package reservations manages driver bookings over the availability ledger.
package reservations

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// Service менеджер бронирований водителя
type Service struct {
	mu           sync.Mutex
	reservations map[string]*domain.Reservation

	catalog      SlotCatalog
	ledger       AvailabilityLedger
	store        DocumentStore
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает менеджер бронирований
func NewService(
	catalog SlotCatalog,
	ledger AvailabilityLedger,
	store DocumentStore,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservations: make(map[string]*domain.Reservation),
		catalog:      catalog,
		ledger:       ledger,
		store:        store,
		metrics:      metrics,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// Load восстанавливает список бронирований из хранилища
func (s *Service) Load(ctx context.Context) {
	var stored []domain.Reservation
	if !documents.LoadJSON(ctx, s.store, domain.KeyDriverReservations, &stored, s.logger) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range stored {
		r := stored[i]
		s.reservations[r.ID] = &r
	}
	s.logger.Info("Load: restored %d reservations", len(s.reservations))
}

// Create создает бронирование и блокирует все слоты диапазона [start, end)
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Reservation, error) {
	s.logger.Info("Create: listing=%s, date=%s, range=%s-%s", in.ListingID, in.Date.Format(domain.DateFormat), in.Start, in.End)

	// 1. Получаем ключи слотов диапазона
	keys, err := s.catalog.SlotsCoveringRange(in.Start, in.End)
	if err != nil {
		s.logger.Warn("Create: invalid range %s-%s: %v", in.Start, in.End, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: range %s-%s is empty", ErrInvalidRange, in.Start, in.End)
	}

	// 2. Блокируем слоты
	if err := s.ledger.Reserve(ctx, in.ListingID, keys); err != nil {
		s.logger.Error("Create: failed to reserve slots for listing=%s: %v", in.ListingID, err)
		return nil, fmt.Errorf("%w: %v", ErrReserve, err)
	}

	// 3. Сохраняем бронирование
	now := s.timeProvider.Now()
	reservation := &domain.Reservation{
		ID:        uuid.NewString(),
		ListingID: in.ListingID,
		Date:      in.Date,
		StartKey:  keys[0],
		EndKey:    keys[len(keys)-1],
		State:     domain.ReservationActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.reservations[reservation.ID] = reservation
	out := *reservation
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.metrics.IncReservationOperation("create")
	s.logger.Info("Create: reservation id=%s, slots=%v", out.ID, keys)
	return &out, nil
}

// Extend продлевает активное бронирование на extra
// Текущей границей окончания считается начало последнего слота бронирования,
// повторно блокируются только новые слоты
func (s *Service) Extend(ctx context.Context, id string, extra time.Duration) (ExtendResult, error) {
	if extra <= 0 {
		return ExtendResult{}, ErrInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok || !reservation.IsActive() {
		return ExtendResult{}, nil
	}

	endSlot, ok := s.catalog.Slot(reservation.EndKey)
	if !ok {
		s.logger.Warn("Extend: reservation id=%s has unknown end key=%s", id, reservation.EndKey)
		return ExtendResult{}, nil
	}

	// 1. Вычисляем новую границу (не дальше конца суток)
	currentEnd := endSlot.Start
	newEnd, err := currentEnd.AddMinutes(int(extra / time.Minute))
	if err != nil {
		newEnd = types.TimeString("24:00")
	}

	// 2. Берём только добавленные слоты
	added := s.catalog.AdditionalSlots(currentEnd, newEnd)
	if len(added) == 0 {
		s.logger.Info("Extend: reservation id=%s, %s -> %s adds no slots", id, currentEnd, newEnd)
		return ExtendResult{Reservation: ptrCopy(reservation)}, nil
	}

	// 3. Блокируем их и сдвигаем конец бронирования
	if err := s.ledger.Reserve(ctx, reservation.ListingID, added); err != nil {
		s.logger.Error("Extend: failed to reserve slots for reservation id=%s: %v", id, err)
		return ExtendResult{}, fmt.Errorf("%w: %v", ErrReserve, err)
	}

	reservation.EndKey = added[len(added)-1]
	reservation.UpdatedAt = s.timeProvider.Now()
	s.persistLocked(ctx)

	s.metrics.IncReservationOperation("extend")
	s.logger.Info("Extend: reservation id=%s, added=%v", id, added)
	return ExtendResult{Applied: true, AddedSlots: added, Reservation: ptrCopy(reservation)}, nil
}

// Cancel отменяет бронирование: слоты активного бронирования освобождаются, запись удаляется
func (s *Service) Cancel(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return false
	}

	if reservation.IsActive() {
		keys := s.catalog.KeysBetween(reservation.StartKey, reservation.EndKey)
		if err := s.ledger.Release(ctx, reservation.ListingID, keys); err != nil {
			s.logger.Warn("Cancel: failed to release slots of reservation id=%s: %v", id, err)
		}
	}

	delete(s.reservations, id)
	s.persistLocked(ctx)

	s.metrics.IncReservationOperation("cancel")
	s.logger.Info("Cancel: reservation id=%s", id)
	return true
}

// Complete помечает активное бронирование завершённым и освобождает его слоты
func (s *Service) Complete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok || !reservation.IsActive() {
		return false
	}

	keys := s.catalog.KeysBetween(reservation.StartKey, reservation.EndKey)
	if err := s.ledger.Release(ctx, reservation.ListingID, keys); err != nil {
		s.logger.Warn("Complete: failed to release slots of reservation id=%s: %v", id, err)
	}

	reservation.State = domain.ReservationCompleted
	reservation.UpdatedAt = s.timeProvider.Now()
	s.persistLocked(ctx)

	s.metrics.IncReservationOperation("complete")
	s.logger.Info("Complete: reservation id=%s", id)
	return true
}

// Get возвращает копию бронирования
func (s *Service) Get(id string) (*domain.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, false
	}
	return ptrCopy(reservation), true
}

// List возвращает бронирования, отсортированные по дате создания
func (s *Service) List() []domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedLocked()
}

// Slots возвращает все слоты бронирования
func (s *Service) Slots(r domain.Reservation) []domain.SlotKey {
	return s.catalog.KeysBetween(r.StartKey, r.EndKey)
}

func (s *Service) sortedLocked() []domain.Reservation {
	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *Service) persistLocked(ctx context.Context) {
	if _, err := documents.SaveJSON(ctx, s.store, domain.KeyDriverReservations, s.sortedLocked()); err != nil {
		s.logger.Error("persist: failed to save reservations: %v", err)
	}
}

func ptrCopy(r *domain.Reservation) *domain.Reservation {
	out := *r
	return &out
}
