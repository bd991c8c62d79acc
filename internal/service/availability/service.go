// Package availability keeps per-listing capacity and reserved slot bookkeeping.
package availability

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
)

// Service реестр доступности парковок
// Invariant: 0 <= FreeCount <= CapacityTotal, ReservedSlotKeys are catalog keys
type Service struct {
	mu      sync.Mutex
	entries map[string]*domain.LedgerEntry

	catalog SlotCatalog
	store   DocumentStore
	metrics Metrics
	logger  Logger
}

// NewService создает пустой реестр
func NewService(catalog SlotCatalog, store DocumentStore, metrics Metrics, logger Logger) *Service {
	return &Service{
		entries: make(map[string]*domain.LedgerEntry),
		catalog: catalog,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Load восстанавливает реестр из хранилища
// Повреждённый документ или отсутствие документа оставляют реестр пустым
func (s *Service) Load(ctx context.Context) {
	var doc ledgerDocument
	if !documents.LoadJSON(ctx, s.store, domain.KeyAvailability, &doc, s.logger) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for listingID, stored := range doc {
		entry := domain.NewLedgerEntry(listingID, stored.CapacityTotal)
		entry.FreeCount = clamp(stored.FreeCount, 0, entry.CapacityTotal)
		for _, key := range stored.ReservedSlotKeys {
			if !s.catalog.Contains(key) {
				s.logger.Warn("Load: dropping unknown slot key=%s for listing=%s", key, listingID)
				continue
			}
			entry.ReservedSlotKeys[key] = struct{}{}
		}
		s.entries[listingID] = entry
		s.metrics.SetFreeSpaces(listingID, entry.FreeCount)
	}

	s.logger.Info("Load: restored %d ledger entries", len(s.entries))
}

// Register создает запись для парковки, если её ещё нет
// Уже существующая (в т.ч. восстановленная из хранилища) запись не перезаписывается
func (s *Service) Register(ctx context.Context, listing domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[listing.ID]; ok {
		return
	}

	entry := domain.NewLedgerEntry(listing.ID, listing.CapacityTotal)
	s.entries[listing.ID] = entry
	s.metrics.SetFreeSpaces(listing.ID, entry.FreeCount)
	s.logger.Info("Register: listing=%s, capacity=%d", listing.ID, entry.CapacityTotal)

	s.persistLocked(ctx)
}

// Remove удаляет запись парковки
func (s *Service) Remove(ctx context.Context, listingID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[listingID]; !ok {
		return
	}

	delete(s.entries, listingID)
	s.metrics.DeleteFreeSpaces(listingID)
	s.logger.Info("Remove: listing=%s", listingID)

	s.persistLocked(ctx)
}

// SyncListings приводит реестр к переданному списку парковок
// Новые парковки регистрируются, исчезнувшие удаляются
func (s *Service) SyncListings(ctx context.Context, listings []domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	present := make(map[string]struct{}, len(listings))
	for _, listing := range listings {
		present[listing.ID] = struct{}{}
		if _, ok := s.entries[listing.ID]; ok {
			continue
		}
		entry := domain.NewLedgerEntry(listing.ID, listing.CapacityTotal)
		s.entries[listing.ID] = entry
		s.metrics.SetFreeSpaces(listing.ID, entry.FreeCount)
	}

	for listingID := range s.entries {
		if _, ok := present[listingID]; !ok {
			delete(s.entries, listingID)
			s.metrics.DeleteFreeSpaces(listingID)
		}
	}

	s.logger.Info("SyncListings: %d listings in ledger", len(s.entries))
	s.persistLocked(ctx)
}

// Reserve блокирует слоты парковки
// Количество свободных мест уменьшается ровно на 1 за вызов, независимо от числа слотов
func (s *Service) Reserve(ctx context.Context, listingID string, keys []domain.SlotKey) error {
	keys = s.catalogKeys(keys)
	if len(keys) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[listingID]
	if !ok {
		return fmt.Errorf("%w: listing=%s", ErrListingNotFound, listingID)
	}

	for _, key := range keys {
		entry.ReservedSlotKeys[key] = struct{}{}
	}
	entry.FreeCount = clamp(entry.FreeCount-1, 0, entry.CapacityTotal)

	s.metrics.SetFreeSpaces(listingID, entry.FreeCount)
	s.logger.Info("Reserve: listing=%s, slots=%v, free=%d", listingID, keys, entry.FreeCount)

	s.persistLocked(ctx)
	return nil
}

// Release освобождает слоты парковки
// Ключи, которые не были заблокированы, игнорируются; свободных мест становится на 1 больше
func (s *Service) Release(ctx context.Context, listingID string, keys []domain.SlotKey) error {
	keys = s.catalogKeys(keys)
	if len(keys) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[listingID]
	if !ok {
		return fmt.Errorf("%w: listing=%s", ErrListingNotFound, listingID)
	}

	for _, key := range keys {
		delete(entry.ReservedSlotKeys, key)
	}
	entry.FreeCount = clamp(entry.FreeCount+1, 0, entry.CapacityTotal)

	s.metrics.SetFreeSpaces(listingID, entry.FreeCount)
	s.logger.Info("Release: listing=%s, slots=%v, free=%d", listingID, keys, entry.FreeCount)

	s.persistLocked(ctx)
	return nil
}

// BlockedSlots возвращает заблокированные слоты парковки в порядке каталога
func (s *Service) BlockedSlots(listingID string) ([]domain.SlotKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[listingID]
	if !ok {
		return nil, fmt.Errorf("%w: listing=%s", ErrListingNotFound, listingID)
	}

	keys := entry.SortedKeys()
	sort.SliceStable(keys, func(i, j int) bool {
		return s.catalog.Position(keys[i]) < s.catalog.Position(keys[j])
	})
	return keys, nil
}

// Entry возвращает копию записи парковки
func (s *Service) Entry(listingID string) (domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[listingID]
	if !ok {
		return domain.LedgerEntry{}, fmt.Errorf("%w: listing=%s", ErrListingNotFound, listingID)
	}
	return entry.Clone(), nil
}

func (s *Service) catalogKeys(keys []domain.SlotKey) []domain.SlotKey {
	out := make([]domain.SlotKey, 0, len(keys))
	for _, key := range keys {
		if !s.catalog.Contains(key) {
			s.logger.Warn("catalogKeys: ignoring unknown slot key=%s", key)
			continue
		}
		out = append(out, key)
	}
	return out
}

// persistLocked сохраняет реестр; ошибка хранилища только логируется
func (s *Service) persistLocked(ctx context.Context) {
	doc := make(ledgerDocument, len(s.entries))
	for listingID, entry := range s.entries {
		doc[listingID] = entryDocument{
			CapacityTotal:    entry.CapacityTotal,
			FreeCount:        entry.FreeCount,
			ReservedSlotKeys: entry.SortedKeys(),
		}
	}

	if _, err := documents.SaveJSON(ctx, s.store, domain.KeyAvailability, doc); err != nil {
		s.logger.Error("persist: failed to save ledger: %v", err)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
