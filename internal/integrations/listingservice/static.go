package listingservice

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Static справочник парковок и водителей из конфигурации
type Static struct {
	mu       sync.RWMutex
	listings []domain.Listing
	drivers  []domain.Driver
}

// NewStatic создает справочник
func NewStatic(listings []domain.Listing, drivers []domain.Driver) *Static {
	return &Static{
		listings: cloneListings(listings),
		drivers:  append([]domain.Driver(nil), drivers...),
	}
}

func (s *Static) ListListings(_ context.Context) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneListings(s.listings), nil
}

func (s *Static) GetListing(_ context.Context, id string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.listings {
		if l.ID == id {
			out := l
			return &out, nil
		}
	}
	return nil, ErrListingNotFound
}

func (s *Static) Drivers(_ context.Context) ([]domain.Driver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Driver(nil), s.drivers...), nil
}

// SetActive меняет флаг активности парковки
func (s *Static) SetActive(id string, active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listings {
		if s.listings[i].ID == id {
			s.listings[i].IsActive = active
			return true
		}
	}
	return false
}
