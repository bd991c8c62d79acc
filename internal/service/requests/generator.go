package requests

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	quarterHour      = 15 * time.Minute
	maxStartQuarters = 4 // старт через 0-3 четверти часа после ближайшей
)

// Generate создает одну заявку в ожидании для случайной активной парковки
// Ничего не делает, если хост офлайн, нет активных парковок или все водители уже имеют живую заявку
func (e *Engine) Generate(ctx context.Context) (domain.HostRequest, bool) {
	e.mu.Lock()
	ready := !e.disposed && e.online
	e.mu.Unlock()
	if !ready {
		return domain.HostRequest{}, false
	}

	// 1. Перечитываем справочник: активность парковок могла измениться
	listings, err := e.listings.ListListings(ctx)
	if err != nil {
		e.logger.Warn("Generate: failed to list listings: %v", err)
		return domain.HostRequest{}, false
	}
	active := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.IsActive {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		return domain.HostRequest{}, false
	}

	drivers, err := e.drivers.Drivers(ctx)
	if err != nil {
		e.logger.Warn("Generate: failed to list drivers: %v", err)
		return domain.HostRequest{}, false
	}

	e.mu.Lock()
	if e.disposed || !e.online {
		e.mu.Unlock()
		return domain.HostRequest{}, false
	}

	// 2. Выбираем парковку и водителя без живой заявки на неё
	listing := active[e.random.Intn(len(active))]
	eligible := make([]domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		if !e.hasLiveDriverLocked(listing.ID, d.ID) {
			eligible = append(eligible, d)
		}
	}
	if len(eligible) == 0 {
		e.mu.Unlock()
		e.logger.Debug("Generate: no eligible drivers for listing=%s, skipping tick", listing.ID)
		return domain.HostRequest{}, false
	}
	driver := eligible[e.random.Intn(len(eligible))]

	// 3. Создаем заявку
	req := e.newRequest(listing, driver)
	e.requests = append(e.requests, req)
	snapshot := cloneRequests(e.requests)
	seq := e.nextSeqLocked()
	e.mu.Unlock()

	e.metrics.IncRequestTransition("generated")
	e.logger.Info("Generate: request id=%s, listing=%s, driver=%s, hours=%d, price=%.2f",
		req.ID, req.ListingID, req.DriverID, req.DurationHours, req.GrossPrice)

	e.publish(ctx, domain.KeyHostRequests, seq, snapshot)
	return req.Clone(), true
}

func (e *Engine) newRequest(listing domain.Listing, driver domain.Driver) domain.HostRequest {
	now := e.timeProvider.Now()

	start := now.Truncate(quarterHour).Add(quarterHour)
	start = start.Add(time.Duration(e.random.Intn(maxStartQuarters)) * quarterHour)

	span := e.cfg.MaxDurationHours - e.cfg.MinDurationHours + 1
	hours := e.cfg.MinDurationHours + e.random.Intn(span)

	return domain.HostRequest{
		ID:            uuid.NewString(),
		ListingID:     listing.ID,
		ListingName:   listing.Name,
		DriverID:      driver.ID,
		DriverName:    driver.Name,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(hours) * time.Hour),
		DurationHours: hours,
		GrossPrice:    domain.RoundMoney(listing.PricePerHour * float64(hours)),
		Status:        domain.RequestPending,
		CreatedAt:     now,
	}
}
