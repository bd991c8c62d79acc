package requests

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Sweep удаляет из истории заявки с истёкшим окном восстановления
// и завершает заявки в работе, время окончания которых наступило
func (e *Engine) Sweep(ctx context.Context) SweepResult {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return SweepResult{}
	}

	now := e.timeProvider.Now()
	var result SweepResult

	// 1. Очищаем историю
	kept := e.history[:0]
	for _, req := range e.history {
		if req.IsExpired(now) {
			result.Purged++
			continue
		}
		kept = append(kept, req)
	}
	e.history = kept

	// 2. Завершаем заявки в работе
	for i := range e.requests {
		if !e.requests[i].IsDue(now) {
			continue
		}
		e.requests[i].Status = domain.RequestCompleted
		result.Completed++
		if e.activeReservations > 0 {
			e.activeReservations--
		}
	}

	if result.Purged > 0 {
		e.saveLocal(ctx, domain.KeyRequestHistory, e.history)
	}
	var (
		snapshot []domain.HostRequest
		seq      uint64
	)
	if result.Completed > 0 {
		e.saveLocal(ctx, domain.KeyActiveReservations, e.activeReservations)
		snapshot = cloneRequests(e.requests)
		seq = e.nextSeqLocked()
	}
	e.mu.Unlock()

	for i := 0; i < result.Purged; i++ {
		e.metrics.IncRequestTransition("purged")
	}
	for i := 0; i < result.Completed; i++ {
		e.metrics.IncRequestTransition("completed")
	}

	if result.Completed > 0 {
		e.logger.Info("Sweep: completed=%d, purged=%d", result.Completed, result.Purged)
		e.publish(ctx, domain.KeyHostRequests, seq, snapshot)
	}

	return result
}
