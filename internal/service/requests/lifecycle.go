package requests

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SetOnline переключает статус хоста
// Возвращает false, если статус не изменился
func (e *Engine) SetOnline(ctx context.Context, online bool) bool {
	e.mu.Lock()
	if e.disposed || e.online == online {
		e.mu.Unlock()
		return false
	}
	e.online = online
	seq := e.nextSeqLocked()
	e.mu.Unlock()

	e.logger.Info("SetOnline: online=%t", online)
	e.publish(ctx, domain.KeyHostOnline, seq, online)
	return true
}

// Accept принимает заявку в ожидании: она сразу переходит в in-progress
// Начисление, счётчик бронирований и открытие чата выполняются в рамках одного вызова
func (e *Engine) Accept(ctx context.Context, id string) (domain.HostRequest, bool) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return domain.HostRequest{}, false
	}
	idx := e.indexLocked(e.requests, id)
	if idx < 0 || e.requests[idx].Status != domain.RequestPending {
		e.mu.Unlock()
		return domain.HostRequest{}, false
	}

	// 1. Переводим заявку в работу и увеличиваем счётчик
	e.requests[idx].Status = domain.RequestInProgress
	accepted := e.requests[idx].Clone()
	e.activeReservations++
	e.saveLocal(ctx, domain.KeyActiveReservations, e.activeReservations)
	snapshot := cloneRequests(e.requests)
	seq := e.nextSeqLocked()
	e.mu.Unlock()

	// 2. Фиксируем начисление
	if _, err := e.earnings.RecordEarning(ctx, accepted); err != nil {
		e.logger.Error("Accept: failed to record earning for request id=%s: %v", id, err)
	}

	e.metrics.IncRequestTransition("accepted")
	e.logger.Info("Accept: request id=%s, listing=%s, driver=%s", id, accepted.ListingID, accepted.DriverID)
	e.publish(ctx, domain.KeyHostRequests, seq, snapshot)

	// 3. Открываем чат с водителем (асинхронно, ошибки не влияют на результат)
	if err := e.chat.Dispatch(ctx, e.conversationFor(accepted)); err != nil {
		e.logger.Warn("Accept: failed to dispatch chat for request id=%s: %v", id, err)
	}

	return accepted, true
}

// Reject отклоняет заявку в ожидании и переносит её копию в историю
func (e *Engine) Reject(ctx context.Context, id string) (domain.HostRequest, bool) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return domain.HostRequest{}, false
	}
	idx := e.indexLocked(e.requests, id)
	if idx < 0 || e.requests[idx].Status != domain.RequestPending {
		e.mu.Unlock()
		return domain.HostRequest{}, false
	}

	now := e.timeProvider.Now()
	rejected := e.requests[idx].Clone()
	rejected.Status = domain.RequestRejected
	rejected.RejectedAt = &now

	e.requests = append(e.requests[:idx], e.requests[idx+1:]...)
	e.history = append(e.history, rejected)
	e.saveLocal(ctx, domain.KeyRequestHistory, e.history)
	snapshot := cloneRequests(e.requests)
	seq := e.nextSeqLocked()
	e.mu.Unlock()

	e.metrics.IncRequestTransition("rejected")
	e.logger.Info("Reject: request id=%s", id)
	e.publish(ctx, domain.KeyHostRequests, seq, snapshot)

	return rejected.Clone(), true
}

// Recover возвращает отклонённую заявку в очередь, пока не истекло окно восстановления
// Не восстанавливает, если у водителя уже есть живая заявка на ту же парковку
func (e *Engine) Recover(ctx context.Context, id string) (domain.HostRequest, bool) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return domain.HostRequest{}, false
	}
	idx := e.indexLocked(e.history, id)
	if idx < 0 || !e.history[idx].IsRecoverable(e.timeProvider.Now()) {
		e.mu.Unlock()
		return domain.HostRequest{}, false
	}
	if e.hasLiveDriverLocked(e.history[idx].ListingID, e.history[idx].DriverID) {
		e.mu.Unlock()
		e.logger.Debug("Recover: driver already holds a live request, id=%s", id)
		return domain.HostRequest{}, false
	}

	restored := e.history[idx].Clone()
	restored.Status = domain.RequestPending
	restored.RejectedAt = nil

	e.history = append(e.history[:idx], e.history[idx+1:]...)
	e.requests = append(e.requests, restored)
	e.saveLocal(ctx, domain.KeyRequestHistory, e.history)
	snapshot := cloneRequests(e.requests)
	seq := e.nextSeqLocked()
	e.mu.Unlock()

	e.metrics.IncRequestTransition("recovered")
	e.logger.Info("Recover: request id=%s", id)
	e.publish(ctx, domain.KeyHostRequests, seq, snapshot)

	return restored.Clone(), true
}

func (e *Engine) conversationFor(req domain.HostRequest) domain.ConversationRequest {
	return domain.ConversationRequest{
		RequestID:   req.ID,
		ListingID:   req.ListingID,
		ListingName: req.ListingName,
		DriverID:    req.DriverID,
		DriverName:  req.DriverName,
		AuthorID:    e.cfg.HostID,
		AuthorName:  e.cfg.HostName,
		Text: fmt.Sprintf("Здравствуйте! Ваша заявка на %s с %s до %s подтверждена.",
			listingLabel(req), req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat)),
	}
}

func listingLabel(req domain.HostRequest) string {
	if req.ListingName != "" {
		return req.ListingName
	}
	return req.ListingID
}
