package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
)

// ApplyRequestsSnapshot заменяет живую очередь снимком из другого контекста
// Новые заявки в ожидании, которых не было локально, вызывают уведомление хоста
func (e *Engine) ApplyRequestsSnapshot(ctx context.Context, payload json.RawMessage) error {
	var incoming []domain.HostRequest
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return fmt.Errorf("decode %s snapshot: %w", domain.KeyHostRequests, err)
	}
	if incoming == nil {
		incoming = make([]domain.HostRequest, 0)
	}

	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return nil
	}
	if current, err := json.Marshal(e.requests); err == nil && bytes.Equal(current, payload) {
		e.mu.Unlock()
		return nil
	}

	known := make(map[string]struct{}, len(e.requests))
	for _, req := range e.requests {
		known[req.ID] = struct{}{}
	}
	fresh := make([]domain.HostRequest, 0)
	for _, req := range incoming {
		if _, ok := known[req.ID]; !ok && req.Status == domain.RequestPending {
			fresh = append(fresh, req)
		}
	}

	e.requests = incoming
	e.mu.Unlock()

	e.logger.Info("ApplyRequestsSnapshot: replaced queue with %d requests, new pending=%d", len(incoming), len(fresh))

	for _, req := range fresh {
		n := domain.Notification{
			Title:   "Новая заявка на бронирование",
			Message: fmt.Sprintf("%s хочет забронировать %s", driverLabel(req), listingLabel(req)),
			Kind:    domain.NotificationInfo,
		}
		if err := e.notifier.Notify(ctx, n); err != nil {
			e.logger.Warn("ApplyRequestsSnapshot: notification for request id=%s failed: %v", req.ID, err)
		}
	}

	return nil
}

// ApplyOnlineSnapshot заменяет статус хоста значением из другого контекста
func (e *Engine) ApplyOnlineSnapshot(_ context.Context, payload json.RawMessage) error {
	var online bool
	if err := json.Unmarshal(payload, &online); err != nil {
		return fmt.Errorf("decode %s snapshot: %w", domain.KeyHostOnline, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed || e.online == online {
		return nil
	}
	e.online = online
	e.logger.Info("ApplyOnlineSnapshot: online=%t", online)
	return nil
}

// nextSeqLocked выдает номер снимка; вызывается под e.mu вместе с копированием состояния
func (e *Engine) nextSeqLocked() uint64 {
	e.seq++
	return e.seq
}

// publish отправляет снимок; вызывается без удержания e.mu,
// так как транспорт может синхронно доставить его в другой движок
// Снимок, устаревший относительно уже отправленного по тому же ключу, пропускается
func (e *Engine) publish(ctx context.Context, key string, seq uint64, value interface{}) {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	if seq <= e.published[key] {
		e.logger.Debug("publish: key=%s, stale snapshot seq=%d skipped (last=%d)", key, seq, e.published[key])
		return
	}
	e.published[key] = seq

	if err := e.replicator.Publish(ctx, key, value); err != nil {
		e.logger.Error("publish: key=%s: %v", key, err)
	}
}

// saveLocal сохраняет нереплицируемые документы (история, счётчик)
func (e *Engine) saveLocal(ctx context.Context, key string, value interface{}) {
	if _, err := documents.SaveJSON(ctx, e.store, key, value); err != nil {
		e.logger.Error("saveLocal: key=%s: %v", key, err)
	}
}

func driverLabel(req domain.HostRequest) string {
	if req.DriverName != "" {
		return req.DriverName
	}
	return req.DriverID
}
