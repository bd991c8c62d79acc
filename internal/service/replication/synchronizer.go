// Package replication mirrors shared documents between execution contexts.
//
// Every local mutation writes the full document to the shared store and
// broadcasts it. Inbound snapshots replace the local value wholesale:
// last writer wins, there is no merge and no conflict detection.
package replication

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
)

// Applier replaces local state with an inbound snapshot payload
type Applier func(ctx context.Context, payload json.RawMessage) error

// Synchronizer синхронизатор снимков одного контекста исполнения
type Synchronizer struct {
	contextID string

	store        DocumentStore
	broadcaster  Broadcaster
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider

	mu       sync.RWMutex
	appliers map[string]Applier
	sub      io.Closer
}

// NewSynchronizer создает синхронизатор; contextID должен быть уникален для каждого контекста
func NewSynchronizer(contextID string, store DocumentStore, broadcaster Broadcaster, metrics Metrics, logger Logger) *Synchronizer {
	return &Synchronizer{
		contextID:    contextID,
		store:        store,
		broadcaster:  broadcaster,
		metrics:      metrics,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
		appliers:     make(map[string]Applier),
	}
}

// ContextID возвращает идентификатор контекста
func (s *Synchronizer) ContextID() string {
	return s.contextID
}

// Register регистрирует обработчик входящих снимков ключа
func (s *Synchronizer) Register(key string, fn Applier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appliers[key] = fn
}

// Publish сохраняет документ целиком и рассылает его остальным контекстам
func (s *Synchronizer) Publish(ctx context.Context, key string, value interface{}) error {
	// 1. Сохраняем снимок в общем хранилище
	payload, err := documents.SaveJSON(ctx, s.store, key, value)
	if err != nil {
		s.logger.Error("Publish: failed to persist key=%s: %v", key, err)
		if payload == nil {
			return fmt.Errorf("%w: key=%s: %v", ErrPublish, key, err)
		}
	}

	// 2. Рассылаем снимок
	snapshot := domain.Snapshot{
		Key:         key,
		Origin:      s.contextID,
		Payload:     payload,
		PublishedAt: s.timeProvider.Now(),
	}
	if err := s.broadcaster.Publish(ctx, snapshot); err != nil {
		s.logger.Error("Publish: failed to broadcast key=%s: %v", key, err)
		return fmt.Errorf("%w: key=%s: %v", ErrPublish, key, err)
	}

	s.metrics.IncSnapshot(key, "out")
	return nil
}

// Handle применяет входящий снимок
// Собственные снимки контекста и снимки незарегистрированных ключей игнорируются
func (s *Synchronizer) Handle(ctx context.Context, snapshot domain.Snapshot) {
	if snapshot.Origin == s.contextID {
		return
	}

	s.mu.RLock()
	apply, ok := s.appliers[snapshot.Key]
	s.mu.RUnlock()
	if !ok {
		return
	}

	if err := apply(ctx, snapshot.Payload); err != nil {
		s.logger.Warn("Handle: dropped snapshot key=%s from origin=%s: %v", snapshot.Key, snapshot.Origin, err)
		return
	}

	s.metrics.IncSnapshot(snapshot.Key, "in")
}

// Start подписывается на транспорт
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		return ErrAlreadyStarted
	}

	sub, err := s.broadcaster.Subscribe(ctx, func(snapshot domain.Snapshot) {
		s.Handle(ctx, snapshot)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubscribe, err)
	}

	s.sub = sub
	s.logger.Info("Start: context=%s subscribed", s.contextID)
	return nil
}

// Stop отписывается от транспорта; повторный вызов ничего не делает
func (s *Synchronizer) Stop() error {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub == nil {
		return nil
	}
	return sub.Close()
}
