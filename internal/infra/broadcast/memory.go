package broadcast

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// MemoryBus in-process pub/sub. Publish delivers synchronously to every subscriber,
// the publisher included; filtering by origin is up to the subscriber.
type MemoryBus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(domain.Snapshot)
}

// NewMemoryBus создает шину без подписчиков
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[int]func(domain.Snapshot))}
}

func (b *MemoryBus) Publish(_ context.Context, snapshot domain.Snapshot) error {
	b.mu.RLock()
	handlers := make([]func(domain.Snapshot), 0, len(b.handlers))
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		payload := make([]byte, len(snapshot.Payload))
		copy(payload, snapshot.Payload)
		delivered := snapshot
		delivered.Payload = payload
		handler(delivered)
	}
	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, handler func(domain.Snapshot)) (io.Closer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[b.nextID] = handler
	return &memorySubscription{bus: b, id: b.nextID}, nil
}

// Subscribers возвращает количество активных подписок
func (b *MemoryBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

type memorySubscription struct {
	bus  *MemoryBus
	id   int
	once sync.Once
}

func (s *memorySubscription) Close() error {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.handlers, s.id)
		s.bus.mu.Unlock()
	})
	return nil
}
