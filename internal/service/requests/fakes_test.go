package requests

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 19, 10, 7, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeDirectory struct {
	listings []domain.Listing
	drivers  []domain.Driver
}

func (f *fakeDirectory) ListListings(context.Context) ([]domain.Listing, error) {
	return f.listings, nil
}

func (f *fakeDirectory) Drivers(context.Context) ([]domain.Driver, error) {
	return f.drivers, nil
}

// firstRandom always picks the first candidate
type firstRandom struct{}

func (firstRandom) Intn(int) int { return 0 }

type recordingEarnings struct {
	mu       sync.Mutex
	requests []domain.HostRequest
}

func (r *recordingEarnings) RecordEarning(_ context.Context, req domain.HostRequest) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return domain.Transaction{}, nil
}

type recordingChat struct {
	mu       sync.Mutex
	requests []domain.ConversationRequest
}

func (r *recordingChat) Dispatch(_ context.Context, req domain.ConversationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return nil
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

type recordingReplicator struct {
	mu        sync.Mutex
	published []string
}

func (r *recordingReplicator) Publish(_ context.Context, key string, _ interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, key)
	return nil
}

// gatedReplicator пишет снимки в хранилище; первая отправка очереди ждёт открытия gate
type gatedReplicator struct {
	store   *documents.MemoryStore
	entered chan struct{}
	gate    chan struct{}

	mu    sync.Mutex
	gated bool
}

func newGatedReplicator(store *documents.MemoryStore) *gatedReplicator {
	return &gatedReplicator{
		store:   store,
		entered: make(chan struct{}),
		gate:    make(chan struct{}),
	}
}

func (r *gatedReplicator) Publish(ctx context.Context, key string, value interface{}) error {
	r.mu.Lock()
	wait := key == domain.KeyHostRequests && !r.gated
	if wait {
		r.gated = true
	}
	r.mu.Unlock()

	if wait {
		close(r.entered)
		<-r.gate
	}

	_, err := documents.SaveJSON(ctx, r.store, key, value)
	return err
}
