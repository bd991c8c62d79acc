package requests

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/broadcast"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
	"github.com/m04kA/SMC-ParkingService/internal/service/earnings"
	"github.com/m04kA/SMC-ParkingService/internal/service/replication"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/scheduler"
)

var noMetrics *metrics.Metrics

type fixture struct {
	engine     *Engine
	clock      *fakeClock
	directory  *fakeDirectory
	earnings   *recordingEarnings
	chat       *recordingChat
	notifier   *recordingNotifier
	replicator *recordingReplicator
	store      *documents.MemoryStore
}

func defaultDirectory() *fakeDirectory {
	return &fakeDirectory{
		listings: []domain.Listing{{ID: "garage-1", Name: "Garage", PricePerHour: 6, CapacityTotal: 2, IsActive: true}},
		drivers:  []domain.Driver{{ID: "A", Name: "Anna"}, {ID: "B", Name: "Boris"}},
	}
}

func oneHourConfig() Config {
	cfg := DefaultConfig()
	cfg.MinDurationHours = 1
	cfg.MaxDurationHours = 1
	return cfg
}

func newFixture(t *testing.T, cfg Config, random RandomSource) fixture {
	t.Helper()

	f := fixture{
		clock:      newFakeClock(),
		directory:  defaultDirectory(),
		earnings:   &recordingEarnings{},
		chat:       &recordingChat{},
		notifier:   &recordingNotifier{},
		replicator: &recordingReplicator{},
		store:      documents.NewMemoryStore(),
	}

	engine, err := NewEngine(cfg, Dependencies{
		Listings:   f.directory,
		Drivers:    f.directory,
		Earnings:   f.earnings,
		Chat:       f.chat,
		Notifier:   f.notifier,
		Replicator: f.replicator,
		Store:      f.store,
		Metrics:    noMetrics,
		Logger:     logger.NewNop(),
		Random:     random,
	})
	require.NoError(t, err)
	engine.timeProvider = f.clock
	f.engine = engine

	return f
}

func assertNoDuplicateLiveDrivers(t *testing.T, requests []domain.HostRequest) {
	t.Helper()
	seen := make(map[string]struct{})
	for _, req := range requests {
		if !req.IsLive() {
			continue
		}
		key := req.ListingID + "/" + req.DriverID
		_, dup := seen[key]
		require.False(t, dup, "driver %s holds two live requests for %s", req.DriverID, req.ListingID)
		seen[key] = struct{}{}
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinDurationHours = 5
	cfg.MaxDurationHours = 2

	_, err := NewEngine(cfg, Dependencies{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerate_SkipsWhenOffline(t *testing.T) {
	f := newFixture(t, oneHourConfig(), firstRandom{})

	_, ok := f.engine.Generate(context.Background())

	assert.False(t, ok)
	assert.Empty(t, f.engine.Requests())
}

func TestGenerate_SkipsWithoutActiveListings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.directory.listings[0].IsActive = false
	f.engine.SetOnline(ctx, true)

	_, ok := f.engine.Generate(ctx)

	assert.False(t, ok)
}

func TestGenerate_BuildsPendingRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.engine.SetOnline(ctx, true)

	req, ok := f.engine.Generate(ctx)

	require.True(t, ok)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Equal(t, "garage-1", req.ListingID)
	assert.Equal(t, "A", req.DriverID)
	assert.Equal(t, time.Date(2026, 10, 19, 10, 15, 0, 0, time.UTC), req.StartTime)
	assert.Equal(t, time.Date(2026, 10, 19, 11, 15, 0, 0, time.UTC), req.EndTime)
	assert.Equal(t, 6.00, req.GrossPrice)
	assert.Contains(t, f.replicator.published, domain.KeyHostRequests)
}

func TestGenerate_NeverDuplicatesLiveDriver(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.engine.SetOnline(ctx, true)

	first, ok := f.engine.Generate(ctx)
	require.True(t, ok)
	require.Equal(t, "A", first.DriverID)

	second, ok := f.engine.Generate(ctx)
	require.True(t, ok)
	assert.Equal(t, "B", second.DriverID)

	_, ok = f.engine.Generate(ctx)
	assert.False(t, ok, "every driver already holds a live request")
	assert.Len(t, f.engine.Requests(), 2)
}

func TestGenerate_InvariantUnderRandomWorkload(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	f := newFixture(t, cfg, rand.New(rand.NewSource(42)))
	f.directory.listings = append(f.directory.listings,
		domain.Listing{ID: "garage-2", PricePerHour: 4, IsActive: true})
	f.directory.drivers = append(f.directory.drivers, domain.Driver{ID: "C"})
	f.engine.SetOnline(ctx, true)

	actions := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		f.engine.Generate(ctx)

		queue := f.engine.Requests()
		if len(queue) > 0 {
			target := queue[actions.Intn(len(queue))]
			switch actions.Intn(3) {
			case 0:
				f.engine.Accept(ctx, target.ID)
			case 1:
				f.engine.Reject(ctx, target.ID)
			}
		}
		history := f.engine.History()
		if len(history) > 0 {
			f.engine.Recover(ctx, history[actions.Intn(len(history))].ID)
		}

		f.clock.Advance(20 * time.Minute)
		f.engine.Sweep(ctx)

		assertNoDuplicateLiveDrivers(t, f.engine.Requests())
	}
}

func TestGenerate_DurationWithinBounds(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	f := newFixture(t, cfg, rand.New(rand.NewSource(1)))
	f.engine.SetOnline(ctx, true)

	for i := 0; i < 50; i++ {
		req, ok := f.engine.Generate(ctx)
		if ok {
			assert.GreaterOrEqual(t, req.DurationHours, cfg.MinDurationHours)
			assert.LessOrEqual(t, req.DurationHours, cfg.MaxDurationHours)
			assert.Equal(t, domain.RoundMoney(6*float64(req.DurationHours)), req.GrossPrice)
			assert.False(t, req.StartTime.Before(f.clock.Now()))
			f.engine.Reject(ctx, req.ID)
		}
	}
}

func TestAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.engine.SetOnline(ctx, true)

	req, ok := f.engine.Generate(ctx)
	require.True(t, ok)

	accepted, ok := f.engine.Accept(ctx, req.ID)
	require.True(t, ok)
	assert.Equal(t, domain.RequestInProgress, accepted.Status)
	assert.Equal(t, 1, f.engine.ActiveReservations())

	require.Len(t, f.earnings.requests, 1)
	assert.Equal(t, req.ID, f.earnings.requests[0].ID)

	require.Len(t, f.chat.requests, 1)
	assert.Equal(t, "A", f.chat.requests[0].DriverID)
	assert.Equal(t, req.ID, f.chat.requests[0].RequestID)

	// повторное принятие ничего не меняет
	_, ok = f.engine.Accept(ctx, req.ID)
	assert.False(t, ok)
	assert.Len(t, f.earnings.requests, 1)
	assert.Equal(t, 1, f.engine.ActiveReservations())
}

func TestAccept_RecordsCommission(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	ledger := earnings.NewService(f.store, noMetrics, logger.NewNop())
	f.engine.earnings = ledger
	f.engine.SetOnline(ctx, true)

	req, ok := f.engine.Generate(ctx)
	require.True(t, ok)
	require.Equal(t, 6.00, req.GrossPrice)

	_, ok = f.engine.Accept(ctx, req.ID)
	require.True(t, ok)

	txs := ledger.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, domain.TransactionEarning, txs[0].Kind)
	assert.Equal(t, 6.00, *txs[0].GrossAmount)
	assert.Equal(t, 0.60, *txs[0].Commission)
	assert.Equal(t, 5.40, txs[0].NetAmount)
}

func TestWrongStateIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.engine.SetOnline(ctx, true)

	_, ok := f.engine.Accept(ctx, "missing")
	assert.False(t, ok)
	_, ok = f.engine.Reject(ctx, "missing")
	assert.False(t, ok)
	_, ok = f.engine.Recover(ctx, "missing")
	assert.False(t, ok)

	req, _ := f.engine.Generate(ctx)
	_, ok = f.engine.Accept(ctx, req.ID)
	require.True(t, ok)

	_, ok = f.engine.Reject(ctx, req.ID)
	assert.False(t, ok)
	_, ok = f.engine.Recover(ctx, req.ID)
	assert.False(t, ok)
}

func TestRejectAndRecoverWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.engine.SetOnline(ctx, true)

	first, _ := f.engine.Generate(ctx)
	second, _ := f.engine.Generate(ctx)

	rejected, ok := f.engine.Reject(ctx, first.ID)
	require.True(t, ok)
	assert.Equal(t, domain.RequestRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	_, ok = f.engine.Reject(ctx, second.ID)
	require.True(t, ok)

	assert.Empty(t, f.engine.Requests())
	assert.Len(t, f.engine.History(), 2)

	f.clock.Advance(59900 * time.Millisecond)
	restored, ok := f.engine.Recover(ctx, first.ID)
	require.True(t, ok)
	assert.Equal(t, domain.RequestPending, restored.Status)
	assert.Nil(t, restored.RejectedAt)

	f.clock.Advance(200 * time.Millisecond)
	_, ok = f.engine.Recover(ctx, second.ID)
	assert.False(t, ok)

	assert.Len(t, f.engine.Requests(), 1)
	assert.Len(t, f.engine.History(), 1)
}

func TestRecover_RefusesDuplicateLiveDriver(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.directory.drivers = f.directory.drivers[:1]
	f.engine.SetOnline(ctx, true)

	first, ok := f.engine.Generate(ctx)
	require.True(t, ok)
	_, ok = f.engine.Reject(ctx, first.ID)
	require.True(t, ok)

	again, ok := f.engine.Generate(ctx)
	require.True(t, ok)
	require.Equal(t, first.DriverID, again.DriverID)

	_, ok = f.engine.Recover(ctx, first.ID)
	assert.False(t, ok)
	assertNoDuplicateLiveDrivers(t, f.engine.Requests())
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.engine.SetOnline(ctx, true)

	toAccept, _ := f.engine.Generate(ctx)
	toReject, _ := f.engine.Generate(ctx)
	_, ok := f.engine.Accept(ctx, toAccept.ID)
	require.True(t, ok)
	_, ok = f.engine.Reject(ctx, toReject.ID)
	require.True(t, ok)

	f.clock.Advance(30 * time.Second)
	assert.Equal(t, SweepResult{}, f.engine.Sweep(ctx))

	f.clock.Advance(31 * time.Second)
	assert.Equal(t, SweepResult{Purged: 1}, f.engine.Sweep(ctx))
	assert.Empty(t, f.engine.History())

	// заявка заканчивается в 11:15
	f.clock.Advance(2 * time.Hour)
	assert.Equal(t, SweepResult{Completed: 1}, f.engine.Sweep(ctx))
	assert.Equal(t, 0, f.engine.ActiveReservations())

	queue := f.engine.Requests()
	require.Len(t, queue, 1)
	assert.Equal(t, domain.RequestCompleted, queue[0].Status)

	assert.Equal(t, SweepResult{}, f.engine.Sweep(ctx))
	assert.Equal(t, 0, f.engine.ActiveReservations())
}

func TestStartStop(t *testing.T) {
	ctx := context.Background()
	cfg := oneHourConfig()
	f := newFixture(t, cfg, firstRandom{})
	f.engine.SetOnline(ctx, true)
	manual := scheduler.NewManual()

	require.NoError(t, f.engine.Start(manual))
	assert.ErrorIs(t, f.engine.Start(manual), ErrAlreadyStarted)
	assert.Equal(t, 2, manual.Pending())

	manual.Advance(cfg.GenerateInterval)
	assert.Len(t, f.engine.Requests(), 1)

	f.engine.Stop()
	assert.Equal(t, 0, manual.Pending())

	manual.Advance(10 * cfg.GenerateInterval)
	assert.Len(t, f.engine.Requests(), 1)

	// остановленный движок не меняет состояние
	_, ok := f.engine.Generate(ctx)
	assert.False(t, ok)
	_, ok = f.engine.Accept(ctx, f.engine.Requests()[0].ID)
	assert.False(t, ok)
	assert.ErrorIs(t, f.engine.Start(manual), ErrDisposed)
}

func TestLoad_RestoresState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	f.engine.SetOnline(ctx, true)

	req, _ := f.engine.Generate(ctx)
	_, ok := f.engine.Accept(ctx, req.ID)
	require.True(t, ok)
	other, _ := f.engine.Generate(ctx)
	_, ok = f.engine.Reject(ctx, other.ID)
	require.True(t, ok)

	// очередь и статус сохраняет синхронизатор; эмулируем это напрямую
	_, err := documents.SaveJSON(ctx, f.store, domain.KeyHostRequests, f.engine.Requests())
	require.NoError(t, err)
	_, err = documents.SaveJSON(ctx, f.store, domain.KeyHostOnline, true)
	require.NoError(t, err)

	restored, err := NewEngine(oneHourConfig(), Dependencies{Store: f.store, Logger: logger.NewNop()})
	require.NoError(t, err)
	restored.Load(ctx)

	assert.True(t, restored.Online())
	assert.Equal(t, 1, restored.ActiveReservations())
	assert.Len(t, restored.Requests(), 1)
	assert.Len(t, restored.History(), 1)
	assert.Len(t, restored.AllRequests(), 2)
}

func TestLoad_CorruptedDocumentsFallBack(t *testing.T) {
	ctx := context.Background()
	store := documents.NewMemoryStore()
	require.NoError(t, store.Save(ctx, domain.KeyHostRequests, []byte("{broken")))
	require.NoError(t, store.Save(ctx, domain.KeyHostOnline, []byte("maybe")))

	engine, err := NewEngine(oneHourConfig(), Dependencies{Store: store, Logger: logger.NewNop()})
	require.NoError(t, err)
	engine.Load(ctx)

	assert.False(t, engine.Online())
	assert.Empty(t, engine.Requests())
}

func TestLoad_WrongTypesFallBack(t *testing.T) {
	ctx := context.Background()
	store := documents.NewMemoryStore()
	queue := `[{"id":"a","listingId":"garage-1","driverId":"A","status":"pending"},{"id":7}]`
	require.NoError(t, store.Save(ctx, domain.KeyHostRequests, []byte(queue)))
	require.NoError(t, store.Save(ctx, domain.KeyRequestHistory, []byte(`[{"id":"b","status":"rejected"},{"status":false}]`)))
	require.NoError(t, store.Save(ctx, domain.KeyHostOnline, []byte(`"yes"`)))
	require.NoError(t, store.Save(ctx, domain.KeyActiveReservations, []byte(`"3"`)))

	engine, err := NewEngine(oneHourConfig(), Dependencies{Store: store, Logger: logger.NewNop()})
	require.NoError(t, err)
	engine.Load(ctx)

	assert.Empty(t, engine.Requests())
	assert.Empty(t, engine.History())
	assert.False(t, engine.Online())
	assert.Equal(t, 0, engine.ActiveReservations())
}

func TestPublish_KeepsSnapshotOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})
	replicator := newGatedReplicator(f.store)
	f.engine.replicator = replicator
	f.engine.SetOnline(ctx, true)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok := f.engine.Generate(ctx)
		assert.True(t, ok)
	}()

	// снимок генератора застрял в транспорте
	<-replicator.entered
	pending := f.engine.Requests()
	require.Len(t, pending, 1)
	req := pending[0]

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok := f.engine.Accept(ctx, req.ID)
		assert.True(t, ok)
	}()
	require.Eventually(t, func() bool {
		queue := f.engine.Requests()
		return len(queue) == 1 && queue[0].Status == domain.RequestInProgress
	}, time.Second, 5*time.Millisecond)

	close(replicator.gate)
	wg.Wait()

	var stored []domain.HostRequest
	require.True(t, documents.LoadJSON(ctx, f.store, domain.KeyHostRequests, &stored, logger.NewNop()))
	require.Len(t, stored, 1)
	assert.Equal(t, domain.RequestInProgress, stored[0].Status)
}

func TestPublish_SkipsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, oneHourConfig(), firstRandom{})

	f.engine.publish(ctx, domain.KeyHostRequests, 2, []domain.HostRequest{})
	f.engine.publish(ctx, domain.KeyHostRequests, 1, []domain.HostRequest{})
	f.engine.publish(ctx, domain.KeyHostOnline, 1, true)
	f.engine.publish(ctx, domain.KeyHostRequests, 3, []domain.HostRequest{})

	assert.Equal(t, []string{domain.KeyHostRequests, domain.KeyHostOnline, domain.KeyHostRequests}, f.replicator.published)
}

func TestTwoContextsConverge(t *testing.T) {
	ctx := context.Background()
	store := documents.NewMemoryStore()
	bus := broadcast.NewMemoryBus()

	newContext := func(id string) (*Engine, *recordingNotifier) {
		synchronizer := replication.NewSynchronizer(id, store, bus, noMetrics, logger.NewNop())
		notifier := &recordingNotifier{}
		directory := defaultDirectory()

		engine, err := NewEngine(oneHourConfig(), Dependencies{
			Listings:   directory,
			Drivers:    directory,
			Earnings:   &recordingEarnings{},
			Chat:       &recordingChat{},
			Notifier:   notifier,
			Replicator: synchronizer,
			Store:      store,
			Metrics:    noMetrics,
			Logger:     logger.NewNop(),
			Random:     firstRandom{},
		})
		require.NoError(t, err)

		synchronizer.Register(domain.KeyHostRequests, engine.ApplyRequestsSnapshot)
		synchronizer.Register(domain.KeyHostOnline, engine.ApplyOnlineSnapshot)
		require.NoError(t, synchronizer.Start(ctx))
		t.Cleanup(func() { _ = synchronizer.Stop() })
		return engine, notifier
	}

	hostTab, hostNotifier := newContext("host-tab")
	driverTab, driverNotifier := newContext("driver-tab")

	require.True(t, driverTab.SetOnline(ctx, true))
	assert.True(t, hostTab.Online())

	req, ok := driverTab.Generate(ctx)
	require.True(t, ok)

	queue := hostTab.Requests()
	require.Len(t, queue, 1)
	assert.Equal(t, req.ID, queue[0].ID)
	require.Len(t, hostNotifier.notifications, 1)
	assert.Empty(t, driverNotifier.notifications)

	_, ok = hostTab.Accept(ctx, req.ID)
	require.True(t, ok)
	assert.Equal(t, domain.RequestInProgress, driverTab.Requests()[0].Status)
	assert.Len(t, hostNotifier.notifications, 1)

	// счётчик бронирований не реплицируется
	assert.Equal(t, 1, hostTab.ActiveReservations())
	assert.Equal(t, 0, driverTab.ActiveReservations())
}
