// Package requests implements the host-side lifecycle of inbound booking requests.
//
//	pending --accept--> in-progress --(end time reached)--> completed
//	pending --reject--> rejected --recover (<= 60s)--> pending
//	rejected --(> 60s)--> purged
//
// Operations on a missing request or a request in the wrong state are no-ops.
package requests

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
	"github.com/m04kA/SMC-ParkingService/pkg/scheduler"
)

// Engine движок заявок одного контекста исполнения
type Engine struct {
	mu                 sync.Mutex
	requests           []domain.HostRequest
	history            []domain.HostRequest
	online             bool
	activeReservations int
	disposed           bool
	tickets            []scheduler.Ticket
	seq                uint64

	// publishMu упорядочивает отправку снимков; published хранит номер последнего отправленного снимка по ключу
	publishMu sync.Mutex
	published map[string]uint64

	cfg          Config
	listings     ListingDirectory
	drivers      DriverPool
	earnings     EarningsRecorder
	chat         ChatDispatcher
	notifier     Notifier
	replicator   Replicator
	store        DocumentStore
	metrics      Metrics
	logger       Logger
	random       RandomSource
	timeProvider TimeProvider
}

// NewEngine создает движок заявок
func NewEngine(cfg Config, deps Dependencies) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: intervals and durations must be positive, min <= max", err)
	}

	return &Engine{
		requests:     make([]domain.HostRequest, 0),
		history:      make([]domain.HostRequest, 0),
		published:    make(map[string]uint64),
		cfg:          cfg,
		listings:     deps.Listings,
		drivers:      deps.Drivers,
		earnings:     deps.Earnings,
		chat:         deps.Chat,
		notifier:     deps.Notifier,
		replicator:   deps.Replicator,
		store:        deps.Store,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		random:       deps.Random,
		timeProvider: &RealTimeProvider{},
	}, nil
}

// Load восстанавливает состояние из хранилища
// Отсутствующие или повреждённые документы оставляют значения по умолчанию
func (e *Engine) Load(ctx context.Context) {
	var (
		queue   []domain.HostRequest
		history []domain.HostRequest
		online  bool
		active  int
	)

	// Частично декодированный документ отбрасывается целиком
	queueOK := documents.LoadJSON(ctx, e.store, domain.KeyHostRequests, &queue, e.logger)
	historyOK := documents.LoadJSON(ctx, e.store, domain.KeyRequestHistory, &history, e.logger)
	onlineOK := documents.LoadJSON(ctx, e.store, domain.KeyHostOnline, &online, e.logger)
	activeOK := documents.LoadJSON(ctx, e.store, domain.KeyActiveReservations, &active, e.logger)

	e.mu.Lock()
	defer e.mu.Unlock()

	if queueOK && queue != nil {
		e.requests = queue
	}
	if historyOK && history != nil {
		e.history = history
	}
	if onlineOK {
		e.online = online
	}
	if activeOK && active > 0 {
		e.activeReservations = active
	}

	e.logger.Info("Load: requests=%d, history=%d, online=%t, activeReservations=%d",
		len(e.requests), len(e.history), e.online, e.activeReservations)
}

// Start запускает генератор заявок и периодическую очистку
func (e *Engine) Start(s scheduler.Scheduler) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return ErrDisposed
	}
	if len(e.tickets) > 0 {
		return ErrAlreadyStarted
	}

	generator, err := s.Every(e.cfg.GenerateInterval, func() {
		e.Generate(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule generator: %w", err)
	}

	sweeper, err := s.Every(e.cfg.SweepInterval, func() {
		e.Sweep(context.Background())
	})
	if err != nil {
		generator.Cancel()
		return fmt.Errorf("schedule sweep: %w", err)
	}

	e.tickets = []scheduler.Ticket{generator, sweeper}
	e.logger.Info("Start: generate every %s, sweep every %s", e.cfg.GenerateInterval, e.cfg.SweepInterval)
	return nil
}

// Stop отменяет все таймеры и помечает движок остановленным
// После Stop никакая операция не меняет состояние
func (e *Engine) Stop() {
	e.mu.Lock()
	tickets := e.tickets
	e.tickets = nil
	e.disposed = true
	e.mu.Unlock()

	for _, ticket := range tickets {
		ticket.Cancel()
	}
	e.logger.Info("Stop: cancelled %d timers", len(tickets))
}

// Online возвращает статус хоста
func (e *Engine) Online() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.online
}

// ActiveReservations возвращает счётчик активных бронирований хоста
func (e *Engine) ActiveReservations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeReservations
}

// Requests возвращает копию живой очереди
func (e *Engine) Requests() []domain.HostRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneRequests(e.requests)
}

// History возвращает копию истории отклонённых заявок
func (e *Engine) History() []domain.HostRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneRequests(e.history)
}

// AllRequests возвращает очередь и историю вместе (для дневной статистики)
func (e *Engine) AllRequests() []domain.HostRequest {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := cloneRequests(e.requests)
	return append(out, cloneRequests(e.history)...)
}

func (e *Engine) indexLocked(list []domain.HostRequest, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// hasLiveDriverLocked проверяет, есть ли у водителя живая заявка на парковку
func (e *Engine) hasLiveDriverLocked(listingID, driverID string) bool {
	for i := range e.requests {
		req := &e.requests[i]
		if req.ListingID == listingID && req.DriverID == driverID && req.IsLive() {
			return true
		}
	}
	return false
}

func cloneRequests(list []domain.HostRequest) []domain.HostRequest {
	out := make([]domain.HostRequest, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}
