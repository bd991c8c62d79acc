// Package earnings keeps the host transaction ledger and derives commission, balance and daily stats.
package earnings

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
)

// Service журнал транзакций хоста
// Транзакции только добавляются и никогда не изменяются
type Service struct {
	mu           sync.Mutex
	transactions []domain.Transaction

	store        DocumentStore
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает пустой журнал
func NewService(store DocumentStore, metrics Metrics, logger Logger) *Service {
	return &Service{
		transactions: make([]domain.Transaction, 0),
		store:        store,
		metrics:      metrics,
		logger:       logger,
		timeProvider: &RealTimeProvider{},
	}
}

// Load восстанавливает журнал из хранилища
func (s *Service) Load(ctx context.Context) {
	var stored []domain.Transaction
	if !documents.LoadJSON(ctx, s.store, domain.KeyTransactions, &stored, s.logger) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = stored
	s.metrics.SetHostBalance(Balance(s.transactions))
	s.logger.Info("Load: restored %d transactions", len(s.transactions))
}

// RecordEarning добавляет начисление по принятой заявке
func (s *Service) RecordEarning(ctx context.Context, req domain.HostRequest) (domain.Transaction, error) {
	if req.GrossPrice < 0 {
		return domain.Transaction{}, fmt.Errorf("%w: request id=%s has negative price", ErrInvalidRequest, req.ID)
	}

	tx := NewEarning(uuid.NewString(), req, s.timeProvider.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLocked(ctx, tx)
	s.logger.Info("RecordEarning: request=%s, gross=%.2f, commission=%.2f, net=%.2f",
		req.ID, *tx.GrossAmount, *tx.Commission, tx.NetAmount)

	return tx, nil
}

// RequestPayout списывает сумму с баланса
func (s *Service) RequestPayout(ctx context.Context, amount float64) (domain.Transaction, error) {
	amount = domain.RoundMoney(amount)
	if amount <= 0 {
		return domain.Transaction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance := Balance(s.transactions)
	if amount > balance {
		s.logger.Warn("RequestPayout: amount=%.2f exceeds balance=%.2f", amount, balance)
		return domain.Transaction{}, fmt.Errorf("%w: amount=%.2f, balance=%.2f", ErrInsufficientBalance, amount, balance)
	}

	tx := NewPayout(uuid.NewString(), amount, s.timeProvider.Now())
	s.appendLocked(ctx, tx)
	s.logger.Info("RequestPayout: amount=%.2f", amount)

	return tx, nil
}

// Transactions возвращает копию журнала, новые записи первыми
func (s *Service) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Transaction, len(s.transactions))
	for i, tx := range s.transactions {
		out[len(out)-1-i] = tx
	}
	return out
}

// Balance возвращает текущий баланс
func (s *Service) Balance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Balance(s.transactions)
}

func (s *Service) appendLocked(ctx context.Context, tx domain.Transaction) {
	s.transactions = append(s.transactions, tx)

	balance := Balance(s.transactions)
	s.metrics.IncTransaction(string(tx.Kind))
	s.metrics.SetHostBalance(balance)

	if _, err := documents.SaveJSON(ctx, s.store, domain.KeyTransactions, s.transactions); err != nil {
		s.logger.Error("persist: failed to save transactions: %v", err)
	}
}
