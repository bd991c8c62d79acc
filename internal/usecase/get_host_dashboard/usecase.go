package get_host_dashboard

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/earnings"
)

// UseCase use case получения панели хоста
// Статистика пересчитывается на каждый запрос и не кешируется
type UseCase struct {
	engine       RequestEngine
	ledger       EarningsLedger
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine RequestEngine, ledger EarningsLedger, logger Logger) *UseCase {
	return &UseCase{
		engine:       engine,
		ledger:       ledger,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute собирает сводку
func (uc *UseCase) Execute(req *Request) *Response {
	limit := req.TransactionsLimit
	if limit <= 0 {
		limit = DefaultTransactionsLimit
	}

	// 1. Статистика за сегодня по очереди и истории
	all := uc.engine.AllRequests()
	stats := earnings.ComputeDailyStats(all, uc.timeProvider.Now())

	pending := 0
	for _, r := range all {
		if r.Status == domain.RequestPending {
			pending++
		}
	}

	// 2. Последние транзакции
	transactions := uc.ledger.Transactions()
	if len(transactions) > limit {
		transactions = transactions[:limit]
	}

	uc.logger.Info("GetHostDashboard: requestsToday=%d, acceptedToday=%d, pending=%d",
		stats.RequestsToday, stats.AcceptedToday, pending)

	return &Response{
		Online:             uc.engine.Online(),
		Stats:              stats,
		Balance:            uc.ledger.Balance(),
		ActiveReservations: uc.engine.ActiveReservations(),
		PendingRequests:    pending,
		Transactions:       transactions,
	}
}
