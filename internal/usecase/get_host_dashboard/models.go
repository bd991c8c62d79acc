package get_host_dashboard

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/earnings"
)

// DefaultTransactionsLimit количество последних транзакций по умолчанию
const DefaultTransactionsLimit = 10

// Request модель запроса
type Request struct {
	TransactionsLimit int // 0 - значение по умолчанию
}

// Response сводка для панели хоста
type Response struct {
	Online             bool
	Stats              earnings.DailyStats
	Balance            float64
	ActiveReservations int
	PendingRequests    int
	Transactions       []domain.Transaction // Последние транзакции, новые первыми
}
