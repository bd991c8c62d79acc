package get_host_dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeEngine struct {
	online   bool
	active   int
	requests []domain.HostRequest
}

func (f *fakeEngine) Online() bool                      { return f.online }
func (f *fakeEngine) ActiveReservations() int           { return f.active }
func (f *fakeEngine) AllRequests() []domain.HostRequest { return f.requests }

type fakeLedger struct {
	balance      float64
	transactions []domain.Transaction
}

func (f *fakeLedger) Balance() float64                   { return f.balance }
func (f *fakeLedger) Transactions() []domain.Transaction { return f.transactions }

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

func TestExecute(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	engine := &fakeEngine{
		online: true,
		active: 1,
		requests: []domain.HostRequest{
			{ID: "1", StartTime: now, GrossPrice: 6, Status: domain.RequestInProgress},
			{ID: "2", StartTime: now, GrossPrice: 4, Status: domain.RequestPending},
			{ID: "3", StartTime: now, GrossPrice: 4, Status: domain.RequestRejected},
		},
	}
	ledger := &fakeLedger{balance: 5.4}
	for i := 0; i < 15; i++ {
		ledger.transactions = append(ledger.transactions, domain.Transaction{ID: string(rune('a' + i))})
	}

	uc := NewUseCase(engine, ledger, logger.NewNop())
	uc.timeProvider = &fixedTime{now: now}

	resp := uc.Execute(&Request{})

	assert.True(t, resp.Online)
	assert.Equal(t, 3, resp.Stats.RequestsToday)
	assert.Equal(t, 1, resp.Stats.AcceptedToday)
	assert.Equal(t, 5.4, resp.Stats.EarningsToday)
	assert.Equal(t, 33, resp.Stats.AcceptanceRate)
	assert.Equal(t, 1, resp.PendingRequests)
	assert.Equal(t, 1, resp.ActiveReservations)
	assert.Equal(t, 5.4, resp.Balance)
	assert.Len(t, resp.Transactions, DefaultTransactionsLimit)

	resp = uc.Execute(&Request{TransactionsLimit: 3})
	assert.Len(t, resp.Transactions, 3)
}
