package earnings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

func newTestService(store DocumentStore) *Service {
	var m *metrics.Metrics
	svc := NewService(store, m, logger.NewNop())
	svc.timeProvider = &fixedTime{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	return svc
}

func TestRecordEarningAndPayout(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(documents.NewMemoryStore())

	tx, err := svc.RecordEarning(ctx, domain.HostRequest{ID: "req-1", ListingID: "garage-1", GrossPrice: 6})
	require.NoError(t, err)
	assert.Equal(t, 5.40, tx.NetAmount)
	assert.Equal(t, 5.40, svc.Balance())

	payout, err := svc.RequestPayout(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionPayout, payout.Kind)
	assert.Equal(t, -5.0, payout.NetAmount)
	assert.Equal(t, 0.40, svc.Balance())

	txs := svc.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, payout.ID, txs[0].ID)
}

func TestRequestPayout_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(documents.NewMemoryStore())

	_, err := svc.RequestPayout(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RequestPayout(ctx, -3)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.RequestPayout(ctx, 1)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Empty(t, svc.Transactions())
}

func TestLoad_RestoresLedger(t *testing.T) {
	ctx := context.Background()
	store := documents.NewMemoryStore()

	first := newTestService(store)
	_, err := first.RecordEarning(ctx, domain.HostRequest{ID: "req-1", GrossPrice: 10})
	require.NoError(t, err)

	second := newTestService(store)
	second.Load(ctx)

	assert.Equal(t, 9.0, second.Balance())
	assert.Len(t, second.Transactions(), 1)
}
