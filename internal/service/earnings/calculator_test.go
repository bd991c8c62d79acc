package earnings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestNewEarning(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	req := domain.HostRequest{ID: "req-1", ListingID: "garage-1", GrossPrice: 6.00}

	tx := NewEarning("tx-1", req, at)

	require.NotNil(t, tx.GrossAmount)
	require.NotNil(t, tx.Commission)
	assert.Equal(t, domain.TransactionEarning, tx.Kind)
	assert.Equal(t, 6.00, *tx.GrossAmount)
	assert.Equal(t, 0.60, *tx.Commission)
	assert.Equal(t, 5.40, tx.NetAmount)
	assert.Equal(t, "garage-1", *tx.ListingID)
	assert.Equal(t, "req-1", *tx.RequestID)
}

func TestCommission_RoundsToCents(t *testing.T) {
	tests := []struct {
		gross      float64
		commission float64
		net        float64
	}{
		{gross: 6.00, commission: 0.60, net: 5.40},
		{gross: 12.5, commission: 1.25, net: 11.25},
		{gross: 0, commission: 0, net: 0},
		{gross: 7.5, commission: 0.75, net: 6.75},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.commission, Commission(tt.gross))
		assert.Equal(t, tt.net, NetAmount(tt.gross))
	}
}

func TestBalance(t *testing.T) {
	txs := []domain.Transaction{
		NewEarning("1", domain.HostRequest{GrossPrice: 6}, time.Time{}),
		NewEarning("2", domain.HostRequest{GrossPrice: 10}, time.Time{}),
		NewPayout("3", 4.4, time.Time{}),
	}

	assert.Equal(t, 10.0, Balance(txs))
	assert.Equal(t, 0.0, Balance(nil))
}

func TestComputeDailyStats(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	today := now.Add(-2 * time.Hour)
	yesterday := now.Add(-26 * time.Hour)

	requests := []domain.HostRequest{
		{ID: "1", StartTime: today, GrossPrice: 6, Status: domain.RequestInProgress},
		{ID: "2", StartTime: today, GrossPrice: 10, Status: domain.RequestCompleted},
		{ID: "3", StartTime: today, GrossPrice: 8, Status: domain.RequestPending},
		{ID: "4", StartTime: today, GrossPrice: 8, Status: domain.RequestRejected},
		{ID: "5", StartTime: yesterday, GrossPrice: 100, Status: domain.RequestCompleted},
	}

	stats := ComputeDailyStats(requests, now)

	assert.Equal(t, 4, stats.RequestsToday)
	assert.Equal(t, 2, stats.AcceptedToday)
	assert.Equal(t, 14.4, stats.EarningsToday)
	assert.Equal(t, 50, stats.AcceptanceRate)
}

func TestComputeDailyStats_Empty(t *testing.T) {
	stats := ComputeDailyStats(nil, time.Now())
	assert.Equal(t, DailyStats{}, stats)
}
