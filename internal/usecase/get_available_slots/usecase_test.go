package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/listingservice"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*UseCase, *availability.Service) {
	t.Helper()

	cat, err := catalog.New("06:00", "23:00", 60)
	require.NoError(t, err)

	var m *metrics.Metrics
	ledger := availability.NewService(cat, documents.NewMemoryStore(), m, logger.NewNop())
	directory := listingservice.NewStatic([]domain.Listing{
		{ID: "garage-1", Name: "Garage", PricePerHour: 3.5, CapacityTotal: 5, IsActive: true},
	}, nil)

	uc := NewUseCase(directory, cat, ledger, logger.NewNop())
	uc.timeProvider = &fixedTime{now: today.Add(8*time.Hour + 30*time.Minute)}
	return uc, ledger
}

func TestExecute_Grid(t *testing.T) {
	uc, ledger := setup(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today})
	require.NoError(t, err)
	require.NoError(t, ledger.Reserve(ctx, "garage-1", []domain.SlotKey{"09:00-10:00"}))

	resp, err = uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 17)
	assert.Equal(t, 5, resp.CapacityTotal)
	assert.Equal(t, 4, resp.FreeCount)

	byKey := make(map[domain.SlotKey]Slot, len(resp.Slots))
	for _, s := range resp.Slots {
		byKey[s.Key] = s
	}
	assert.True(t, byKey["06:00-07:00"].Past)
	assert.True(t, byKey["08:00-09:00"].Past)
	assert.True(t, byKey["09:00-10:00"].Blocked)
	assert.False(t, byKey["09:00-10:00"].Available())
	assert.True(t, byKey["10:00-11:00"].Available())
}

func TestExecute_FutureDateHasNoPastSlots(t *testing.T) {
	uc, _ := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{ListingID: "garage-1", Date: today.AddDate(0, 0, 1)})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.False(t, s.Past, s.Key)
	}
}

func TestExecute_Errors(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ListingID: "missing", Date: today})
	assert.ErrorIs(t, err, ErrListingNotFound)

	_, err = uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(ctx, &Request{Date: today})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
