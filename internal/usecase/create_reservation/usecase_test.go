package create_reservation

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
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
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

func newUseCase(t *testing.T, capacity int) (*UseCase, *availability.Service) {
	t.Helper()

	cat, err := catalog.New("06:00", "23:00", 60)
	require.NoError(t, err)

	var m *metrics.Metrics
	store := documents.NewMemoryStore()
	ledger := availability.NewService(cat, store, m, logger.NewNop())
	manager := reservations.NewService(cat, ledger, store, m, logger.NewNop())
	directory := listingservice.NewStatic([]domain.Listing{
		{ID: "garage-1", Name: "Garage", PricePerHour: 3.5, CapacityTotal: capacity, IsActive: true},
		{ID: "closed", Name: "Closed", PricePerHour: 2, CapacityTotal: 1, IsActive: false},
	}, nil)

	uc := NewUseCase(directory, cat, ledger, manager, logger.NewNop())
	uc.timeProvider = &fixedTime{now: today.Add(8 * time.Hour)}
	return uc, ledger
}

func TestExecute_Success(t *testing.T) {
	uc, _ := newUseCase(t, 5)

	resp, err := uc.Execute(context.Background(), &Request{
		ListingID: "garage-1",
		Date:      today,
		StartTime: "09:00",
		EndTime:   "11:00",
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.SlotKey{"09:00-10:00", "10:00-11:00"}, resp.Slots)
	assert.Equal(t, 2.0, resp.Hours)
	assert.Equal(t, 7.0, resp.EstimatedPrice)
	assert.Equal(t, 4, resp.FreeCount)
	assert.Equal(t, "Garage", resp.ListingName)
	assert.Equal(t, domain.ReservationActive, resp.Reservation.State)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "missing listing id",
			req:     Request{Date: today, StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad time",
			req:     Request{ListingID: "garage-1", Date: today, StartTime: "9", EndTime: "10:00"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "reversed range",
			req:     Request{ListingID: "garage-1", Date: today, StartTime: "11:00", EndTime: "10:00"},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "misaligned range",
			req:     Request{ListingID: "garage-1", Date: today, StartTime: "09:30", EndTime: "10:00"},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name:    "past date",
			req:     Request{ListingID: "garage-1", Date: today.AddDate(0, 0, -1), StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown listing",
			req:     Request{ListingID: "missing", Date: today, StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrListingNotFound,
		},
		{
			name:    "inactive listing",
			req:     Request{ListingID: "closed", Date: today, StartTime: "09:00", EndTime: "10:00"},
			wantErr: ErrListingInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase(t, 5)
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_RejectsBlockedSlots(t *testing.T) {
	uc, _ := newUseCase(t, 5)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today, StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today, StartTime: "10:00", EndTime: "12:00"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today, StartTime: "11:00", EndTime: "12:00"})
	assert.NoError(t, err)
}

func TestExecute_NoFreeSpaces(t *testing.T) {
	uc, ledger := newUseCase(t, 1)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today, StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	entry, err := ledger.Entry("garage-1")
	require.NoError(t, err)
	require.Equal(t, 0, entry.FreeCount)

	_, err = uc.Execute(ctx, &Request{ListingID: "garage-1", Date: today, StartTime: "15:00", EndTime: "16:00"})
	assert.ErrorIs(t, err, ErrNoFreeSpaces)
}
