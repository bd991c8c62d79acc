package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

func newHourly(t *testing.T) *Catalog {
	t.Helper()
	c, err := New("06:00", "23:00", 60)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	c := newHourly(t)

	slots := c.Slots()
	require.Len(t, slots, 17)
	assert.Equal(t, domain.SlotKey("06:00-07:00"), slots[0].Key())
	assert.Equal(t, domain.SlotKey("22:00-23:00"), slots[16].Key())
}

func TestNew_DropsPartialTail(t *testing.T) {
	c, err := New("08:00", "10:30", 60)
	require.NoError(t, err)

	assert.Len(t, c.Slots(), 2)

	_, err = c.SlotsCoveringRange("08:00", "10:30")
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		start types.TimeString
		end   types.TimeString
		width int
	}{
		{name: "zero width", start: "06:00", end: "23:00", width: 0},
		{name: "reversed", start: "23:00", end: "06:00", width: 60},
		{name: "bad start", start: "6am", end: "23:00", width: 60},
		{name: "width larger than day", start: "06:00", end: "07:00", width: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.start, tt.end, tt.width)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSlotsCoveringRange(t *testing.T) {
	c := newHourly(t)

	tests := []struct {
		name    string
		start   types.TimeString
		end     types.TimeString
		want    []domain.SlotKey
		wantErr bool
	}{
		{
			name:  "two hours",
			start: "09:00",
			end:   "11:00",
			want:  []domain.SlotKey{"09:00-10:00", "10:00-11:00"},
		},
		{
			name:  "empty range",
			start: "09:00",
			end:   "09:00",
			want:  []domain.SlotKey{},
		},
		{
			name:  "whole day",
			start: "06:00",
			end:   "23:00",
			want:  c.KeysBetween("06:00-07:00", "22:00-23:00"),
		},
		{name: "misaligned start", start: "09:30", end: "11:00", wantErr: true},
		{name: "misaligned end", start: "09:00", end: "10:15", wantErr: true},
		{name: "end before start", start: "11:00", end: "09:00", wantErr: true},
		{name: "outside catalog", start: "04:00", end: "06:00", wantErr: true},
		{name: "garbage", start: "nine", end: "10:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.SlotsCoveringRange(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotsCoveringRange_MatchesContainment(t *testing.T) {
	c := newHourly(t)
	slots := c.Slots()

	for i := range slots {
		for j := i; j <= len(slots); j++ {
			start := slots[i].Start
			end := slots[len(slots)-1].End
			if j < len(slots) {
				end = slots[j].Start
			}

			got, err := c.SlotsCoveringRange(start, end)
			require.NoError(t, err)

			want := make([]domain.SlotKey, 0)
			for _, s := range slots {
				if s.Contains(start, end) {
					want = append(want, s.Key())
				}
			}
			assert.Equal(t, want, got, "%s-%s", start, end)
			assert.Equal(t, start == end, len(got) == 0)
		}
	}
}

func TestAdditionalSlots(t *testing.T) {
	c := newHourly(t)

	assert.Equal(t, []domain.SlotKey{"11:00-12:00"}, c.AdditionalSlots("10:00", "12:00"))
	assert.Equal(t, []domain.SlotKey{"11:00-12:00", "12:00-13:00"}, c.AdditionalSlots("10:00", "13:00"))
	assert.Empty(t, c.AdditionalSlots("12:00", "12:00"))
	assert.Empty(t, c.AdditionalSlots("12:00", "10:00"))
}

func TestPositionAndLookup(t *testing.T) {
	c := newHourly(t)

	assert.Equal(t, 3, c.Position("09:00-10:00"))
	assert.Equal(t, -1, c.Position("09:30-10:30"))
	assert.True(t, c.Contains("22:00-23:00"))
	assert.False(t, c.Contains("23:00-24:00"))

	slot, ok := c.Slot("10:00-11:00")
	require.True(t, ok)
	assert.Equal(t, types.TimeString("10:00"), slot.Start)

	assert.Equal(t, []domain.SlotKey{"09:00-10:00", "10:00-11:00"}, c.KeysBetween("09:00-10:00", "10:00-11:00"))
	assert.Empty(t, c.KeysBetween("10:00-11:00", "09:00-10:00"))
}
