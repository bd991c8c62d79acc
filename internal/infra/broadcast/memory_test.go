package broadcast

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestMemoryBus_DeliversToAllSubscribers(t *testing.T) {
	ctx := context.Background()
	bus := NewMemoryBus()

	var first, second []domain.Snapshot
	subA, err := bus.Subscribe(ctx, func(s domain.Snapshot) { first = append(first, s) })
	require.NoError(t, err)
	_, err = bus.Subscribe(ctx, func(s domain.Snapshot) { second = append(second, s) })
	require.NoError(t, err)

	snapshot := domain.Snapshot{Key: domain.KeyHostOnline, Origin: "tab-1", Payload: json.RawMessage(`true`)}
	require.NoError(t, bus.Publish(ctx, snapshot))

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "tab-1", first[0].Origin)
	assert.JSONEq(t, `true`, string(second[0].Payload))

	require.NoError(t, subA.Close())
	require.NoError(t, subA.Close())
	assert.Equal(t, 1, bus.Subscribers())

	require.NoError(t, bus.Publish(ctx, snapshot))
	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestDecode(t *testing.T) {
	raw := []byte(`{"key":"isOnline","origin":"tab-2","payload":false,"publishedAt":"2026-10-19T12:00:00Z"}`)

	snapshot, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "isOnline", snapshot.Key)
	assert.Equal(t, "tab-2", snapshot.Origin)
	assert.JSONEq(t, `false`, string(snapshot.Payload))

	_, err = Decode([]byte(`{"origin":"tab-2"}`))
	assert.ErrorIs(t, err, ErrEncode)

	_, err = Decode([]byte(`nope`))
	assert.ErrorIs(t, err, ErrEncode)
}
