package chatservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func TestClient_Open(t *testing.T) {
	var sent sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/conversations":
			var body createConversationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "req-1", body.RequestID)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"conv-1"}`))
		case "/internal/conversations/conv-1/messages":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			w.WriteHeader(http.StatusCreated)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())

	id, err := Open(context.Background(), client, domain.ConversationRequest{
		RequestID: "req-1",
		DriverID:  "A",
		ListingID: "garage-1",
		AuthorID:  "host",
		Text:      "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv-1", id)
	assert.Equal(t, "hello", sent.Text)
	assert.Equal(t, "host", sent.Author)

	err = client.SendInitialMessage(context.Background(), "unknown", "hi", "host")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}
