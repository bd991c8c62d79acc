package domain

import (
	"encoding/json"
	"time"
)

// Snapshot whole-value replication envelope of one shared document
// Origin identifies the execution context that produced it
type Snapshot struct {
	Key         string          `json:"key"`
	Origin      string          `json:"origin"`
	Payload     json.RawMessage `json:"payload"`
	PublishedAt time.Time       `json:"publishedAt"`
}
