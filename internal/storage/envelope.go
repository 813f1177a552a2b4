package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

// SchemaVersion tags every persisted envelope.
const SchemaVersion = "1.0.0"

// Envelope is the versioned wrapper persisted around each collection.
type Envelope struct {
	Version   string          `json:"version"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

func wrapEnvelope(data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	out, err := json.Marshal(Envelope{
		Version:   SchemaVersion,
		Data:      payload,
		Timestamp: time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return out, nil
}

// unwrapEnvelope returns the payload inside an envelope. Payloads written
// before the envelope format existed are bare arrays or objects; those come
// back unchanged.
func unwrapEnvelope(raw []byte) json.RawMessage {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}
