package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// SerializationVersion is bumped on incompatible GameState layout changes.
const SerializationVersion = "1.0.0"

// Snapshot wraps a full game state for storage or hand-off between servers.
// It always contains private information and must never be sent to a client;
// clients get RedactedView output instead.
type Snapshot struct {
	State     *GameState `json:"state"`
	Timestamp int64      `json:"timestamp"`
	Version   string     `json:"version"`
}

// Serialize encodes the state as a versioned JSON snapshot.
func Serialize(s *GameState) ([]byte, error) {
	snap := Snapshot{
		State:     s,
		Timestamp: time.Now().UnixMilli(),
		Version:   SerializationVersion,
	}
	return json.Marshal(snap)
}

// Deserialize decodes a snapshot produced by Serialize.
func Deserialize(data []byte) (*GameState, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.Version != SerializationVersion {
		return nil, fmt.Errorf("snapshot version mismatch: expected %s, got %s", SerializationVersion, snap.Version)
	}
	if snap.State == nil {
		return nil, fmt.Errorf("snapshot has no state")
	}
	return snap.State, nil
}
