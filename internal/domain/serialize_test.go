package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	game, err := NewGame(testPlayers(3), "snapshot", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drawn := Card{ID: "x", Color: ColorBlue, Kind: KindNumber, Value: 4}
	game.LastDrawnCard = &drawn
	game.CanPlayDrawnCard = true

	data, err := Serialize(game)
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize failed: %v", err)
	}
	if !reflect.DeepEqual(game, restored) {
		t.Fatal("round trip changed the state")
	}
}

func TestDeserializeVersionMismatch(t *testing.T) {
	game, _ := NewGame(testPlayers(2), "ver", nil)
	data, err := Serialize(game)
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	snap.Version = "0.9.0"
	stale, _ := json.Marshal(snap)

	if _, err := Deserialize(stale); err == nil {
		t.Fatal("expected an error for a version mismatch")
	}
}

func TestDeserializeRejectsBadInput(t *testing.T) {
	if _, err := Deserialize([]byte("{not json")); err == nil {
		t.Fatal("expected an error for malformed input")
	}
	empty, _ := json.Marshal(Snapshot{Version: SerializationVersion})
	if _, err := Deserialize(empty); err == nil {
		t.Fatal("expected an error for a snapshot without state")
	}
}
