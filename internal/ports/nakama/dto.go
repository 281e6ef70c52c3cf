package nakama

import (
	"github.com/dianbrown/SpellStack/internal/app"
	"github.com/dianbrown/SpellStack/internal/domain"
)

// Wire payloads are plain JSON keyed by op code.

// StartGameRequest optionally overrides the configured rule settings.
type StartGameRequest struct {
	Settings *domain.Settings `json:"settings,omitempty"`
}

// SubmitMoveRequest carries one move proposal from a client.
type SubmitMoveRequest struct {
	Move domain.Move `json:"move"`
}

// ErrorMessage is sent only to the client whose submission was rejected.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SeatInfo is the lobby/table view of one occupied seat.
type SeatInfo struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
}

// MatchStateSnapshot is broadcast whenever seating changes.
type MatchStateSnapshot struct {
	Seats     []string   `json:"seats"`
	OwnerSeat int        `json:"owner_seat"`
	Tick      int64      `json:"tick"`
	Players   []SeatInfo `json:"players"`
}

// GameEventMessage wraps an app event for broadcast.
type GameEventMessage struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload"`
}

// Label is the match label advertised for quick-match queries.
type Label struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	State string `json:"state"`
}
