package app

import "github.com/dianbrown/SpellStack/internal/domain"

// EventKind identifies emitted app events for relay dispatch.
type EventKind string

const (
	EventGameStarted EventKind = "game_started"
	EventHandDealt   EventKind = "hand_dealt"
	EventCardPlayed  EventKind = "card_played"
	EventCardsDrawn  EventKind = "cards_drawn"
	EventTurnPassed  EventKind = "turn_passed"
	EventSpellCalled EventKind = "spell_called"
	EventRoundEnded  EventKind = "round_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player ids; empty means broadcast
}

type GameStartedPayload struct {
	GameID          string          `json:"game_id"`
	Players         []domain.Player `json:"players"`
	FirstTurnUserID string          `json:"first_turn_user_id"`
	TopCard         domain.Card     `json:"top_card"`
	CurrentColor    domain.Color    `json:"current_color"`
}

type HandDealtPayload struct {
	UserID string        `json:"user_id"`
	Hand   []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	UserID         string       `json:"user_id"`
	Card           domain.Card  `json:"card"`
	ChosenColor    domain.Color `json:"chosen_color,omitempty"`
	CurrentColor   domain.Color `json:"current_color"`
	NextTurnUserID string       `json:"next_turn_user_id"`
}

type CardsDrawnPayload struct {
	UserID         string `json:"user_id"`
	Count          int    `json:"count"`
	Forced         bool   `json:"forced"`
	NextTurnUserID string `json:"next_turn_user_id"`
}

type TurnPassedPayload struct {
	UserID         string `json:"user_id"`
	NextTurnUserID string `json:"next_turn_user_id"`
}

type SpellCalledPayload struct {
	UserID string `json:"user_id"`
}

type RoundEndedPayload struct {
	Result domain.Result `json:"result"`
}
