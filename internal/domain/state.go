package domain

// Phase represents the lifecycle stage of a SpellStack round.
type Phase string

const (
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseRoundEnd is reached the moment a player empties their hand.
	PhaseRoundEnd Phase = "round_end"
	// PhaseGameEnd is the state after a full game concludes.
	PhaseGameEnd Phase = "game_end"
)

// Direction is the order in which turns pass around the table.
type Direction string

const (
	DirClockwise        Direction = "clockwise"
	DirCounterClockwise Direction = "counter_clockwise"
)

// Settings are the per-game rule switches.
type Settings struct {
	// SpellCallRequired adds a "call" move when a player is down to one card.
	SpellCallRequired bool `json:"spell_call_required"`
	// StackDrawCards allows answering a draw card with another draw card,
	// passing the accumulated count on.
	StackDrawCards bool `json:"stack_draw_cards"`
	// MaxPlayers is 2..4.
	MaxPlayers int `json:"max_players"`
}

// DefaultSettings returns the standard rule set.
func DefaultSettings() Settings {
	return Settings{
		SpellCallRequired: false,
		StackDrawCards:    true,
		MaxPlayers:        MaxPlayers,
	}
}

// Player is the public record for a participant. Hand contents live in
// GameState.Hands; only the size is public here.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsBot       bool   `json:"is_bot"`
	HandSize    int    `json:"hand_size"`
	CalledSpell bool   `json:"called_spell"`
}

// PlayerInfo describes a seat at game creation time.
type PlayerInfo struct {
	ID    string
	Name  string
	IsBot bool
}

// MoveType discriminates the move union.
type MoveType string

const (
	MovePlayCard  MoveType = "play_card"
	MoveDrawCard  MoveType = "draw_card"
	MovePassTurn  MoveType = "pass_turn"
	MoveCallSpell MoveType = "call_uno"
)

// Move is a single action submitted by a player. CardID and ChosenColor are
// only meaningful for play_card; wild-type plays must carry a concrete
// ChosenColor or they are rejected.
type Move struct {
	Type        MoveType `json:"type"`
	CardID      string   `json:"card_id,omitempty"`
	ChosenColor Color    `json:"chosen_color,omitempty"`
}

// GameState is the authoritative state of one round. It is only ever created
// by NewGame and advanced by ApplyMove; every transition leaves the input
// state untouched and returns a fresh copy.
type GameState struct {
	ID              string    `json:"id"`
	Phase           Phase     `json:"phase"`
	Players         []Player  `json:"players"`
	CurrentPlayerID string    `json:"current_player_id"`
	Direction       Direction `json:"direction"`

	TopCard      Card   `json:"top_card"`
	CurrentColor Color  `json:"current_color"`
	DrawPile     []Card `json:"draw_pile"`
	DiscardPile  []Card `json:"discard_pile"`

	// Hands maps player id to private hand contents.
	Hands map[string][]Card `json:"hands"`

	// DrawCount is the pending forced draw accumulated from stacked +2/+4.
	DrawCount int `json:"draw_count"`

	// CanPlayDrawnCard is set after a voluntary single draw: the player may
	// play that card or pass, and the turn has not advanced yet.
	CanPlayDrawnCard bool  `json:"can_play_drawn_card"`
	LastDrawnCard    *Card `json:"last_drawn_card,omitempty"`

	Seed     string   `json:"seed"`
	Settings Settings `json:"settings"`
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	out := *s

	out.Players = make([]Player, len(s.Players))
	copy(out.Players, s.Players)

	out.DrawPile = make([]Card, len(s.DrawPile))
	copy(out.DrawPile, s.DrawPile)

	out.DiscardPile = make([]Card, len(s.DiscardPile))
	copy(out.DiscardPile, s.DiscardPile)

	out.Hands = make(map[string][]Card, len(s.Hands))
	for id, hand := range s.Hands {
		cards := make([]Card, len(hand))
		copy(cards, hand)
		out.Hands[id] = cards
	}

	if s.LastDrawnCard != nil {
		c := *s.LastDrawnCard
		out.LastDrawnCard = &c
	}

	return &out
}

// PlayerByID returns the public player record, or nil if unknown.
func (s *GameState) PlayerByID(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

func (s *GameState) playerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}
