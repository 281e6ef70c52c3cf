package domain

import (
	"errors"
	"fmt"
	"hash/fnv"
)

var (
	ErrInvalidPlayerCount = errors.New("game requires 2-4 players")
	ErrNoValidStartCard   = errors.New("no valid starting card found")
	ErrWrongPhase         = errors.New("cannot apply move outside of playing phase")
	ErrCardNotInHand      = errors.New("player does not hold this card")
	ErrIllegalMove        = errors.New("move is not legal in the current state")
	ErrUnknownMove        = errors.New("unknown move type")
)

// NewGame shuffles a fresh deck with the seeded RNG, deals HandSize cards to
// every seat, then moves the topmost non-wild card to the discard pile.
// Given identical players, seed and settings the resulting state is
// byte-identical across processes.
func NewGame(players []PlayerInfo, seed string, settings *Settings) (*GameState, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, ErrInvalidPlayerCount
	}

	rng := NewRNG(seed)
	deck := Shuffle(rng, NewDeck())

	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}

	hands, remaining, err := DealCards(deck, ids, HandSize)
	if err != nil {
		return nil, err
	}

	// Seed the discard pile with the topmost non-wild card. Wilds above it
	// stay in the draw pile; every card stays in circulation.
	startIdx := -1
	for i := len(remaining) - 1; i >= 0; i-- {
		if !remaining[i].IsWild() {
			startIdx = i
			break
		}
	}
	if startIdx == -1 {
		return nil, ErrNoValidStartCard
	}
	topCard := remaining[startIdx]
	remaining = append(remaining[:startIdx], remaining[startIdx+1:]...)

	st := Settings{}
	if settings != nil {
		st = *settings
	} else {
		st = DefaultSettings()
	}
	if st.MaxPlayers == 0 {
		st.MaxPlayers = MaxPlayers
	}

	seats := make([]Player, len(players))
	for i, p := range players {
		seats[i] = Player{
			ID:       p.ID,
			Name:     p.Name,
			IsBot:    p.IsBot,
			HandSize: len(hands[p.ID]),
		}
	}

	return &GameState{
		ID:              gameID(seed),
		Phase:           PhasePlaying,
		Players:         seats,
		CurrentPlayerID: players[0].ID,
		Direction:       DirClockwise,
		TopCard:         topCard,
		CurrentColor:    topCard.Color, // never wild by construction
		DrawPile:        remaining,
		DiscardPile:     []Card{topCard},
		Hands:           hands,
		Seed:            seed,
		Settings:        st,
	}, nil
}

// gameID derives a stable id from the seed. The id is visible to clients
// while the seed is not, so the seed must not be recoverable from it.
func gameID(seed string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte("game-id:"))
	_, _ = h.Write([]byte(seed))
	return fmt.Sprintf("game-%016x", h.Sum64())
}

// deriveRNG builds the default per-move RNG from the game seed and the
// discard pile length, so that replaying the same move sequence reproduces
// every reshuffle exactly.
func deriveRNG(s *GameState) *RNG {
	return NewRNG(fmt.Sprintf("%s%d", s.Seed, len(s.DiscardPile)))
}

// ApplyMove validates and applies a move, returning a new state. The input
// state is never mutated: on any error the caller's state is exactly as it
// was. Pass rng as nil to use the seed-derived default.
func ApplyMove(s *GameState, move Move, rng *RNG) (*GameState, error) {
	if s.Phase != PhasePlaying {
		return nil, ErrWrongPhase
	}

	if rng == nil {
		rng = deriveRNG(s)
	}
	next := s.Clone()

	switch move.Type {
	case MovePlayCard:
		return applyPlayCard(next, move.CardID, move.ChosenColor)
	case MoveDrawCard:
		return applyDrawCard(next, rng), nil
	case MovePassTurn:
		return applyPassTurn(next), nil
	case MoveCallSpell:
		return applyCallSpell(next), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMove, move.Type)
	}
}

func applyPlayCard(s *GameState, cardID string, chosenColor Color) (*GameState, error) {
	playerID := s.CurrentPlayerID
	hand := s.Hands[playerID]

	cardIdx := -1
	for i, c := range hand {
		if c.ID == cardID {
			cardIdx = i
			break
		}
	}
	if cardIdx == -1 {
		return nil, ErrCardNotInHand
	}
	card := hand[cardIdx]

	// Re-validate against the legal-move set, chosen color included. This is
	// the only gate between a stale or malicious submission and a corrupted
	// state, so it runs even for trusted internal callers. A wild play
	// without a concrete color never appears in the set and is rejected here.
	legal := false
	for _, m := range LegalMoves(s, playerID) {
		if m.Type == MovePlayCard && m.CardID == cardID && m.ChosenColor == chosenColor {
			legal = true
			break
		}
	}
	if !legal {
		return nil, ErrIllegalMove
	}

	s.Hands[playerID] = append(hand[:cardIdx], hand[cardIdx+1:]...)
	s.PlayerByID(playerID).HandSize--

	s.DiscardPile = append(s.DiscardPile, card)
	s.TopCard = card

	resolveCardEffect(s, card, chosenColor)

	s.CanPlayDrawnCard = false
	s.LastDrawnCard = nil

	if len(s.Hands[playerID]) == 0 {
		s.Phase = PhaseRoundEnd
		return s, nil
	}

	// Skip advanced the turn twice already inside its effect.
	if card.Kind != KindSkip {
		advanceTurn(s)
	}

	return s, nil
}

func applyDrawCard(s *GameState, rng *RNG) *GameState {
	playerID := s.CurrentPlayerID
	amount := s.DrawCount
	if amount < 1 {
		amount = 1
	}

	for i := 0; i < amount; i++ {
		card, ok := drawFromPile(s, rng)
		if !ok {
			continue
		}
		s.Hands[playerID] = append(s.Hands[playerID], card)
		s.PlayerByID(playerID).HandSize++

		// A voluntary single draw keeps the turn: the player follows up with
		// either a play of the drawn card or a pass.
		if amount == 1 && s.DrawCount == 0 {
			c := card
			s.LastDrawnCard = &c
			s.CanPlayDrawnCard = true
			return s
		}
	}

	s.DrawCount = 0
	advanceTurn(s)
	return s
}

func applyPassTurn(s *GameState) *GameState {
	s.CanPlayDrawnCard = false
	s.LastDrawnCard = nil
	advanceTurn(s)
	return s
}

func applyCallSpell(s *GameState) *GameState {
	s.PlayerByID(s.CurrentPlayerID).CalledSpell = true
	return s
}

// resolveCardEffect runs once, after the card has moved to the discard pile
// and before the generic turn advancement.
func resolveCardEffect(s *GameState, card Card, chosenColor Color) {
	switch card.Kind {
	case KindSkip:
		// Advance twice: past the skipped player onto the one after.
		advanceTurn(s)
		advanceTurn(s)
	case KindReverse:
		if s.Direction == DirClockwise {
			s.Direction = DirCounterClockwise
		} else {
			s.Direction = DirClockwise
		}
	case KindDrawTwo:
		s.DrawCount += 2
	case KindWild:
		s.CurrentColor = chosenColor
	case KindWildDrawFour:
		s.CurrentColor = chosenColor
		s.DrawCount += 4
	default:
		s.CurrentColor = card.Color
	}
}

// advanceTurn steps the current player index by the direction sign. The seat
// list never reorders; with two players a reverse therefore revisits the same
// player, acting as a skip. That outcome is intended.
func advanceTurn(s *GameState) {
	idx := s.playerIndex(s.CurrentPlayerID)
	step := 1
	if s.Direction == DirCounterClockwise {
		step = -1
	}
	next := (idx + step + len(s.Players)) % len(s.Players)
	s.CurrentPlayerID = s.Players[next].ID
}

// drawFromPile pops the next card, reshuffling the discard pile beneath its
// top card into a new draw pile when the old one runs out. With 108 cards in
// circulation a fully exhausted table should not occur; if it somehow does
// the draw yields nothing.
func drawFromPile(s *GameState, rng *RNG) (Card, bool) {
	if len(s.DrawPile) == 0 {
		if len(s.DiscardPile) <= 1 {
			return Card{}, false
		}
		top := s.DiscardPile[len(s.DiscardPile)-1]
		rest := s.DiscardPile[:len(s.DiscardPile)-1]
		s.DrawPile = Shuffle(rng, rest)
		s.DiscardPile = []Card{top}
	}

	card := s.DrawPile[len(s.DrawPile)-1]
	s.DrawPile = s.DrawPile[:len(s.DrawPile)-1]
	return card, true
}

// ApplyAutomaticDrawCards resolves a pending forced draw when the current
// player has no say in the matter: holding no stackable answer (or with
// stacking disabled) the cards are drawn without requiring an explicit client
// move. When the player does hold a stackable card the state is returned
// unchanged so they can choose via LegalMoves/ApplyMove. A terminal state is
// also returned unchanged: a round won with a draw card leaves its forced
// draw unresolved, since there is no turn left to absorb it.
func ApplyAutomaticDrawCards(s *GameState, rng *RNG) *GameState {
	if s.Phase != PhasePlaying || s.DrawCount == 0 {
		return s
	}

	if s.Settings.StackDrawCards && hasStackableCard(s.Hands[s.CurrentPlayerID], s.TopCard) {
		return s
	}

	if rng == nil {
		rng = deriveRNG(s)
	}
	return applyDrawCard(s.Clone(), rng)
}

// IsTerminal reports whether the round has concluded.
func IsTerminal(s *GameState) bool {
	return s.Phase == PhaseRoundEnd || s.Phase == PhaseGameEnd
}

// Result is the round outcome: per-player hand scores and the (at most one)
// player who emptied their hand. Winner is empty when nobody has.
type Result struct {
	Winner     string         `json:"winner"`
	Scores     map[string]int `json:"scores"`
	IsTerminal bool           `json:"is_terminal"`
}

// Score computes the round result from remaining hand contents.
func Score(s *GameState) Result {
	scores := make(map[string]int, len(s.Players))
	winner := ""
	for _, p := range s.Players {
		hs := HandScore(s.Hands[p.ID])
		scores[p.ID] = hs
		if hs == 0 {
			winner = p.ID
		}
	}
	return Result{
		Winner:     winner,
		Scores:     scores,
		IsTerminal: IsTerminal(s),
	}
}
