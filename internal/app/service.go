package app

import (
	"errors"

	"github.com/dianbrown/SpellStack/internal/domain"
)

// Service contains SpellStack use-cases operating on domain state. The engine
// is pure; the service adds turn-ownership checks, forced-draw auto
// resolution and event emission for the relay.
type Service struct{}

// NewService constructs a Service.
func NewService() *Service {
	return &Service{}
}

var (
	ErrNotPlaying    = errors.New("game not in playing phase")
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrUnknownPlayer = errors.New("player not found")
)

// StartGame creates a fresh round for the given seats and emits the start
// events, with each hand delivered privately to its owner.
func (s *Service) StartGame(players []domain.PlayerInfo, seed string, settings *domain.Settings) (*domain.GameState, []Event, error) {
	game, err := domain.NewGame(players, seed, settings)
	if err != nil {
		return nil, nil, err
	}

	events := make([]Event, 0, len(players)+1)
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:          game.ID,
			Players:         game.Players,
			FirstTurnUserID: game.CurrentPlayerID,
			TopCard:         game.TopCard,
			CurrentColor:    game.CurrentColor,
		},
	})

	for _, p := range players {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				UserID: p.ID,
				Hand:   game.Hands[p.ID],
			},
			Recipients: []string{p.ID},
		})
	}

	return game, events, nil
}

// SubmitMove validates and applies a player-submitted move. Moves arrive from
// untrusted, possibly stale clients, so ownership and legality are checked
// here against a fresh legal-move set before the engine re-validates again.
// On any error the returned state is the input state, unchanged.
func (s *Service) SubmitMove(game *domain.GameState, actorID string, move domain.Move) (*domain.GameState, []Event, error) {
	if game.Phase != domain.PhasePlaying {
		return game, nil, ErrNotPlaying
	}
	if game.PlayerByID(actorID) == nil {
		return game, nil, ErrUnknownPlayer
	}
	if game.CurrentPlayerID != actorID {
		return game, nil, ErrNotYourTurn
	}

	if !moveInSet(domain.LegalMoves(game, actorID), move) {
		return game, nil, domain.ErrIllegalMove
	}

	next, err := domain.ApplyMove(game, move, nil)
	if err != nil {
		return game, nil, err
	}

	events := s.moveEvents(game, next, actorID, move)

	// Resolve an inherited forced draw when the affected player has no
	// stackable answer; no client move is required in that case.
	next, drawEvents := s.ResolveForcedDraw(next)
	events = append(events, drawEvents...)

	if domain.IsTerminal(next) {
		events = append(events, Event{
			Kind:    EventRoundEnded,
			Payload: RoundEndedPayload{Result: domain.Score(next)},
		})
	}

	return next, events, nil
}

// ResolveForcedDraw applies the automatic forced draw for the current player
// if they have no choice to make, emitting the draw event. Returns the input
// state unchanged when there is nothing to resolve.
func (s *Service) ResolveForcedDraw(game *domain.GameState) (*domain.GameState, []Event) {
	pending := game.DrawCount
	affected := game.CurrentPlayerID

	next := domain.ApplyAutomaticDrawCards(game, nil)
	if next == game {
		return game, nil
	}

	return next, []Event{{
		Kind: EventCardsDrawn,
		Payload: CardsDrawnPayload{
			UserID:         affected,
			Count:          pending,
			Forced:         true,
			NextTurnUserID: next.CurrentPlayerID,
		},
	}}
}

func (s *Service) moveEvents(before, after *domain.GameState, actorID string, move domain.Move) []Event {
	switch move.Type {
	case domain.MovePlayCard:
		return []Event{{
			Kind: EventCardPlayed,
			Payload: CardPlayedPayload{
				UserID:         actorID,
				Card:           after.TopCard,
				ChosenColor:    move.ChosenColor,
				CurrentColor:   after.CurrentColor,
				NextTurnUserID: after.CurrentPlayerID,
			},
		}}
	case domain.MoveDrawCard:
		count := len(after.Hands[actorID]) - len(before.Hands[actorID])
		events := []Event{{
			Kind: EventCardsDrawn,
			Payload: CardsDrawnPayload{
				UserID:         actorID,
				Count:          count,
				Forced:         before.DrawCount > 0,
				NextTurnUserID: after.CurrentPlayerID,
			},
		}}
		// A voluntary draw keeps the turn; tell the drawing player what they
		// got so they can decide to play or pass.
		if after.CanPlayDrawnCard && after.LastDrawnCard != nil {
			events = append(events, Event{
				Kind: EventHandDealt,
				Payload: HandDealtPayload{
					UserID: actorID,
					Hand:   after.Hands[actorID],
				},
				Recipients: []string{actorID},
			})
		}
		return events
	case domain.MovePassTurn:
		return []Event{{
			Kind: EventTurnPassed,
			Payload: TurnPassedPayload{
				UserID:         actorID,
				NextTurnUserID: after.CurrentPlayerID,
			},
		}}
	case domain.MoveCallSpell:
		return []Event{{
			Kind:    EventSpellCalled,
			Payload: SpellCalledPayload{UserID: actorID},
		}}
	default:
		return nil
	}
}

func moveInSet(legal []domain.Move, move domain.Move) bool {
	for _, m := range legal {
		if m == move {
			return true
		}
	}
	return false
}
