package bot

import (
	"fmt"

	"github.com/dianbrown/SpellStack/internal/domain"
)

// Difficulty selects the strategy tier for a bot seat.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Brain is the interface all bot strategies implement. Strategies act purely
// through the engine's legal-move set and the provided RNG; they never touch
// hidden state beyond their own hand.
type Brain interface {
	ChooseMove(state *domain.GameState, playerID string, rng *domain.RNG) (domain.Move, bool)
}

// ChooseMove picks a move for the given player at the given difficulty. The
// second return is false when there is no legal move at all (not that
// player's turn, or the round is over); the caller decides what to do then.
// Pass rng as nil to use a deterministic per-decision generator derived from
// the game seed, the player id and the discard length, so the same history
// yields the same decision.
func ChooseMove(state *domain.GameState, playerID string, difficulty Difficulty, rng *domain.RNG) (domain.Move, bool) {
	brain, err := NewBrain(difficulty)
	if err != nil {
		brain = &MediumBot{}
	}
	if rng == nil {
		rng = decisionRNG(state, playerID)
	}
	return brain.ChooseMove(state, playerID, rng)
}

func decisionRNG(state *domain.GameState, playerID string) *domain.RNG {
	return domain.NewRNG(fmt.Sprintf("%s%s%d", state.Seed, playerID, len(state.DiscardPile)))
}
