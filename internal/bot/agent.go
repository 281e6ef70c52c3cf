package bot

import "github.com/dianbrown/SpellStack/internal/domain"

// Agent is an autonomous bot occupying a seat.
type Agent struct {
	ID         string
	Name       string
	Difficulty Difficulty
	Strategy   Brain
}

// NewAgent builds an agent for a bot user id, using the identity pool's
// difficulty for that id (medium when unknown).
func NewAgent(userID string) (*Agent, error) {
	difficulty := DifficultyMedium
	name := GetBotDisplayName(userID)
	if identity, ok := GetBotConfig(userID); ok && identity.Difficulty != "" {
		difficulty = Difficulty(identity.Difficulty)
	}

	brain, err := NewBrain(difficulty)
	if err != nil {
		return nil, err
	}

	return &Agent{
		ID:         userID,
		Name:       name,
		Difficulty: difficulty,
		Strategy:   brain,
	}, nil
}

// Play asks the agent for its move in the current state. The second return
// is false when the agent has no legal move (it is not its turn).
func (a *Agent) Play(state *domain.GameState) (domain.Move, bool) {
	return a.Strategy.ChooseMove(state, a.ID, decisionRNG(state, a.ID))
}
