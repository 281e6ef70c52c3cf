package bot

import "fmt"

// NewBrain creates a strategy for the given difficulty tier.
func NewBrain(difficulty Difficulty) (Brain, error) {
	switch difficulty {
	case DifficultyEasy:
		return &EasyBot{}, nil
	case DifficultyMedium:
		return &MediumBot{}, nil
	case DifficultyHard:
		return &HardBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot difficulty: %q", difficulty)
	}
}
