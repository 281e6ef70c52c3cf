package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig is the server-side game configuration loaded from a JSON file.
type GameConfig struct {
	// Default rule switches applied when a match starts without overrides.
	SpellCallRequired bool `json:"spell_call_required"`
	StackDrawCards    bool `json:"stack_draw_cards"`
	MaxPlayers        int  `json:"max_players"`

	// TurnDurationSeconds bounds how long a human may sit on a turn; 0
	// disables the turn clock.
	TurnDurationSeconds int `json:"turn_duration_seconds"`

	// Bot pacing.
	BotMinDelaySeconds      int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int `json:"bot_max_delay_seconds"`
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, with defaults when no
// file has been loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return GameConfig{
			StackDrawCards:          true,
			MaxPlayers:              4,
			TurnDurationSeconds:     30,
			BotMinDelaySeconds:      1,
			BotMaxDelaySeconds:      3,
			BotAutoFillDelaySeconds: 5,
		}
	}
	return *cfg
}
