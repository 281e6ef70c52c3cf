package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// BotIdentity is one profile from the bot pool.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// botIDPrefix marks generated fallback identities.
const botIDPrefix = "bot-"

var (
	botIdentities []BotIdentity
	botConfigMap  map[string]BotIdentity
	loadOnce      sync.Once
	loadErr       error
)

func defaultIdentities() []BotIdentity {
	return []BotIdentity{
		{UserID: "bot-merlin", Username: "merlin", DisplayName: "Merlin", Difficulty: "hard", AvatarIndex: 0},
		{UserID: "bot-morgana", Username: "morgana", DisplayName: "Morgana", Difficulty: "medium", AvatarIndex: 1},
		{UserID: "bot-puck", Username: "puck", DisplayName: "Puck", Difficulty: "easy", AvatarIndex: 2},
		{UserID: "bot-circe", Username: "circe", DisplayName: "Circe", Difficulty: "medium", AvatarIndex: 3},
	}
}

// LoadIdentities loads bot profiles from the given path. Missing or invalid
// files leave the built-in pool in place and report the error.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		botIdentities = defaultIdentities()
		mapIdentities()

		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []BotIdentity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		if len(loaded) > 0 {
			botIdentities = loaded
			mapIdentities()
		}
	})
	return loadErr
}

func mapIdentities() {
	botConfigMap = make(map[string]BotIdentity, len(botIdentities))
	for _, identity := range botIdentities {
		if identity.UserID != "" {
			botConfigMap[identity.UserID] = identity
		}
	}
}

// GetBotConfig returns the identity for a bot user id.
func GetBotConfig(userID string) (BotIdentity, bool) {
	identity, ok := botConfigMap[userID]
	return identity, ok
}

// GetBotUsername returns the username for a bot id, or "" if not a bot.
func GetBotUsername(userID string) string {
	if identity, ok := botConfigMap[userID]; ok {
		return identity.Username
	}
	return ""
}

// GetBotDisplayName returns a human-facing name for a bot id.
func GetBotDisplayName(userID string) string {
	if identity, ok := botConfigMap[userID]; ok {
		if identity.DisplayName != "" {
			return identity.DisplayName
		}
		return identity.Username
	}
	if strings.HasPrefix(userID, botIDPrefix) {
		return "AI " + strings.TrimPrefix(userID, botIDPrefix)
	}
	return userID
}

// GetBotIdentity returns an identity for a seat index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	if botConfigMap == nil {
		botIdentities = defaultIdentities()
		mapIdentities()
	}
	if len(botIdentities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("%s%d", botIDPrefix, index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
			Difficulty:  string(DifficultyMedium),
		}
	}
	return botIdentities[index%len(botIdentities)]
}

// IsBot reports whether the given user id belongs to a bot seat.
func IsBot(userID string) bool {
	if _, ok := botConfigMap[userID]; ok {
		return true
	}
	return strings.HasPrefix(userID, botIDPrefix)
}
