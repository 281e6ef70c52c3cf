package bot

import (
	"testing"

	"github.com/dianbrown/SpellStack/internal/domain"
)

func botPlayers() []domain.PlayerInfo {
	return []domain.PlayerInfo{
		{ID: "b1", Name: "One", IsBot: true},
		{ID: "b2", Name: "Two", IsBot: true},
		{ID: "b3", Name: "Three", IsBot: true},
	}
}

// midGameState builds a state with hand-picked cards for the acting bot.
func midGameState(hand []domain.Card, top domain.Card, opponents map[string]int) *domain.GameState {
	players := []domain.Player{{ID: "b1", Name: "One", IsBot: true, HandSize: len(hand)}}
	hands := map[string][]domain.Card{"b1": hand}
	for _, id := range []string{"b2", "b3"} {
		size, ok := opponents[id]
		if !ok {
			continue
		}
		players = append(players, domain.Player{ID: id, Name: id, IsBot: true, HandSize: size})
		filler := make([]domain.Card, size)
		for i := range filler {
			filler[i] = domain.Card{ID: id + "-filler", Color: domain.ColorYellow, Kind: domain.KindNumber, Value: 9}
		}
		hands[id] = filler
	}

	return &domain.GameState{
		ID:              "game-bot-test",
		Phase:           domain.PhasePlaying,
		Players:         players,
		CurrentPlayerID: "b1",
		Direction:       domain.DirClockwise,
		TopCard:         top,
		CurrentColor:    top.Color,
		DrawPile:        domain.NewDeck()[:10],
		DiscardPile:     []domain.Card{top},
		Hands:           hands,
		Seed:            "bot-test",
		Settings:        domain.DefaultSettings(),
	}
}

func TestNewBrain(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		wantErr    bool
	}{
		{difficulty: DifficultyEasy},
		{difficulty: DifficultyMedium},
		{difficulty: DifficultyHard},
		{difficulty: "nightmare", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			brain, err := NewBrain(tt.difficulty)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil || brain == nil {
				t.Fatalf("NewBrain() = %v, %v", brain, err)
			}
		})
	}
}

func TestChooseMoveDeterministic(t *testing.T) {
	game, err := domain.NewGame(botPlayers(), "bot-determinism", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, difficulty := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		a, okA := ChooseMove(game, "b1", difficulty, nil)
		b, okB := ChooseMove(game, "b1", difficulty, nil)
		if okA != okB || a != b {
			t.Fatalf("%s: same state gave different moves: %+v vs %+v", difficulty, a, b)
		}
	}
}

func TestChooseMoveNotMyTurn(t *testing.T) {
	game, err := domain.NewGame(botPlayers(), "turn-check", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := ChooseMove(game, "b2", DifficultyMedium, nil); ok {
		t.Fatal("bot produced a move out of turn")
	}
}

func TestChooseMoveAlwaysLegal(t *testing.T) {
	game, err := domain.NewGame(botPlayers(), "legality", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for step := 0; step < 300 && !domain.IsTerminal(game); step++ {
		current := game.CurrentPlayerID
		move, ok := ChooseMove(game, current, DifficultyHard, nil)
		if !ok {
			t.Fatalf("step %d: no move for the current player", step)
		}
		next, err := domain.ApplyMove(game, move, nil)
		if err != nil {
			t.Fatalf("step %d: bot move rejected: %v", step, err)
		}
		game = next
	}
}

func TestMediumPrefersActionCards(t *testing.T) {
	hand := []domain.Card{
		{ID: "r5", Color: domain.ColorRed, Kind: domain.KindNumber, Value: 5},
		{ID: "rs", Color: domain.ColorRed, Kind: domain.KindSkip},
		{ID: "b9", Color: domain.ColorBlue, Kind: domain.KindNumber, Value: 9},
	}
	top := domain.Card{ID: "r3", Color: domain.ColorRed, Kind: domain.KindNumber, Value: 3}
	state := midGameState(hand, top, map[string]int{"b2": 5})

	move, ok := ChooseMove(state, "b1", DifficultyMedium, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	if move.CardID != "rs" {
		t.Fatalf("medium played %s, want the skip", move.CardID)
	}
}

func TestMediumPrefersColorMatchOverOffColor(t *testing.T) {
	// No action cards: the red 5 keeps the active color, the blue 3 would
	// change it via the value match.
	hand := []domain.Card{
		{ID: "r5", Color: domain.ColorRed, Kind: domain.KindNumber, Value: 5},
		{ID: "b3", Color: domain.ColorBlue, Kind: domain.KindNumber, Value: 3},
	}
	top := domain.Card{ID: "r3", Color: domain.ColorRed, Kind: domain.KindNumber, Value: 3}
	state := midGameState(hand, top, map[string]int{"b2": 5})

	move, ok := ChooseMove(state, "b1", DifficultyMedium, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	if move.CardID != "r5" {
		t.Fatalf("medium played %s, want the color match r5", move.CardID)
	}
}

func TestMediumWildColorChoice(t *testing.T) {
	// Only the wild is playable; the bot holds mostly green, so the wild
	// should call green.
	hand := []domain.Card{
		{ID: "w1", Color: domain.ColorWild, Kind: domain.KindWild},
		{ID: "g1", Color: domain.ColorGreen, Kind: domain.KindNumber, Value: 1},
		{ID: "g2", Color: domain.ColorGreen, Kind: domain.KindNumber, Value: 2},
		{ID: "b9", Color: domain.ColorBlue, Kind: domain.KindNumber, Value: 9},
	}
	top := domain.Card{ID: "r3", Color: domain.ColorRed, Kind: domain.KindNumber, Value: 3}
	state := midGameState(hand, top, map[string]int{"b2": 5})

	move, ok := ChooseMove(state, "b1", DifficultyMedium, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	if move.CardID != "w1" || move.ChosenColor != domain.ColorGreen {
		t.Fatalf("medium move = %+v, want the wild calling green", move)
	}
}

func TestHardDisruptsWhenOpponentNearlyOut(t *testing.T) {
	hand := []domain.Card{
		{ID: "r5", Color: domain.ColorRed, Kind: domain.KindNumber, Value: 5},
		{ID: "rd", Color: domain.ColorRed, Kind: domain.KindDrawTwo},
	}
	top := domain.Card{ID: "r3", Color: domain.ColorRed, Kind: domain.KindNumber, Value: 3}
	state := midGameState(hand, top, map[string]int{"b2": 1, "b3": 6})

	move, ok := ChooseMove(state, "b1", DifficultyHard, nil)
	if !ok {
		t.Fatal("expected a move")
	}
	if move.CardID != "rd" {
		t.Fatalf("hard played %s, want the draw two against a one-card opponent", move.CardID)
	}
}

func TestEasyPicksFromLegalSet(t *testing.T) {
	game, err := domain.NewGame(botPlayers(), "easy-legal", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	move, ok := ChooseMove(game, "b1", DifficultyEasy, nil)
	if !ok {
		t.Fatal("expected a move")
	}

	found := false
	for _, m := range domain.LegalMoves(game, "b1") {
		if m == move {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("easy move %+v is not in the legal set", move)
	}
}
