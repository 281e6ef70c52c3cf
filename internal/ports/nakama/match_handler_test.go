package nakama

import (
	"testing"

	"github.com/dianbrown/SpellStack/internal/app"
	"github.com/dianbrown/SpellStack/internal/domain"
)

func TestSeatOf(t *testing.T) {
	seats := []string{"u1", "", "bot-merlin", "u2"}

	tests := []struct {
		userID string
		want   int
	}{
		{userID: "u1", want: 0},
		{userID: "bot-merlin", want: 2},
		{userID: "u2", want: 3},
		{userID: "stranger", want: -1},
		{userID: "", want: 1},
	}

	for _, tt := range tests {
		if got := seatOf(seats, tt.userID); got != tt.want {
			t.Fatalf("seatOf(%q) = %d, want %d", tt.userID, got, tt.want)
		}
	}
}

func TestSeatCounts(t *testing.T) {
	ms := &MatchState{Seats: [4]string{"u1", "", "bot-merlin", ""}}

	if got := ms.GetOpenSeatsCount(); got != 2 {
		t.Fatalf("open seats = %d, want 2", got)
	}
	if got := ms.GetOccupiedSeatCount(); got != 2 {
		t.Fatalf("occupied seats = %d, want 2", got)
	}
	if got := ms.GetHumanPlayerCount(); got != 1 {
		t.Fatalf("human count = %d, want 1", got)
	}
}

func TestFindFirstHumanSeat(t *testing.T) {
	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{name: "human in front", seats: []string{"u1", "bot-merlin", "", ""}, want: 0},
		{name: "human behind bot", seats: []string{"bot-merlin", "u1", "", ""}, want: 1},
		{name: "bots only", seats: []string{"bot-merlin", "bot-puck", "", ""}, want: -1},
		{name: "empty", seats: []string{"", "", "", ""}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findFirstHumanSeat(tt.seats); got != tt.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, tt.want)
			}
			if got := shouldTerminateNoHumans(tt.seats); got != (tt.want == -1) {
				t.Fatalf("shouldTerminateNoHumans() = %v", got)
			}
		})
	}
}

func TestIsHumanSeat(t *testing.T) {
	seats := []string{"u1", "bot-merlin", "", ""}

	if !isHumanSeat(seats, 0) {
		t.Fatal("seat 0 should be human")
	}
	if isHumanSeat(seats, 1) {
		t.Fatal("seat 1 is a bot")
	}
	if isHumanSeat(seats, 2) {
		t.Fatal("seat 2 is empty")
	}
	if isHumanSeat(seats, -1) || isHumanSeat(seats, 4) {
		t.Fatal("out-of-range seats are never human")
	}
}

func TestGameInProgress(t *testing.T) {
	ms := &MatchState{}
	if ms.gameInProgress() {
		t.Fatal("no game should not be in progress")
	}

	ms.Game = &domain.GameState{Phase: domain.PhasePlaying}
	if !ms.gameInProgress() {
		t.Fatal("playing phase should be in progress")
	}

	ms.Game.Phase = domain.PhaseRoundEnd
	if ms.gameInProgress() {
		t.Fatal("an ended round is not in progress")
	}
}

func TestNormalizeBotDelays(t *testing.T) {
	tests := []struct {
		name             string
		min, max, fill   int
		wantMin, wantMax int
		wantFill         int
	}{
		{name: "zeros take defaults", min: 0, max: 0, fill: 0, wantMin: 1, wantMax: 3, wantFill: 5},
		{name: "valid window unchanged", min: 2, max: 4, fill: 6, wantMin: 2, wantMax: 4, wantFill: 6},
		{name: "inverted window clamps to min", min: 5, max: 2, fill: 1, wantMin: 5, wantMax: 5, wantFill: 1},
		{name: "negative values take defaults", min: -1, max: -1, fill: -1, wantMin: 1, wantMax: 3, wantFill: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := &MatchState{BotMinDelay: tt.min, BotMaxDelay: tt.max, BotAutoFillDelay: tt.fill}
			ms.normalizeBotDelays()
			if ms.BotMinDelay != tt.wantMin || ms.BotMaxDelay != tt.wantMax || ms.BotAutoFillDelay != tt.wantFill {
				t.Fatalf("delays = %d/%d/%d, want %d/%d/%d",
					ms.BotMinDelay, ms.BotMaxDelay, ms.BotAutoFillDelay, tt.wantMin, tt.wantMax, tt.wantFill)
			}
			if ms.BotMaxDelay < ms.BotMinDelay {
				t.Fatal("window still inverted after normalization")
			}
		})
	}
}

func TestTrackTurn(t *testing.T) {
	ms := &MatchState{
		TurnDurationSeconds: 30,
		Game: &domain.GameState{
			Phase:           domain.PhasePlaying,
			CurrentPlayerID: "u1",
		},
	}

	if ms.trackTurn(100) {
		t.Fatal("a freshly observed turn is never overdue")
	}
	if ms.trackTurn(110) {
		t.Fatal("turn overdue before the limit")
	}
	if !ms.trackTurn(130) {
		t.Fatal("turn not overdue at the limit")
	}

	// A different player resets the clock.
	ms.Game.CurrentPlayerID = "u2"
	if ms.trackTurn(131) {
		t.Fatal("clock carried over to the next player")
	}
	if !ms.trackTurn(161) {
		t.Fatal("next player's turn not overdue at the limit")
	}

	// Zero duration disables the clock entirely.
	ms.TurnDurationSeconds = 0
	if ms.trackTurn(999) {
		t.Fatal("disabled clock reported an overdue turn")
	}

	// No running game, no clock.
	ms.TurnDurationSeconds = 30
	ms.Game.Phase = domain.PhaseRoundEnd
	if ms.trackTurn(999) {
		t.Fatal("clock ran on a finished round")
	}
}

func TestMoveErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not your turn", err: app.ErrNotYourTurn, want: ErrCodeNotYourTurn},
		{name: "not playing", err: app.ErrNotPlaying, want: ErrCodeGameNotStarted},
		{name: "unknown player", err: app.ErrUnknownPlayer, want: ErrCodeBadRequest},
		{name: "illegal move", err: domain.ErrIllegalMove, want: ErrCodeIllegalMove},
		{name: "card not in hand", err: domain.ErrCardNotInHand, want: ErrCodeIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moveErrorCode(tt.err); got != tt.want {
				t.Fatalf("moveErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}
