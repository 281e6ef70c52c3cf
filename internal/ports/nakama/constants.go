package nakama

// MatchNameSpellStack is the authoritative match handler name registered with
// the runtime.
const MatchNameSpellStack = "spellstack"

// MatchLabelKey_OpenSeats is the label key advertising open seats for
// find-match queries.
const MatchLabelKey_OpenSeats = "open"

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame  int64 = 1
	OpSubmitMove int64 = 2

	// Server -> Client
	OpMatchState int64 = 101
	OpGameState  int64 = 102
	OpGameEvent  int64 = 103
	OpError      int64 = 104
)

// Error codes surfaced to the offending client. Rejections never broadcast
// state.
const (
	ErrCodeNotYourTurn        = "not_your_turn"
	ErrCodeIllegalMove        = "illegal_move"
	ErrCodeGameNotStarted     = "game_not_started"
	ErrCodeGameAlreadyStarted = "game_already_started"
	ErrCodeNotOwner           = "not_owner"
	ErrCodeBadRequest         = "bad_request"
)
