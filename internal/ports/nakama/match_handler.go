package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/dianbrown/SpellStack/internal/app"
	"github.com/dianbrown/SpellStack/internal/bot"
	"github.com/dianbrown/SpellStack/internal/config"
	"github.com/dianbrown/SpellStack/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one SpellStack room.
// All engine calls for a room go through the match loop, which Nakama runs
// strictly sequentially, so no extra locking is needed.
type MatchState struct {
	Seats     [4]string                   `json:"seats"` // user ids, "" means empty
	OwnerSeat int                         `json:"owner_seat"`
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"`

	App    *app.Service          `json:"-"`
	Tokens *app.TokenService     `json:"-"`
	Game   *domain.GameState     `json:"-"`
	Bots   map[string]*bot.Agent `json:"-"`

	Settings domain.Settings `json:"settings"`

	BotsEnabled          bool  `json:"bots_enabled"`
	BotMinDelay          int   `json:"bot_min_delay"`
	BotMaxDelay          int   `json:"bot_max_delay"`
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64 `json:"bot_wait_until"`
	LastSinglePlayerTick int64 `json:"last_single_player_tick"`

	// Turn clock. At tick rate 1 a tick is one second.
	TurnDurationSeconds int    `json:"turn_duration_seconds"`
	TurnUserID          string `json:"turn_user_id"`
	TurnStartTick       int64  `json:"turn_start_tick"`
}

// normalizeBotDelays applies defaults and keeps the think-delay window valid
// so the jitter roll never sees a non-positive range.
func (ms *MatchState) normalizeBotDelays() {
	if ms.BotMinDelay <= 0 {
		ms.BotMinDelay = 1
	}
	if ms.BotMaxDelay <= 0 {
		ms.BotMaxDelay = 3
	}
	if ms.BotMaxDelay < ms.BotMinDelay {
		ms.BotMaxDelay = ms.BotMinDelay
	}
	if ms.BotAutoFillDelay <= 0 {
		ms.BotAutoFillDelay = 5
	}
}

// trackTurn records whose turn the clock is timing and reports whether that
// turn has run past the configured limit. A limit of zero disables the clock.
func (ms *MatchState) trackTurn(tick int64) bool {
	if ms.TurnDurationSeconds <= 0 || !ms.gameInProgress() {
		ms.TurnUserID = ""
		return false
	}
	current := ms.Game.CurrentPlayerID
	if current != ms.TurnUserID {
		ms.TurnUserID = current
		ms.TurnStartTick = tick
		return false
	}
	return tick-ms.TurnStartTick >= int64(ms.TurnDurationSeconds)
}

// GetOpenSeatsCount returns the number of unoccupied seats.
func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

// GetOccupiedSeatCount returns the number of occupied seats.
func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

// GetHumanPlayerCount returns the number of seats held by humans.
func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

// gameInProgress reports whether a round is currently being played.
func (ms *MatchState) gameInProgress() bool {
	return ms.Game != nil && !domain.IsTerminal(ms.Game)
}

// seatOf returns the seat index for a user id, or -1.
func seatOf(seats []string, userID string) int {
	for i, id := range seats {
		if id == userID {
			return i
		}
	}
	return -1
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userID := seats[seatIndex]
	return userID != "" && !bot.IsBot(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !bot.IsBot(userID) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}
	cfg := config.GetGameConfig()

	state := &MatchState{
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(),
		Bots:      make(map[string]*bot.Agent),
		Settings: domain.Settings{
			SpellCallRequired: cfg.SpellCallRequired,
			StackDrawCards:    cfg.StackDrawCards,
			MaxPlayers:        cfg.MaxPlayers,
		},
		BotMinDelay:         cfg.BotMinDelaySeconds,
		BotMaxDelay:         cfg.BotMaxDelaySeconds,
		BotAutoFillDelay:    cfg.BotAutoFillDelaySeconds,
		TurnDurationSeconds: cfg.TurnDurationSeconds,
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["spellstack_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["spellstack_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["spellstack_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["spellstack_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if val, ok := env["spellstack_turn_duration_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.TurnDurationSeconds = i
		}
	}
	state.Tokens = app.NewTokenService(env["spellstack_session_secret"], "spellstack", 0)

	state.normalizeBotDelays()

	labelBytes, err := json.Marshal(Label{Open: state.GetOpenSeatsCount(), Game: MatchNameSpellStack, State: "lobby"})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt validates whether a presence may join. During a round only
// seated players (or holders of a valid rejoin token for this match) may come
// back in.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()

	if matchState.gameInProgress() {
		if seatOf(matchState.Seats[:], userID) >= 0 {
			return state, true, ""
		}
		if token := metadata["rejoin_token"]; token != "" {
			matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
			tokenUser, tokenMatch, err := matchState.Tokens.VerifyRejoinToken(token)
			if err == nil && tokenUser == userID && tokenMatch == matchID {
				return state, true, ""
			}
			logger.Warn("MatchJoinAttempt: Rejected rejoin token for %s: %v", userID, err)
		}
		return state, false, "match_in_progress"
	}

	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		for _, seat := range matchState.Seats {
			if bot.IsBot(seat) {
				hasBot = true
				break
			}
		}
		if !hasBot {
			return state, false, "match_full"
		}
	}

	return state, true, ""
}

// MatchJoin mutates state when presences join and assigns seats/owner.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		// A rejoining player already holds their seat.
		if seatOf(matchState.Seats[:], userID) >= 0 {
			mh.sendGameState(matchState, dispatcher, logger, userID)
			continue
		}

		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = userID
				assigned = true
				break
			}
		}

		if !assigned && !matchState.gameInProgress() {
			for i, seatUserID := range matchState.Seats {
				if bot.IsBot(seatUserID) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserID, userID, i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = userID
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", userID)
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher)

	return matchState
}

// MatchLeave frees seats in the lobby; during a round the seat is kept so the
// player can rejoin and the game state stays consistent.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		if !matchState.gameInProgress() {
			if i := seatOf(matchState.Seats[:], userID); i >= 0 {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, i)
			}
		}
	}

	if newOwnerSeat := findFirstHumanSeat(matchState.Seats[:]); newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
	}

	// A room where every human has disconnected and none can rejoin is dead.
	if shouldTerminateNoHumans(matchState.Seats[:]) && !matchState.gameInProgress() {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}
	if matchState.gameInProgress() && len(matchState.Presences) == 0 && matchState.GetHumanPlayerCount() > 0 {
		// All humans disconnected mid-round; keep the room for rejoins.
		logger.Debug("MatchLeave: All humans disconnected, awaiting rejoin.")
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher)

	return matchState
}

// MatchLoop processes client messages and drives bot turns.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpSubmitMove:
			mh.handleSubmitMove(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.enforceTurnClock(matchState, dispatcher, logger)

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

// enforceTurnClock puts an overdue human seat on auto-pilot for one move, so
// a single stalled client cannot freeze the table. Bots pace themselves in
// processBots and are never clocked here.
func (mh *matchHandler) enforceTurnClock(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.trackTurn(state.Tick) {
		return
	}
	currentID := state.Game.CurrentPlayerID
	if bot.IsBot(currentID) {
		return
	}

	logger.Info("enforceTurnClock: Seat %s exceeded %ds, playing automatically.", currentID, state.TurnDurationSeconds)

	move, ok := bot.ChooseMove(state.Game, currentID, bot.DifficultyEasy, nil)
	if !ok {
		next, events := state.App.ResolveForcedDraw(state.Game)
		state.Game = next
		for _, ev := range events {
			mh.broadcastEvent(state, dispatcher, logger, ev)
		}
		mh.broadcastGameState(state, dispatcher, logger)
		return
	}

	next, events, err := state.App.SubmitMove(state.Game, currentID, move)
	if err != nil {
		logger.Error("enforceTurnClock: Auto move for %s rejected: %v", currentID, err)
		return
	}
	state.Game = next
	state.BotWaitUntil = 0

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastGameState(state, dispatcher, logger)

	if domain.IsTerminal(state.Game) {
		mh.updateLabel(state, dispatcher, logger)
	}
}

// MatchTerminate is called when the server shuts the match down.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: grace=%d", graceSeconds)
	return state
}

// MatchSignal is unused.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state.Seats[:], senderID)

	logger.Info("StartGame: Request from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	request := &StartGameRequest{}
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), request); err != nil {
			logger.Warn("StartGame: Invalid request from %s: %v", senderID, err)
			mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, "invalid start request")
			return
		}
	}

	if senderSeat != state.OwnerSeat {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeNotOwner, "only the room owner can start the game")
		return
	}
	if state.gameInProgress() {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeGameAlreadyStarted, "game already started")
		return
	}
	if state.GetOccupiedSeatCount() < app.MinPlayersToStartGame {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, fmt.Sprintf("need at least %d players", app.MinPlayersToStartGame))
		return
	}

	settings := state.Settings
	if request.Settings != nil {
		settings = *request.Settings
	}

	var players []domain.PlayerInfo
	for _, userID := range state.Seats {
		if userID == "" {
			continue
		}
		players = append(players, domain.PlayerInfo{
			ID:    userID,
			Name:  mh.displayName(state, userID),
			IsBot: bot.IsBot(userID),
		})
	}

	// The seed is fixed at start; every reshuffle and bot decision derives
	// from it, so the round is replayable from the move log alone.
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	seed := fmt.Sprintf("%s:%d", matchID, state.Tick)

	game, events, err := state.App.StartGame(players, seed, &settings)
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, err.Error())
		return
	}

	state.Game = game
	state.BotWaitUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastGameState(state, dispatcher, logger)

	logger.Info("StartGame: Game %s started with %d players.", game.ID, len(players))
}

func (mh *matchHandler) handleSubmitMove(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeGameNotStarted, "game not started")
		return
	}

	request := &SubmitMoveRequest{}
	if err := json.Unmarshal(msg.GetData(), request); err != nil {
		logger.Warn("handleSubmitMove: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, "invalid move request")
		return
	}

	next, events, err := state.App.SubmitMove(state.Game, senderID, request.Move)
	if err != nil {
		logger.Warn("handleSubmitMove: User %s rejected: %v. Move: %+v", senderID, err, request.Move)
		mh.sendError(state, dispatcher, logger, senderID, moveErrorCode(err), err.Error())
		return
	}

	state.Game = next
	state.BotWaitUntil = 0

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastGameState(state, dispatcher, logger)

	if domain.IsTerminal(state.Game) {
		mh.updateLabel(state, dispatcher, logger)
	}
}

func moveErrorCode(err error) string {
	switch {
	case err == app.ErrNotYourTurn:
		return ErrCodeNotYourTurn
	case err == app.ErrNotPlaying:
		return ErrCodeGameNotStarted
	case err == app.ErrUnknownPlayer:
		return ErrCodeBadRequest
	default:
		return ErrCodeIllegalMove
	}
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill a solo human's lobby with bots after a delay.
	if !state.gameInProgress() {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat != "" {
						continue
					}
					identity := bot.GetBotIdentity(i)
					state.Seats[i] = identity.UserID

					agent, err := bot.NewAgent(identity.UserID)
					if err != nil {
						logger.Error("processBots: Failed to create bot agent for %s: %v", identity.UserID, err)
						state.Seats[i] = ""
						continue
					}
					state.Bots[identity.UserID] = agent
					logger.Info("processBots: Added bot %s (%s) to seat %d", identity.DisplayName, identity.UserID, i)
					added = true
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// Drive the bot whose turn it is, after a short think delay.
	currentUserID := state.Game.CurrentPlayerID
	if !bot.IsBot(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentUserID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(currentUserID)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[currentUserID] = agent
	}

	move, ok := agent.Play(state.Game)
	if !ok {
		// No legal move means a pending forced draw with no choice; resolve it.
		next, events := state.App.ResolveForcedDraw(state.Game)
		state.Game = next
		for _, ev := range events {
			mh.broadcastEvent(state, dispatcher, logger, ev)
		}
		mh.broadcastGameState(state, dispatcher, logger)
		return
	}

	next, events, err := state.App.SubmitMove(state.Game, currentUserID, move)
	if err != nil {
		logger.Error("processBots: Bot %s move rejected: %v", currentUserID, err)
		return
	}
	state.Game = next

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.broadcastGameState(state, dispatcher, logger)

	if domain.IsTerminal(state.Game) {
		mh.updateLabel(state, dispatcher, logger)
	}
}

func (mh *matchHandler) displayName(state *MatchState, userID string) string {
	if p, exists := state.Presences[userID]; exists {
		if name := p.GetUsername(); name != "" {
			return name
		}
	}
	return bot.GetBotDisplayName(userID)
}

// broadcastMatchState sends the seating snapshot to everyone.
func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher) {
	var players []SeatInfo
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		cardsRemaining := 0
		if state.Game != nil {
			cardsRemaining = len(state.Game.Hands[userID])
		}

		players = append(players, SeatInfo{
			UserID:         userID,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          bot.IsBot(userID),
			DisplayName:    mh.displayName(state, userID),
			CardsRemaining: cardsRemaining,
		})
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   players,
	}
	data, _ := json.Marshal(snapshot)
	_ = dispatcher.BroadcastMessage(OpMatchState, data, nil, nil, true)
}

// broadcastGameState sends each seated human their own redacted view. Bots
// never receive messages; spectating presences get the fully hidden view.
func (mh *matchHandler) broadcastGameState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		return
	}
	for userID, presence := range state.Presences {
		view := domain.RedactedView(state.Game, userID)
		data, err := json.Marshal(view)
		if err != nil {
			logger.Error("broadcastGameState: marshal failed: %v", err)
			return
		}
		_ = dispatcher.BroadcastMessage(OpGameState, data, []runtime.Presence{presence}, nil, true)
	}
}

// sendGameState sends one user their redacted view (used on rejoin).
func (mh *matchHandler) sendGameState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	if state.Game == nil {
		return
	}
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	data, err := json.Marshal(domain.RedactedView(state.Game, userID))
	if err != nil {
		logger.Error("sendGameState: marshal failed: %v", err)
		return
	}
	_ = dispatcher.BroadcastMessage(OpGameState, data, []runtime.Presence{presence}, nil, true)
}

// broadcastEvent dispatches an app event, honoring targeted recipients.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	data, err := json.Marshal(GameEventMessage{Kind: ev.Kind, Payload: ev.Payload})
	if err != nil {
		logger.Error("broadcastEvent: marshal failed: %v", err)
		return
	}

	var targets []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, userID := range ev.Recipients {
			if p, ok := state.Presences[userID]; ok {
				targets = append(targets, p)
			}
		}
		if len(targets) == 0 {
			// All recipients are bots or offline; nothing to deliver.
			return
		}
	}
	_ = dispatcher.BroadcastMessage(OpGameEvent, data, targets, nil, true)
}

// sendError reports a rejection to the offending client only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, code, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	data, _ := json.Marshal(ErrorMessage{Code: code, Message: message})
	_ = dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelState := "lobby"
	if state.gameInProgress() {
		labelState = "playing"
	}
	open := state.GetOpenSeatsCount()
	if labelState != "lobby" {
		open = 0
	}
	data, err := json.Marshal(Label{Open: open, Game: MatchNameSpellStack, State: labelState})
	if err != nil {
		logger.Error("updateLabel: marshal failed: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(data)); err != nil {
		logger.Warn("updateLabel: %v", err)
	}
}
