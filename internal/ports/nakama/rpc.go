package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dianbrown/SpellStack/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// RegisterRPCs wires the SpellStack RPC surface.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc("find_match", RpcFindMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc("create_match", RpcCreateMatch); err != nil {
		return err
	}
	if err := initializer.RegisterRpc("rejoin_token", RpcRejoinToken); err != nil {
		return err
	}
	return nil
}

// RpcFindMatch searches for a room with an open seat, creating one when none
// exists, and returns the match id.
func RpcFindMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 1
	authoritative := true
	labelQuery := fmt.Sprintf("+label.%s:>=1", MatchLabelKey_OpenSeats)
	minSize := 0
	maxSize := 4

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, labelQuery)
	if err != nil {
		logger.Error("RpcFindMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		matchID := matches[0].MatchId
		logger.Info("RpcFindMatch [User:%s]: Found existing match %s", userID, matchID)
		return matchID, nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameSpellStack, nil)
	if err != nil {
		logger.Error("RpcFindMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("RpcFindMatch [User:%s]: Created new match %s", userID, matchID)
	return matchID, nil
}

// RpcCreateMatch always creates a fresh room and returns its id, for players
// who want a private table to invite friends into.
func RpcCreateMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	matchID, err := nk.MatchCreate(ctx, MatchNameSpellStack, nil)
	if err != nil {
		logger.Error("RpcCreateMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}
	logger.Info("RpcCreateMatch [User:%s]: Created match %s", userID, matchID)
	return matchID, nil
}

// RejoinTokenRequest asks for a signed token to re-enter a running match.
type RejoinTokenRequest struct {
	MatchID string `json:"match_id"`
}

// RejoinTokenResponse carries the signed token.
type RejoinTokenResponse struct {
	Token string `json:"token"`
}

// RpcRejoinToken mints a rejoin token binding the calling user to a match.
// The match handler verifies it on join attempts while a round is running.
func RpcRejoinToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("user id missing from context", 16) // UNAUTHENTICATED
	}

	var request RejoinTokenRequest
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}
	if request.MatchID == "" {
		return "", runtime.NewError("match_id is required", 3)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	tokens := app.NewTokenService(env["spellstack_session_secret"], "spellstack", 0)

	token, err := tokens.GenerateRejoinToken(userID, request.MatchID)
	if err != nil {
		logger.Error("RpcRejoinToken [User:%s]: %v", userID, err)
		return "", runtime.NewError("failed to mint rejoin token", 13) // INTERNAL
	}

	data, _ := json.Marshal(RejoinTokenResponse{Token: token})
	return string(data), nil
}
