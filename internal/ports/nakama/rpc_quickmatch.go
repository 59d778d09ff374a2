package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// quickMatchQuery selects Ludo lobbies that still have at least one free seat.
const quickMatchQuery = "+label.game:ludo +label.phase:lobby +label.open:>=1"

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

// rpcQuickMatch returns an open lobby, creating one when none is listed.
// Seat assignment happens in MatchJoin.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := 3

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	resp := QuickMatchResponse{}
	if len(matches) > 0 {
		resp.MatchID = matches[0].GetMatchId()
		logger.Info("rpcQuickMatch [User:%s]: Found existing match %s", userID, resp.MatchID)
	} else {
		matchID, err := nk.MatchCreate(ctx, MatchNameLudo, map[string]interface{}{})
		if err != nil {
			logger.Error("rpcQuickMatch [User:%s]: Failed to create match: %v", userID, err)
			return "", err
		}
		resp.MatchID = matchID
		resp.IsNew = true
		logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userID, matchID)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quick match response: %w", err)
	}
	return string(b), nil
}
