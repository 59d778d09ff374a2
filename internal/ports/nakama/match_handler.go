package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"ludo/internal/app"
	"ludo/internal/config"
	"ludo/internal/domain"
	"ludo/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
// Nakama runs MatchLoop for one match on a single goroutine, so every move
// (remove, add, capture) completes before the next message is looked at.
type MatchState struct {
	Seats          [4]string                   `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat      int                         `json:"owner_seat"` // -1 when nobody owns the lobby
	Tick           int64                       `json:"tick"`
	Presences      map[string]runtime.Presence `json:"-"` // userID -> presence for targeted messaging
	App            *app.Service                `json:"-"`
	Game           *domain.Game                `json:"-"` // nil while in lobby
	Economy        ports.EconomyPort           `json:"-"`
	Layout         domain.Layout               `json:"layout"`
	PawnsPerPlayer int                         `json:"pawns_per_player"`
	CaptureReward  int64                       `json:"capture_reward"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	return domain.OpenSeats(&ms.Seats)
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return len(ms.Seats) - ms.GetOpenSeatsCount()
}

// seatOf returns the seat index held by userID or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserID := range ms.Seats {
		if seatUserID != "" && seatUserID == userID {
			return i
		}
	}
	return -1
}

// seatConnected reports whether the user seated at seat has a presence.
func (ms *MatchState) seatConnected(seat int) bool {
	if seat < 0 || seat >= len(ms.Seats) || ms.Seats[seat] == "" {
		return false
	}
	_, ok := ms.Presences[ms.Seats[seat]]
	return ok
}

// releaseAbsentSeats frees every seat whose user is no longer connected and
// hands ownership to a connected seat if the owner's seat was freed.
func (ms *MatchState) releaseAbsentSeats() {
	for i := range ms.Seats {
		if ms.Seats[i] != "" && !ms.seatConnected(i) {
			ms.Seats[i] = ""
		}
	}
	if ms.OwnerSeat < 0 || ms.Seats[ms.OwnerSeat] == "" {
		ms.OwnerSeat = findFirstConnectedSeat(ms)
	}
}

func (ms *MatchState) phase() domain.Phase {
	if ms.Game != nil {
		return ms.Game.Phase
	}
	return domain.PhaseLobby
}

// findFirstConnectedSeat returns the first seat whose user is present, or -1.
func findFirstConnectedSeat(state *MatchState) int {
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		if _, ok := state.Presences[userID]; ok {
			return i
		}
	}
	return -1
}

type matchHandler struct{}

func newMatchHandler() *matchHandler {
	return &matchHandler{}
}

// newMatchState builds lobby state from the loaded config and runtime env overrides.
func newMatchState(env map[string]string, economy ports.EconomyPort) *MatchState {
	board := config.GetBoardLayout()
	state := &MatchState{
		OwnerSeat:      -1,
		Tick:           time.Now().Unix(),
		Presences:      make(map[string]runtime.Presence),
		App:            app.NewService(nil),
		Economy:        economy,
		Layout:         domain.Layout{TrackLength: board.TrackLength, HomeStretchLength: board.HomeStretchLength},
		PawnsPerPlayer: config.GetPawnsPerPlayer(),
		CaptureReward:  config.GetCaptureReward(),
	}

	if val, ok := env[envCaptureReward]; ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil && i >= 0 {
			state.CaptureReward = i
		}
	}
	if val, ok := env[envPawnsPerPlayer]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.PawnsPerPlayer = i
		}
	}
	return state
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig(configPath); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	state := newMatchState(env, NewNakamaEconomyAdapter(nk))

	label, err := encodeLabel(domain.ComputeLabel(&state.Seats, domain.PhaseLobby))
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Seated players may always come back.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Game != nil {
		return state, false, "match_in_progress"
	}
	if matchState.GetOpenSeatsCount() == 0 {
		return state, false, "match_full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if seat := matchState.seatOf(userID); seat >= 0 {
			logger.Debug("MatchJoin: User %s rejoined seat %d.", userID, seat)
			continue
		}

		seat := domain.LowestAvailableSeat(&matchState.Seats)
		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", userID)
			continue
		}
		matchState.Seats[seat] = userID
		logger.Debug("MatchJoin: User %s took seat %d.", userID, seat)
	}

	if matchState.OwnerSeat < 0 {
		matchState.OwnerSeat = findFirstConnectedSeat(matchState)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)
	if matchState.Game != nil {
		mh.broadcastBoard(matchState, dispatcher, logger)
	}

	return matchState
}

// MatchLeave is called when one or more players leave the match.
// Seats are freed in the lobby; during a game the seat is kept for a rejoin
// and a pending turn is passed on.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		seat := matchState.seatOf(userID)
		if seat < 0 {
			continue
		}

		if matchState.Game == nil {
			matchState.Seats[seat] = ""
			logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
		} else if matchState.Game.CurrentTurn == seat {
			events, err := matchState.App.PassTurn(matchState.Game, seat)
			if err != nil {
				logger.Warn("MatchLeave: Could not pass turn for %s: %v", userID, err)
			}
			mh.dispatchEvents(ctx, matchState, dispatcher, logger, events)
		}

		if matchState.OwnerSeat == seat {
			matchState.OwnerSeat = -1
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no connected players.")
		return nil
	}

	if matchState.OwnerSeat < 0 {
		matchState.OwnerSeat = findFirstConnectedSeat(matchState)
		logger.Debug("MatchLeave: Owner set to seat %d.", matchState.OwnerSeat)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

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
		case OpMovePawn:
			mh.handleMovePawn(ctx, matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(ctx, matchState, dispatcher, logger, msg)
		case OpEndGame:
			mh.handleEndGame(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, 409, "game already started")
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the match owner can start the game")
		return
	}

	game, events, err := state.App.StartGame(state.Seats[:], state.Layout, state.PawnsPerPlayer)
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	game.IsActive = state.seatConnected
	state.Game = game

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastMatchState(state, dispatcher, logger)
	mh.broadcastBoard(state, dispatcher, logger)

	logger.Info("StartGame: Game started with %d players.", len(game.Players))
}

func (mh *matchHandler) handleMovePawn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handleMovePawn: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrNotPlaying.Error())
		return
	}

	var request MovePawnRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Warn("handleMovePawn: Invalid MovePawnRequest from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid move request")
		return
	}

	senderSeat := state.seatOf(senderID)
	events, err := state.App.MovePawn(state.Game, senderSeat, request.PawnCode, request.CellID)
	if err != nil {
		logger.Warn("handleMovePawn: User %s (seat %d) failed to move %s to %d: %v", senderID, senderSeat, request.PawnCode, request.CellID, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	mh.broadcastBoard(state, dispatcher, logger)
}

func (mh *matchHandler) handlePassTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		logger.Warn("handlePassTurn: Game not started.")
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrNotPlaying.Error())
		return
	}

	senderSeat := state.seatOf(senderID)
	events, err := state.App.PassTurn(state.Game, senderSeat)
	if err != nil {
		logger.Warn("handlePassTurn: User %s (seat %d) failed to pass turn: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// handleEndGame lets the owner close the game; deciding the winner happens outside this module.
func (mh *matchHandler) handleEndGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrNotPlaying.Error())
		return
	}
	if state.seatOf(senderID) != state.OwnerSeat {
		logger.Warn("handleEndGame: User %s is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the match owner can end the game")
		return
	}

	events, err := state.App.EndGame(state.Game)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

// errorCode maps app/domain errors to the code sent in GameErrorMessage.
func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrNotYourTurn):
		return 403
	case errors.Is(err, app.ErrNotPlaying):
		return 409
	case errors.Is(err, app.ErrUnknownPlayer), errors.Is(err, app.ErrUnknownPawn), errors.Is(err, domain.ErrUnknownCell):
		return 404
	default:
		return 400
	}
}

func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var credited int64
	switch ev.Kind {
	case app.EventPawnsCaptured:
		p := ev.Payload.(app.PawnsCapturedPayload)
		logger.Info("Capture: seat %d took %v on cell %d", p.Seat, p.Captured, p.CellID)
		credited = mh.payCaptureReward(ctx, state, logger, p)
	case app.EventGameEnded:
		// Back to the lobby. Connected players keep their seats; seats held
		// for a rejoin are released.
		defer func() {
			state.Game = nil
			state.releaseAbsentSeats()
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastMatchState(state, dispatcher, logger)
		}()
	}

	opCode, data, ok, err := encodeEvent(ev, credited)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events must not leak to everyone when the targets are offline.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

// payCaptureReward credits the capturing player and returns the amount paid.
func (mh *matchHandler) payCaptureReward(ctx context.Context, state *MatchState, logger runtime.Logger, p app.PawnsCapturedPayload) int64 {
	if state.Economy == nil || state.CaptureReward <= 0 {
		return 0
	}
	update := ports.WalletUpdate{
		UserID: p.UserID,
		Amount: state.CaptureReward * int64(len(p.Captured)),
		Metadata: map[string]interface{}{
			"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
			"reason":   "capture_reward",
			"captured": p.Captured,
		},
	}
	if err := state.Economy.UpdateBalances(ctx, []ports.WalletUpdate{update}); err != nil {
		logger.Error("Failed to pay capture reward to %s: %v", p.UserID, err)
		return 0
	}
	return update.Amount
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make([]PlayerMessage, 0, len(state.Seats))
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}

		displayName := userID
		if p, ok := state.Presences[userID]; ok && p.GetUsername() != "" {
			displayName = p.GetUsername()
		}

		pm := PlayerMessage{
			UserID:      userID,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			DisplayName: displayName,
		}
		if state.Game != nil {
			if pl, ok := state.Game.Players[userID]; ok {
				pm.Color = pl.Color.String()
				pm.AlivePawns = pl.AlivePawns()
			}
		}
		players = append(players, pm)
	}

	snapshot := MatchStateMessage{
		Seats:     state.Seats,
		OwnerSeat: state.OwnerSeat,
		Phase:     string(state.phase()),
		Tick:      state.Tick,
		Players:   players,
	}
	mh.broadcastJSON(dispatcher, logger, OpMatchState, snapshot, nil)
}

// broadcastBoard sends the occupied cells so displays can redraw.
func (mh *matchHandler) broadcastBoard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		return
	}
	msg := BoardStateMessage{
		CurrentTurnSeat: state.Game.CurrentTurn,
		Cells:           state.Game.Board.Snapshot(),
	}
	mh.broadcastJSON(dispatcher, logger, OpBoardState, msg, nil)
}

// sendError sends a GameErrorMessage to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	mh.broadcastJSON(dispatcher, logger, OpGameError, GameErrorMessage{Code: code, Message: message}, []runtime.Presence{presence})
}

func (mh *matchHandler) broadcastJSON(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, msg any, presences []runtime.Presence) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to marshal message for opcode %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, presences, nil, true); err != nil {
		logger.Error("Failed to broadcast opcode %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(domain.ComputeLabel(&state.Seats, state.phase()))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
