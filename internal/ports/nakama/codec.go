package nakama

import (
	"encoding/json"

	"ludo/internal/app"
	"ludo/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// MovePawnRequest is sent by the player whose turn it is. The destination is
// computed client-side from the dice roll.
type MovePawnRequest struct {
	PawnCode string `json:"pawn_code"`
	CellID   int    `json:"cell_id"`
}

type PlayerMessage struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color,omitempty"`
	AlivePawns  int    `json:"alive_pawns"`
}

type MatchStateMessage struct {
	Seats     [4]string       `json:"seats"`
	OwnerSeat int             `json:"owner_seat"`
	Phase     string          `json:"phase"`
	Tick      int64           `json:"tick"`
	Players   []PlayerMessage `json:"players"`
}

type GameStartedMessage struct {
	FirstTurnSeat int            `json:"first_turn_seat"`
	Colors        map[int]string `json:"colors"`
}

type PawnMovedMessage struct {
	Seat         int    `json:"seat"`
	PawnCode     string `json:"pawn_code"`
	FromCell     int    `json:"from_cell"`
	ToCell       int    `json:"to_cell"`
	NextTurnSeat int    `json:"next_turn_seat"`
}

type PawnsCapturedMessage struct {
	Seat     int      `json:"seat"`
	CellID   int      `json:"cell_id"`
	Captured []string `json:"captured"`
	Reward   int64    `json:"reward"` // gold credited; 0 when nothing was paid
}

type TurnPassedMessage struct {
	Seat         int `json:"seat"`
	NextTurnSeat int `json:"next_turn_seat"`
}

type GameEndedMessage struct {
	Captures map[string]int `json:"captures"`
}

type BoardStateMessage struct {
	CurrentTurnSeat int               `json:"current_turn_seat"`
	Cells           []domain.CellView `json:"cells"`
}

type GameErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// encodeLabel renders the match label Nakama indexes for match listing.
func encodeLabel(label domain.LabelPayload) (string, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		"open":  label.Open,
		"game":  label.Game,
		"phase": label.Phase,
	})
	if err != nil {
		return "", err
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// encodeEvent maps an app event to its opcode and wire payload.
// ok is false for event kinds that are not sent to clients. credited is the
// gold actually paid for a capture event.
func encodeEvent(ev app.Event, credited int64) (opCode int64, data []byte, ok bool, err error) {
	var msg any
	switch ev.Kind {
	case app.EventGameStarted:
		p := ev.Payload.(app.GameStartedPayload)
		opCode, msg = OpGameStarted, GameStartedMessage{FirstTurnSeat: p.FirstTurnSeat, Colors: p.Colors}
	case app.EventPawnMoved:
		p := ev.Payload.(app.PawnMovedPayload)
		opCode, msg = OpPawnMoved, PawnMovedMessage{
			Seat:         p.Seat,
			PawnCode:     p.PawnCode,
			FromCell:     p.FromCell,
			ToCell:       p.ToCell,
			NextTurnSeat: p.NextTurnSeat,
		}
	case app.EventPawnsCaptured:
		p := ev.Payload.(app.PawnsCapturedPayload)
		opCode, msg = OpPawnsCaptured, PawnsCapturedMessage{
			Seat:     p.Seat,
			CellID:   p.CellID,
			Captured: p.Captured,
			Reward:   credited,
		}
	case app.EventTurnPassed:
		p := ev.Payload.(app.TurnPassedPayload)
		opCode, msg = OpTurnPassed, TurnPassedMessage{Seat: p.Seat, NextTurnSeat: p.NextTurnSeat}
	case app.EventGameEnded:
		p := ev.Payload.(app.GameEndedPayload)
		opCode, msg = OpGameEnded, GameEndedMessage{Captures: p.Captures}
	default:
		return 0, nil, false, nil
	}

	data, err = json.Marshal(msg)
	if err != nil {
		return 0, nil, false, err
	}
	return opCode, data, true, nil
}
