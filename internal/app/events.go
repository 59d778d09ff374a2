package app

import "ludo/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted   EventKind = "game_started"
	EventPawnMoved     EventKind = "pawn_moved"
	EventPawnsCaptured EventKind = "pawns_captured"
	EventTurnPassed    EventKind = "turn_passed"
	EventGameEnded     EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	Phase         domain.Phase
	FirstTurnSeat int
	// Colors maps seat index to the seat's color name.
	Colors map[int]string
}

type PawnMovedPayload struct {
	Seat         int
	PawnCode     string
	FromCell     int // -1 when entering from base
	ToCell       int
	NextTurnSeat int
}

type PawnsCapturedPayload struct {
	Seat     int    // capturing seat
	UserID   string // capturing player
	CellID   int
	Captured []string // captured pawn codes, in cell order
}

type TurnPassedPayload struct {
	Seat         int
	NextTurnSeat int
}

type GameEndedPayload struct {
	// Captures counts pawns captured per user over the game.
	Captures map[string]int
}
