package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby indicates the match is waiting for players.
	PhaseLobby Phase = "lobby"
	// PhasePlaying indicates the match is actively in progress.
	PhasePlaying Phase = "playing"
	// PhaseEnded indicates the match has finished.
	PhaseEnded Phase = "ended"
)

// Player holds the domain state for a player in a match.
type Player struct {
	UserID string
	Seat   int // 0-based
	Color  CellColor
	Pawns  []*Pawn
}

// Pawn returns the player's pawn with the given code.
func (p *Player) Pawn(code string) (*Pawn, bool) {
	for _, pawn := range p.Pawns {
		if pawn.Code() == code {
			return pawn, true
		}
	}
	return nil, false
}

// AlivePawns counts pawns that have not been captured.
func (p *Player) AlivePawns() int {
	n := 0
	for _, pawn := range p.Pawns {
		if !pawn.IsDead() {
			n++
		}
	}
	return n
}

// Game captures the domain state for a single game instance.
type Game struct {
	Phase       Phase
	Board       *Board
	Players     map[string]*Player // userID -> player
	Seats       [4]string          // seat -> userID, "" when empty
	CurrentTurn int                // seat index
	Captures    map[string]int     // userID -> pawns captured this game

	// IsActive reports whether the player at seat can currently act.
	// Nil treats every seated player as active.
	IsActive func(seat int) bool

	positions map[string]int // pawn code -> cell id; absent means at base
}

// NewGame returns a playing game on the given board.
func NewGame(board *Board) *Game {
	return &Game{
		Phase:     PhasePlaying,
		Board:     board,
		Players:   make(map[string]*Player),
		Captures:  make(map[string]int),
		positions: make(map[string]int),
	}
}

// PlayerAtSeat returns the player seated at seat.
func (g *Game) PlayerAtSeat(seat int) (*Player, bool) {
	if seat < 0 || seat >= len(g.Seats) || g.Seats[seat] == "" {
		return nil, false
	}
	pl, ok := g.Players[g.Seats[seat]]
	return pl, ok
}

// Position returns the cell id a pawn currently occupies. ok is false when
// the pawn is at its home base.
func (g *Game) Position(pawnCode string) (int, bool) {
	id, ok := g.positions[pawnCode]
	return id, ok
}

// SetPosition records that a pawn now occupies cell id.
func (g *Game) SetPosition(pawnCode string, id int) {
	g.positions[pawnCode] = id
}

// ClearPosition returns a pawn to its home base.
func (g *Game) ClearPosition(pawnCode string) {
	delete(g.positions, pawnCode)
}

// NextSeat returns the next seat after seat whose player still has a live
// pawn and is active, wrapping around. It returns seat itself when nobody
// else qualifies.
func (g *Game) NextSeat(seat int) int {
	n := len(g.Seats)
	for i := 1; i <= n; i++ {
		next := (seat + i) % n
		if pl, ok := g.PlayerAtSeat(next); ok && pl.AlivePawns() > 0 && g.active(next) {
			return next
		}
	}
	return seat
}

func (g *Game) active(seat int) bool {
	return g.IsActive == nil || g.IsActive(seat)
}
