package domain

import "errors"

var (
	ErrPawnDead           = errors.New("pawn has been captured")
	ErrUnknownCell        = errors.New("cell not found")
	ErrIllegalDestination = errors.New("pawn cannot enter cell")
	ErrNoMove             = errors.New("pawn is already on cell")
)

// ValidateMove checks that pawn, owned by pl, may be placed on cell dest.
// Reaching dest (dice, path) is decided by the caller; this only covers
// what the board itself forbids.
func ValidateMove(g *Game, pl *Player, pawn *Pawn, dest int) error {
	if pawn.IsDead() {
		return ErrPawnDead
	}
	if _, ok := g.Board.Cell(dest); !ok {
		return ErrUnknownCell
	}
	if !g.Board.CanEnter(dest, pl.Color) {
		return ErrIllegalDestination
	}
	if from, ok := g.Position(pawn.Code()); ok && from == dest {
		return ErrNoMove
	}
	return nil
}

// PlacePawn moves pawn from its current cell (if any) to dest and runs the
// capture rule there. Captured pawns are sent back to base. The whole
// sequence must run without another move interleaving on the same board.
func PlacePawn(g *Game, pawn *Pawn, dest int) (from int, killed []*Pawn) {
	from = -1
	if id, ok := g.Position(pawn.Code()); ok {
		from = id
		if src, ok := g.Board.Cell(id); ok {
			src.RemovePawn(pawn)
		}
	}

	cell, _ := g.Board.Cell(dest)
	cell.AddPawn(pawn)
	g.SetPosition(pawn.Code(), dest)

	killed = cell.KillPawns(pawn)
	for _, victim := range killed {
		g.ClearPosition(victim.Code())
	}
	return from, killed
}
