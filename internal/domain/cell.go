package domain

// Cell is one addressable board position. Color and type are fixed at
// construction; occupants are kept in arrival order.
//
// Cell does not validate ownership on insertion. Callers decide whether a
// pawn may enter (see Board.CanEnter) and Cell only applies the capture rule.
type Cell struct {
	color     CellColor
	cellType  CellType
	occupants []*Pawn
}

// NewCell returns an empty cell.
func NewCell(color CellColor, cellType CellType) *Cell {
	return &Cell{color: color, cellType: cellType}
}

func (c *Cell) Color() CellColor { return c.color }
func (c *Cell) Type() CellType   { return c.cellType }

// AddPawn appends p to the occupants. Preventing duplicate insertion is the
// caller's job.
func (c *Cell) AddPawn(p *Pawn) {
	c.occupants = append(c.occupants, p)
}

// RemovePawn drops p from the occupants. Removing an absent pawn is a no-op.
func (c *Cell) RemovePawn(p *Pawn) {
	for i, occupant := range c.occupants {
		if occupant == p {
			c.occupants = append(c.occupants[:i], c.occupants[i+1:]...)
			return
		}
	}
}

// CanKill reports whether arriving on this cell can capture. Only the
// neutral shared track captures; colored cells and End cells are safe.
func (c *Cell) CanKill() bool {
	return c.cellType == Open && c.color == White
}

// KillPawns applies the capture rule for a pawn that just arrived. Every
// occupant owned by a different player is marked dead and removed; pawns of
// the arriving player stay. The captured pawns are returned in occupant
// order. Nothing happens on a cell that cannot kill, or when arriving is not
// one of the occupants.
func (c *Cell) KillPawns(arriving *Pawn) []*Pawn {
	if !c.CanKill() || !c.Has(arriving) {
		return nil
	}

	var killed []*Pawn
	kept := c.occupants[:0]
	for _, occupant := range c.occupants {
		if occupant.PlayerCode() != arriving.PlayerCode() {
			occupant.SetDead()
			killed = append(killed, occupant)
			continue
		}
		kept = append(kept, occupant)
	}
	// Nil the tail; the backing array is reused.
	for i := len(kept); i < len(c.occupants); i++ {
		c.occupants[i] = nil
	}
	c.occupants = kept

	return killed
}

// Has reports whether p is one of the occupants.
func (c *Cell) Has(p *Pawn) bool {
	for _, occupant := range c.occupants {
		if occupant == p {
			return true
		}
	}
	return false
}

// Pawns returns a copy of the occupants in arrival order.
func (c *Cell) Pawns() []*Pawn {
	out := make([]*Pawn, len(c.occupants))
	copy(out, c.occupants)
	return out
}

// PawnCodes returns the display codes of the occupants in arrival order.
func (c *Cell) PawnCodes() []string {
	codes := make([]string, 0, len(c.occupants))
	for _, p := range c.occupants {
		codes = append(codes, p.Code())
	}
	return codes
}

// Len returns the number of occupants.
func (c *Cell) Len() int {
	return len(c.occupants)
}
