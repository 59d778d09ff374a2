package domain

// Pawn is a single piece owned by a player. Cells reference pawns but never
// own them; a pawn sits on at most one cell at a time.
type Pawn struct {
	code       string
	playerCode string
	dead       bool
}

// NewPawn creates a live pawn. code is the display id (e.g. "R2") and
// playerCode identifies the owning player.
func NewPawn(code, playerCode string) *Pawn {
	return &Pawn{code: code, playerCode: playerCode}
}

func (p *Pawn) Code() string       { return p.code }
func (p *Pawn) PlayerCode() string { return p.playerCode }
func (p *Pawn) IsDead() bool       { return p.dead }

// SetDead marks the pawn as captured. There is no way back.
func (p *Pawn) SetDead() {
	p.dead = true
}
