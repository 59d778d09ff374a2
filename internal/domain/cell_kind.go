package domain

// CellColor is the color assigned to a board cell. The four player colors
// mark a player's start square, home stretch and End cell; White marks the
// shared track.
type CellColor int

const (
	Blue CellColor = iota
	Red
	Green
	Yellow
	White
)

// PlayerColors lists the player colors in seat order.
var PlayerColors = [4]CellColor{Blue, Red, Green, Yellow}

func (c CellColor) String() string {
	switch c {
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case White:
		return "white"
	default:
		return "unknown"
	}
}

// Letter returns the single-letter prefix used in pawn codes ("B", "R", ...).
func (c CellColor) Letter() string {
	switch c {
	case Blue:
		return "B"
	case Red:
		return "R"
	case Green:
		return "G"
	case Yellow:
		return "Y"
	default:
		return "W"
	}
}

// IsPlayerColor reports whether c belongs to a seat rather than the shared track.
func (c CellColor) IsPlayerColor() bool {
	return c >= Blue && c <= Yellow
}

// SeatColor returns the color for a 0-based seat index.
func SeatColor(seat int) (CellColor, bool) {
	if seat < 0 || seat >= len(PlayerColors) {
		return White, false
	}
	return PlayerColors[seat], true
}

// CellType separates ordinary track cells from a player's terminal cell.
type CellType int

const (
	// Open cells can be traversed and shared.
	Open CellType = iota
	// End is a player's finish cell, reached only by that color's pawns.
	End
)

func (t CellType) String() string {
	switch t {
	case Open:
		return "open"
	case End:
		return "end"
	default:
		return "unknown"
	}
}
