package domain

import "fmt"

// LowestAvailableSeat returns the first free seat index (0-based), or -1 if full.
func LowestAvailableSeat(seats *[4]string) int {
	for i, userID := range seats {
		if userID == "" {
			return i
		}
	}
	return -1
}

// OpenSeats counts empty seats.
func OpenSeats(seats *[4]string) int {
	n := 0
	for _, userID := range seats {
		if userID == "" {
			n++
		}
	}
	return n
}

// LabelPayload holds the values advertised in the match label.
type LabelPayload struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// ComputeLabel derives the advertised label from seating and phase.
// Seats are only advertised as open while the match is in the lobby.
func ComputeLabel(seats *[4]string, phase Phase) LabelPayload {
	open := 0
	if phase == PhaseLobby {
		open = OpenSeats(seats)
	}
	return LabelPayload{Open: open, Game: "ludo", Phase: string(phase)}
}

// PawnCode builds the display code for a player's n-th pawn (1-based), e.g. "R2".
func PawnCode(color CellColor, n int) string {
	return fmt.Sprintf("%s%d", color.Letter(), n)
}

// NewPlayerPawns creates count live pawns for a player of the given color.
func NewPlayerPawns(userID string, color CellColor, count int) []*Pawn {
	pawns := make([]*Pawn, 0, count)
	for i := 1; i <= count; i++ {
		pawns = append(pawns, NewPawn(PawnCode(color, i), userID))
	}
	return pawns
}

// CapturedCodes returns the display codes of captured pawns.
func CapturedCodes(pawns []*Pawn) []string {
	codes := make([]string, len(pawns))
	for i, p := range pawns {
		codes[i] = p.Code()
	}
	return codes
}
