package domain

import (
	"errors"
	"fmt"
)

const (
	// DefaultTrackLength is the number of shared track cells on a classic board.
	DefaultTrackLength = 52
	// DefaultHomeStretchLength is the number of colored cells before each End cell.
	DefaultHomeStretchLength = 5
)

var ErrInvalidLayout = errors.New("invalid board layout")

// Layout describes the board geometry.
type Layout struct {
	TrackLength       int
	HomeStretchLength int
}

// DefaultLayout returns the classic 52-cell board with 5-cell home stretches.
func DefaultLayout() Layout {
	return Layout{TrackLength: DefaultTrackLength, HomeStretchLength: DefaultHomeStretchLength}
}

type zone int

const (
	zoneTrack zone = iota
	zoneHomeStretch
	zoneEnd
)

// Board composes cells into the track graph. Cell ids are laid out as the
// shared track (0..TrackLength-1), then each color's home stretch, then each
// color's End cell.
type Board struct {
	layout Layout
	cells  []*Cell
	zones  []zone
}

// CellView is the read-only projection of one cell used by displays.
type CellView struct {
	ID        int      `json:"id"`
	Color     string   `json:"color"`
	Type      string   `json:"type"`
	PawnCodes []string `json:"pawns"`
}

// NewBoard builds every cell for the given layout. The track cell at each
// seat's start offset takes the seat color; all other track cells are White.
func NewBoard(layout Layout) (*Board, error) {
	if layout.TrackLength <= 0 || layout.TrackLength%len(PlayerColors) != 0 {
		return nil, fmt.Errorf("%w: track length %d must be a positive multiple of %d", ErrInvalidLayout, layout.TrackLength, len(PlayerColors))
	}
	if layout.HomeStretchLength < 0 {
		return nil, fmt.Errorf("%w: home stretch length %d is negative", ErrInvalidLayout, layout.HomeStretchLength)
	}

	total := layout.TrackLength + len(PlayerColors)*(layout.HomeStretchLength+1)
	b := &Board{
		layout: layout,
		cells:  make([]*Cell, 0, total),
		zones:  make([]zone, 0, total),
	}

	for i := 0; i < layout.TrackLength; i++ {
		color := White
		if i%b.quarter() == 0 {
			color = PlayerColors[i/b.quarter()]
		}
		b.add(NewCell(color, Open), zoneTrack)
	}
	for _, color := range PlayerColors {
		for i := 0; i < layout.HomeStretchLength; i++ {
			b.add(NewCell(color, Open), zoneHomeStretch)
		}
	}
	for _, color := range PlayerColors {
		b.add(NewCell(color, End), zoneEnd)
	}

	return b, nil
}

func (b *Board) add(c *Cell, z zone) {
	b.cells = append(b.cells, c)
	b.zones = append(b.zones, z)
}

func (b *Board) quarter() int {
	return b.layout.TrackLength / len(PlayerColors)
}

// Layout returns the geometry the board was built from.
func (b *Board) Layout() Layout { return b.layout }

// Len returns the total number of cells.
func (b *Board) Len() int { return len(b.cells) }

// Cell returns the cell with the given id.
func (b *Board) Cell(id int) (*Cell, bool) {
	if id < 0 || id >= len(b.cells) {
		return nil, false
	}
	return b.cells[id], true
}

// StartCell returns the id of the colored track cell where color enters the board.
func (b *Board) StartCell(color CellColor) int {
	if !color.IsPlayerColor() {
		return -1
	}
	return int(color) * b.quarter()
}

// HomeStretch returns the ids of color's home stretch, nearest the track first.
func (b *Board) HomeStretch(color CellColor) []int {
	if !color.IsPlayerColor() {
		return nil
	}
	first := b.layout.TrackLength + int(color)*b.layout.HomeStretchLength
	ids := make([]int, b.layout.HomeStretchLength)
	for i := range ids {
		ids[i] = first + i
	}
	return ids
}

// EndCell returns the id of color's End cell.
func (b *Board) EndCell(color CellColor) int {
	if !color.IsPlayerColor() {
		return -1
	}
	return b.layout.TrackLength + len(PlayerColors)*b.layout.HomeStretchLength + int(color)
}

// CanEnter reports whether a pawn of the given color may be placed on cell id.
// Shared track cells admit everyone; home stretch and End cells admit only
// their own color.
func (b *Board) CanEnter(id int, color CellColor) bool {
	c, ok := b.Cell(id)
	if !ok || !color.IsPlayerColor() {
		return false
	}
	if b.zones[id] == zoneTrack {
		return true
	}
	return c.Color() == color
}

// Snapshot projects every occupied cell for display, in id order.
func (b *Board) Snapshot() []CellView {
	views := make([]CellView, 0)
	for id, c := range b.cells {
		if c.Len() == 0 {
			continue
		}
		views = append(views, CellView{
			ID:        id,
			Color:     c.Color().String(),
			Type:      c.Type().String(),
			PawnCodes: c.PawnCodes(),
		})
	}
	return views
}
