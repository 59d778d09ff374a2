package domain

import (
	"reflect"
	"testing"
)

func TestCanKill(t *testing.T) {
	tests := []struct {
		name     string
		color    CellColor
		cellType CellType
		want     bool
	}{
		{name: "white open", color: White, cellType: Open, want: true},
		{name: "white end", color: White, cellType: End, want: false},
		{name: "blue open", color: Blue, cellType: Open, want: false},
		{name: "red open", color: Red, cellType: Open, want: false},
		{name: "green end", color: Green, cellType: End, want: false},
		{name: "yellow end", color: Yellow, cellType: End, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCell(tt.color, tt.cellType).CanKill(); got != tt.want {
				t.Fatalf("CanKill() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestKillPawns_CapturesOpposingPawnsOnSharedTrack(t *testing.T) {
	cell := NewCell(White, Open)
	r1 := NewPawn("R1", "red")
	b2 := NewPawn("B2", "blue")
	g3 := NewPawn("G3", "green")

	cell.AddPawn(r1)
	cell.AddPawn(b2)
	cell.AddPawn(g3)
	killed := cell.KillPawns(g3)

	if got, want := cell.PawnCodes(), []string{"G3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("occupants = %v, want %v", got, want)
	}
	if !r1.IsDead() || !b2.IsDead() {
		t.Fatalf("expected R1 and B2 dead, got R1=%t B2=%t", r1.IsDead(), b2.IsDead())
	}
	if g3.IsDead() {
		t.Fatalf("arriving pawn must survive")
	}
	if got, want := CapturedCodes(killed), []string{"R1", "B2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("killed = %v, want %v", got, want)
	}
}

func TestKillPawns_DoesNotSkipAdjacentVictims(t *testing.T) {
	cell := NewCell(White, Open)
	victims := []*Pawn{NewPawn("R1", "red"), NewPawn("R2", "red"), NewPawn("B1", "blue"), NewPawn("B2", "blue")}
	for _, p := range victims {
		cell.AddPawn(p)
	}
	y1 := NewPawn("Y1", "yellow")
	cell.AddPawn(y1)

	killed := cell.KillPawns(y1)

	if len(killed) != len(victims) {
		t.Fatalf("killed %d pawns, want %d", len(killed), len(victims))
	}
	for _, p := range victims {
		if !p.IsDead() {
			t.Fatalf("pawn %s should be dead", p.Code())
		}
	}
	if got, want := cell.PawnCodes(), []string{"Y1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("occupants = %v, want %v", got, want)
	}
}

func TestKillPawns_SafeCellsNeverCapture(t *testing.T) {
	cells := []*Cell{
		NewCell(Blue, Open),
		NewCell(Red, Open),
		NewCell(Green, End),
		NewCell(White, End),
	}
	for _, cell := range cells {
		t.Run(cell.Color().String()+"-"+cell.Type().String(), func(t *testing.T) {
			r1 := NewPawn("R1", "red")
			b1 := NewPawn("B1", "blue")
			cell.AddPawn(r1)
			cell.AddPawn(b1)

			if killed := cell.KillPawns(b1); len(killed) != 0 {
				t.Fatalf("expected no captures, got %v", CapturedCodes(killed))
			}
			if r1.IsDead() || b1.IsDead() {
				t.Fatalf("no pawn should die on a safe cell")
			}
			if got, want := cell.PawnCodes(), []string{"R1", "B1"}; !reflect.DeepEqual(got, want) {
				t.Fatalf("occupants = %v, want %v", got, want)
			}
		})
	}
}

func TestKillPawns_EndCellKeepsStack(t *testing.T) {
	cell := NewCell(Blue, End)
	bl1 := NewPawn("B1", "blue")
	bl2 := NewPawn("B2", "blue")
	cell.AddPawn(bl1)
	cell.AddPawn(bl2)

	cell.KillPawns(bl2)

	if got, want := cell.PawnCodes(), []string{"B1", "B2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("occupants = %v, want %v", got, want)
	}
	if bl1.IsDead() || bl2.IsDead() {
		t.Fatalf("no deaths expected on End cell")
	}
}

func TestKillPawns_SamePlayerStacksSafely(t *testing.T) {
	cell := NewCell(White, Open)
	r1 := NewPawn("R1", "red")
	r2 := NewPawn("R2", "red")
	r3 := NewPawn("R3", "red")
	cell.AddPawn(r1)
	cell.AddPawn(r2)
	cell.AddPawn(r3)

	if killed := cell.KillPawns(r3); len(killed) != 0 {
		t.Fatalf("expected no captures, got %v", CapturedCodes(killed))
	}
	if got, want := cell.PawnCodes(), []string{"R1", "R2", "R3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("occupants = %v, want %v", got, want)
	}
}

func TestKillPawns_Idempotent(t *testing.T) {
	cell := NewCell(White, Open)
	r1 := NewPawn("R1", "red")
	g1 := NewPawn("G1", "green")
	g2 := NewPawn("G2", "green")
	cell.AddPawn(r1)
	cell.AddPawn(g1)
	cell.AddPawn(g2)

	first := cell.KillPawns(g2)
	after := cell.PawnCodes()
	second := cell.KillPawns(g2)

	if len(first) != 1 || len(second) != 0 {
		t.Fatalf("captures = %d then %d, want 1 then 0", len(first), len(second))
	}
	if got := cell.PawnCodes(); !reflect.DeepEqual(got, after) {
		t.Fatalf("second KillPawns changed occupants: %v -> %v", after, got)
	}
}

func TestKillPawns_AbsentArrivingPawnIsNoop(t *testing.T) {
	cell := NewCell(White, Open)
	r1 := NewPawn("R1", "red")
	r2 := NewPawn("R2", "red")
	cell.AddPawn(r1)
	cell.AddPawn(r2)

	stranger := NewPawn("B1", "blue")
	if killed := cell.KillPawns(stranger); len(killed) != 0 {
		t.Fatalf("expected no captures, got %v", CapturedCodes(killed))
	}
	if r1.IsDead() || r2.IsDead() || cell.Len() != 2 {
		t.Fatalf("occupants changed: %v", cell.PawnCodes())
	}
	if cell.Has(stranger) {
		t.Fatalf("stranger should not be an occupant")
	}
}

func TestAddThenRemoveRestoresOccupants(t *testing.T) {
	cell := NewCell(White, Open)
	a := NewPawn("R1", "red")
	b := NewPawn("B1", "blue")
	c := NewPawn("G1", "green")
	cell.AddPawn(a)
	cell.AddPawn(b)
	before := cell.Pawns()

	cell.AddPawn(c)
	cell.RemovePawn(c)

	if got := cell.Pawns(); !reflect.DeepEqual(got, before) {
		t.Fatalf("occupants = %v, want %v", cell.PawnCodes(), []string{"R1", "B1"})
	}
}

func TestRemovePawn(t *testing.T) {
	cell := NewCell(Red, Open)
	a := NewPawn("R1", "red")
	b := NewPawn("R2", "red")
	c := NewPawn("R3", "red")
	cell.AddPawn(a)
	cell.AddPawn(b)
	cell.AddPawn(c)

	cell.RemovePawn(b)
	if got, want := cell.PawnCodes(), []string{"R1", "R3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("occupants = %v, want %v", got, want)
	}

	cell.RemovePawn(NewPawn("R2", "red"))
	if cell.Len() != 2 {
		t.Fatalf("removing an absent pawn changed occupants: %v", cell.PawnCodes())
	}
}

func TestPawnsReturnsCopy(t *testing.T) {
	cell := NewCell(White, Open)
	cell.AddPawn(NewPawn("R1", "red"))

	pawns := cell.Pawns()
	pawns[0] = NewPawn("X1", "x")

	if got := cell.PawnCodes(); got[0] != "R1" {
		t.Fatalf("mutating Pawns() result leaked into cell: %v", got)
	}
}
