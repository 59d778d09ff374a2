package config

import "testing"

// The loader runs once per process, so defaults and loading share one test.
func TestLoadGameConfig(t *testing.T) {
	if GetGameConfig() != nil {
		t.Fatalf("expected no config before loading")
	}
	if got := GetBoardLayout(); got.TrackLength != 52 || got.HomeStretchLength != 5 {
		t.Fatalf("default board = %+v", got)
	}
	if got := GetPawnsPerPlayer(); got != 4 {
		t.Fatalf("default pawns per player = %d, want 4", got)
	}
	if got := GetCaptureReward(); got != 0 {
		t.Fatalf("default capture reward = %d, want 0", got)
	}

	if err := LoadGameConfig("testdata/game_config.json"); err != nil {
		t.Fatalf("LoadGameConfig() error: %v", err)
	}

	board := GetBoardLayout()
	if board.TrackLength != 40 {
		t.Fatalf("track length = %d, want 40", board.TrackLength)
	}
	if board.HomeStretchLength != 0 {
		t.Fatalf("home stretch length = %d, want configured 0", board.HomeStretchLength)
	}
	if got := GetPawnsPerPlayer(); got != 2 {
		t.Fatalf("pawns per player = %d, want 2", got)
	}
	if got := GetCaptureReward(); got != 25 {
		t.Fatalf("capture reward = %d, want 25", got)
	}

	// Later calls return the first result.
	if err := LoadGameConfig("testdata/missing.json"); err != nil {
		t.Fatalf("second LoadGameConfig() error: %v", err)
	}
}

func TestGetBoardLayout(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()

	zero, five, negative := 0, 5, -1
	tests := []struct {
		name  string
		board BoardConfig
		want  BoardLayout
	}{
		{name: "Unset", board: BoardConfig{}, want: BoardLayout{TrackLength: 52, HomeStretchLength: 5}},
		{name: "ZeroStretch", board: BoardConfig{TrackLength: 28, HomeStretchLength: &zero}, want: BoardLayout{TrackLength: 28, HomeStretchLength: 0}},
		{name: "Explicit", board: BoardConfig{TrackLength: 40, HomeStretchLength: &five}, want: BoardLayout{TrackLength: 40, HomeStretchLength: 5}},
		{name: "Negative", board: BoardConfig{TrackLength: -4, HomeStretchLength: &negative}, want: BoardLayout{TrackLength: 52, HomeStretchLength: 5}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg = &GameConfig{Board: test.board}
			if got := GetBoardLayout(); got != test.want {
				t.Fatalf("GetBoardLayout() = %+v, want %+v", got, test.want)
			}
		})
	}
}
