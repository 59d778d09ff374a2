package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	defaultTrackLength       = 52
	defaultHomeStretchLength = 5
	defaultPawnsPerPlayer    = 4
)

// BoardConfig describes the board geometry as read from disk.
// HomeStretchLength is nil when the key is absent; 0 is a valid length.
type BoardConfig struct {
	TrackLength       int  `json:"track_length"`
	HomeStretchLength *int `json:"home_stretch_length,omitempty"`
}

// BoardLayout is the resolved board geometry with defaults applied.
type BoardLayout struct {
	TrackLength       int
	HomeStretchLength int
}

type GameConfig struct {
	Board          BoardConfig `json:"board"`
	PawnsPerPlayer int         `json:"pawns_per_player"`
	// CaptureReward is the gold credited to a player per captured pawn. Zero disables rewards.
	CaptureReward int64 `json:"capture_reward"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or nil if none was loaded.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetBoardLayout returns the configured board geometry, falling back to the
// classic board for unset or negative values.
func GetBoardLayout() BoardLayout {
	out := BoardLayout{TrackLength: defaultTrackLength, HomeStretchLength: defaultHomeStretchLength}
	if cfg == nil {
		return out
	}
	if cfg.Board.TrackLength > 0 {
		out.TrackLength = cfg.Board.TrackLength
	}
	if n := cfg.Board.HomeStretchLength; n != nil && *n >= 0 {
		out.HomeStretchLength = *n
	}
	return out
}

// GetPawnsPerPlayer returns how many pawns each player starts with.
func GetPawnsPerPlayer() int {
	if cfg == nil || cfg.PawnsPerPlayer <= 0 {
		return defaultPawnsPerPlayer
	}
	return cfg.PawnsPerPlayer
}

// GetCaptureReward returns the per-capture gold reward.
func GetCaptureReward() int64 {
	if cfg == nil || cfg.CaptureReward < 0 {
		return 0
	}
	return cfg.CaptureReward
}
