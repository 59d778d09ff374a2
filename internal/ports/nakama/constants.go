package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameLudo is the authoritative match handler name registered with Nakama.
	MatchNameLudo = "ludo_match"

	// configPath is resolved relative to the Nakama runtime data directory.
	configPath = "data/game_config.json"

	tickRate = 5
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpMovePawn  int64 = 2
	OpPassTurn  int64 = 3
	OpEndGame   int64 = 4

	// Server -> Client events
	OpMatchState    int64 = 101
	OpGameStarted   int64 = 103
	OpPawnMoved     int64 = 105
	OpTurnPassed    int64 = 106
	OpGameEnded     int64 = 107
	OpPawnsCaptured int64 = 108
	OpBoardState    int64 = 109
	OpGameError     int64 = 110
)

// Runtime env keys that override the game config per deployment.
const (
	envCaptureReward  = "ludo_capture_reward"
	envPawnsPerPlayer = "ludo_pawns_per_player"
)
