package app

import (
	"errors"
	"math/rand"
	"time"

	"ludo/internal/domain"
)

// Service contains Ludo use-cases operating on domain state. It is the move
// executor: each call runs to completion before the next one starts.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying    = errors.New("match not in playing phase")
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrUnknownPlayer = errors.New("player not found")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrUnknownPawn   = errors.New("pawn not found")
)

// StartGame builds a board and seats the given players on it.
// playerIDs are in seat order, with empty strings for empty seats. Seat i
// plays domain.PlayerColors[i]; all pawns start at base.
func (s *Service) StartGame(playerIDs []string, layout domain.Layout, pawnsPerPlayer int) (*domain.Game, []Event, error) {
	board, err := domain.NewBoard(layout)
	if err != nil {
		return nil, nil, err
	}

	game := domain.NewGame(board)
	colors := make(map[int]string)
	var occupied []int
	for i, userID := range playerIDs {
		if userID == "" {
			continue
		}
		color, ok := domain.SeatColor(i)
		if !ok {
			break
		}
		game.Seats[i] = userID
		game.Players[userID] = &domain.Player{
			UserID: userID,
			Seat:   i,
			Color:  color,
			Pawns:  domain.NewPlayerPawns(userID, color, pawnsPerPlayer),
		}
		colors[i] = color.String()
		occupied = append(occupied, i)
	}

	if len(occupied) < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}

	game.CurrentTurn = occupied[s.rng.Intn(len(occupied))]

	events := []Event{
		{
			Kind: EventGameStarted,
			Payload: GameStartedPayload{
				Phase:         game.Phase,
				FirstTurnSeat: game.CurrentTurn,
				Colors:        colors,
			},
		},
	}
	return game, events, nil
}

// MovePawn places the seat's pawn on cellID and applies the capture rule.
// The destination is chosen by the caller; the move is rejected only when
// the board forbids it or it is not the seat's turn.
func (s *Service) MovePawn(game *domain.Game, seat int, pawnCode string, cellID int) ([]Event, error) {
	pl, err := s.actor(game, seat)
	if err != nil {
		return nil, err
	}
	pawn, ok := pl.Pawn(pawnCode)
	if !ok {
		return nil, ErrUnknownPawn
	}
	if err := domain.ValidateMove(game, pl, pawn, cellID); err != nil {
		return nil, err
	}

	from, killed := domain.PlacePawn(game, pawn, cellID)
	game.CurrentTurn = game.NextSeat(seat)

	events := []Event{
		{
			Kind: EventPawnMoved,
			Payload: PawnMovedPayload{
				Seat:         seat,
				PawnCode:     pawnCode,
				FromCell:     from,
				ToCell:       cellID,
				NextTurnSeat: game.CurrentTurn,
			},
		},
	}

	if len(killed) > 0 {
		game.Captures[pl.UserID] += len(killed)
		events = append(events, Event{
			Kind: EventPawnsCaptured,
			Payload: PawnsCapturedPayload{
				Seat:     seat,
				UserID:   pl.UserID,
				CellID:   cellID,
				Captured: domain.CapturedCodes(killed),
			},
		})
	}

	return events, nil
}

// PassTurn hands the turn to the next seat without moving.
func (s *Service) PassTurn(game *domain.Game, seat int) ([]Event, error) {
	if _, err := s.actor(game, seat); err != nil {
		return nil, err
	}

	game.CurrentTurn = game.NextSeat(seat)
	return []Event{
		{
			Kind:    EventTurnPassed,
			Payload: TurnPassedPayload{Seat: seat, NextTurnSeat: game.CurrentTurn},
		},
	}, nil
}

// EndGame closes a game. Deciding that a game is over is left to the caller.
func (s *Service) EndGame(game *domain.Game) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	game.Phase = domain.PhaseEnded

	captures := make(map[string]int, len(game.Captures))
	for userID, n := range game.Captures {
		captures[userID] = n
	}
	return []Event{
		{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{Captures: captures},
		},
	}, nil
}

// actor resolves the player acting from seat and checks it is their turn.
func (s *Service) actor(game *domain.Game, seat int) (*domain.Player, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	pl, ok := game.PlayerAtSeat(seat)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentTurn != seat {
		return nil, ErrNotYourTurn
	}
	return pl, nil
}
