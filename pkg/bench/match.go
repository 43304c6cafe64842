package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/agent"
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	// The agent returned a move outside of the legal move list
	ErrIllegalMove = errors.New("bench: illegal move")
	// An opening move doesn't match any legal move
	ErrUnknownMove = errors.New("bench: unknown move")
)

// Text form of a move, the move's String method if it has one
// (pointer receivers included, like the chess engine's moves)
func Notation[T game.MoveLike](move T) string {
	if s, ok := any(&move).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(move)
}

// Find the legal move with given notation
func ParseMove[T game.MoveLike, P game.PositionLike[T, P]](pos P, notation string) (T, error) {
	for _, m := range pos.LegalMoves() {
		if Notation(m) == notation {
			return m, nil
		}
	}
	var zero T
	return zero, errors.Wrapf(ErrUnknownMove, "%q", notation)
}

// Match is a single game between two agents
type Match[T game.MoveLike, P game.PositionLike[T, P]] struct {
	White agent.Agent[T, P]
	Black agent.Agent[T, P]
	// Stop after this many plies made by the agents, 0 means no limit
	MaxPlies int
	// Pause after every move
	Delay time.Duration
	// Moves played before the agents take over
	Opening   []string
	Listener  ListenerLike[T, P]
	Collector metrics.Collector
}

func NewMatch[T game.MoveLike, P game.PositionLike[T, P]](white, black agent.Agent[T, P]) *Match[T, P] {
	return &Match[T, P]{
		White:     white,
		Black:     black,
		Listener:  DefaultListener[T, P]{},
		Collector: metrics.NewDummyCollector(),
	}
}

func (m *Match[T, P]) playerFor(side game.Side) agent.Agent[T, P] {
	if side == game.White {
		return m.White
	}
	return m.Black
}

// Play the game on 'pos' until it ends, the position is left at the final
// state. The agents move by the side to move, not by turn count. The returned
// record is valid even if an error is returned.
func (m *Match[T, P]) Play(ctx context.Context, pos P) (*Record, error) {
	if m.Listener == nil {
		m.Listener = DefaultListener[T, P]{}
	}
	if m.Collector == nil {
		m.Collector = metrics.NewDummyCollector()
	}

	for _, player := range [2]agent.Agent[T, P]{m.White, m.Black} {
		if in, ok := player.(agent.Interruptible); ok {
			in.SetContext(ctx)
		}
	}

	record := NewRecord(m.White.Name(), m.Black.Name())
	logger := log.With().Str("game", record.ID.String()).Logger()

	for _, notation := range m.Opening {
		move, err := ParseMove[T, P](pos, notation)
		if err != nil {
			return record, err
		}
		pos.MakeMove(move)
		record.Opening = append(record.Opening, notation)
	}

	logger.Debug().
		Str("white", record.White).
		Str("black", record.Black).
		Int("opening", len(record.Opening)).
		Msg("game started")

Loop:
	for {
		switch {
		case pos.IsTerminated():
			record.Termination = TerminationGameOver
			break Loop
		case m.MaxPlies > 0 && record.Plies() >= m.MaxPlies:
			record.Termination = TerminationMaxPlies
			break Loop
		case ctx.Err() != nil:
			record.Termination = TerminationInterrupted
			break Loop
		}

		side := pos.Turn()
		player := m.playerFor(side)

		start := time.Now()
		move, ok := player.SelectMove(pos)
		elapsed := time.Since(start)
		m.Collector.ObserveMove(player.Name(), elapsed)

		// a search cut short is not played
		if ctx.Err() != nil {
			record.Termination = TerminationInterrupted
			break Loop
		}
		if !ok {
			record.Termination = TerminationNoMoves
			break Loop
		}

		if !game.Contains(pos, move) {
			record.Duration = time.Since(record.StartedAt)
			return record, errors.Wrapf(ErrIllegalMove, "%s (%s) played %s", player.Name(), side, Notation(move))
		}

		pos.MakeMove(move)
		record.Moves = append(record.Moves, Notation(move))

		logger.Debug().
			Int("ply", record.Plies()).
			Str("agent", player.Name()).
			Str("move", Notation(move)).
			Dur("elapsed", elapsed).
			Msg("move made")

		m.Listener.OnMoveMade(MoveInfo[T]{
			GameID:   record.ID.String(),
			Ply:      record.Plies(),
			Side:     side,
			Agent:    player.Name(),
			Move:     move,
			Notation: Notation(move),
			Elapsed:  elapsed,
		}, pos)

		if m.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(m.Delay):
			}
		}
	}

	if pos.IsTerminated() {
		record.Result = pos.Outcome().String()
	}
	record.Duration = time.Since(record.StartedAt)
	m.Collector.AddGame(record.Result)

	logger.Debug().
		Str("result", record.Result).
		Stringer("termination", record.Termination).
		Int("plies", record.Plies()).
		Msg("game finished")

	m.Listener.OnFinishedGame(record, pos)
	return record, nil
}
