package mcts

import "github.com/IlikeChooros/go-chess-agents/pkg/game"

// Other types, which didn't fit to the searcher or the rollout files

// How a rollout outcome is turned into a score for the root's moves
type Convention int

const (
	// +1 when White wins the rollout, -1 when Black wins, 0 for a draw,
	// no matter which side is to move at the root
	ConventionWhite Convention = iota

	// Corrected variant: the score is flipped when Black is to move at
	// the root, so the root side always prefers its own wins
	ConventionMover
)

func (c Convention) String() string {
	switch c {
	case ConventionWhite:
		return "white"
	case ConventionMover:
		return "mover"
	}
	return "unknown"
}

// Result of the root search
type Result[T game.MoveLike] struct {
	Move T
	// Accumulated rollout score of the chosen move
	Score float64
	Found bool
}

type SeedGeneratorFnType func() int64
