package mcts

import (
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"golang.org/x/exp/rand"
)

// Plays a position out until the game ends, the given position must be
// left untouched
type RolloutPolicy[T game.MoveLike, P game.PositionLike[T, P]] interface {
	Rollout(pos P) game.Outcome
}

// Random-based rollout
type RandRolloutPolicy[T game.MoveLike, P game.PositionLike[T, P]] interface {
	RolloutPolicy[T, P]
	// Sets the random generator
	SetRand(*rand.Rand)
}

// Uniformly random playout, every legal move has the same chance
type RandomRollout[T game.MoveLike, P game.PositionLike[T, P]] struct {
	rand *rand.Rand
}

var _ RandRolloutPolicy[int, *game.Tree] = (*RandomRollout[int, *game.Tree])(nil)

func NewRandomRollout[T game.MoveLike, P game.PositionLike[T, P]](r *rand.Rand) *RandomRollout[T, P] {
	return &RandomRollout[T, P]{rand: r}
}

func (r *RandomRollout[T, P]) SetRand(rnd *rand.Rand) {
	r.rand = rnd
}

// Plays random moves on a clone of 'pos' until it's terminated,
// returns the final outcome (Draw if the game ended without one)
func (r *RandomRollout[T, P]) Rollout(pos P) game.Outcome {
	sim := pos.Clone()
	for !sim.IsTerminated() {
		moves := sim.LegalMoves()
		if len(moves) == 0 {
			break
		}
		sim.MakeMove(moves[r.rand.Intn(len(moves))])
	}

	if outcome := sim.Outcome(); outcome != game.NoOutcome {
		return outcome
	}
	return game.Draw
}
