package mcts

/*
Flat Monte-Carlo search: the simulation budget is split evenly between the
root moves, every root move is scored by the sum of its rollout outcomes
and the best scoring move is chosen. There is no tree below the root.
*/

import (
	"context"
	"fmt"

	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
	"golang.org/x/exp/rand"
)

type settings struct {
	simulations int
	seed        uint64
	seeded      bool
	convention  Convention
	collector   metrics.Collector
	label       string
}

type Option func(*settings)

// Total number of rollouts per move selection, must be at least 1
func WithSimulations(n int) Option {
	return func(s *settings) {
		s.simulations = n
	}
}

// Fixed seed for the rollout generator, otherwise SeedGeneratorFn is used
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
		s.seeded = true
	}
}

func WithConvention(convention Convention) Option {
	return func(s *settings) {
		s.convention = convention
	}
}

// Report played rollouts to the collector, under given agent label
func WithCollector(collector metrics.Collector, label string) Option {
	return func(s *settings) {
		if collector != nil {
			s.collector = collector
			s.label = label
		}
	}
}

// Searcher is not safe for concurrent use, it owns its random generator
type Searcher[T game.MoveLike, P game.PositionLike[T, P]] struct {
	settings
	policy   RolloutPolicy[T, P]
	rand     *rand.Rand
	rollouts int
	ctx      context.Context
}

// Create a new searcher with uniformly random rollouts,
// panics if the simulation budget is not positive
func New[T game.MoveLike, P game.PositionLike[T, P]](options ...Option) *Searcher[T, P] {
	s := &Searcher[T, P]{
		settings: settings{
			simulations: DefaultSimulations,
			convention:  ConventionWhite,
			collector:   metrics.NewDummyCollector(),
			label:       "mcts",
		},
		ctx: context.Background(),
	}

	for _, option := range options {
		option(&s.settings)
	}

	if s.simulations < 1 {
		panic(fmt.Sprintf("mcts: simulations must be positive, got %d", s.simulations))
	}

	if !s.seeded {
		s.seed = uint64(SeedGeneratorFn())
	}
	s.rand = rand.New(rand.NewSource(s.seed))
	s.SetPolicy(NewRandomRollout[T, P](s.rand))
	return s
}

// Replace the rollout policy, random-based policies get the searcher's generator
func (s *Searcher[T, P]) SetPolicy(policy RolloutPolicy[T, P]) {
	if policy == nil {
		return
	}
	if rp, ok := policy.(RandRolloutPolicy[T, P]); ok {
		rp.SetRand(s.rand)
	}
	s.policy = policy
}

// Adds a context to the searcher, once it's cancelled no more rollouts
// are played and the best fully simulated move so far is returned
func (s *Searcher[T, P]) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *Searcher[T, P]) Simulations() int {
	return s.simulations
}

func (s *Searcher[T, P]) Convention() Convention {
	return s.convention
}

// Number of rollouts played by the last search
func (s *Searcher[T, P]) Rollouts() int {
	return s.rollouts
}

// Rollouts given to each of 'moves' root moves, the remainder of the
// division is not played at all
func (s *Searcher[T, P]) PerMove(moves int) int {
	if moves <= 0 {
		return 0
	}
	return s.simulations / moves
}

// Pick the root move with the greatest accumulated rollout score, the first
// one wins ties. With more moves than simulations every move scores 0, so
// the first legal move is returned.
func (s *Searcher[T, P]) BestMove(pos P) Result[T] {
	s.rollouts = 0
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return Result[T]{}
	}

	sign := 1.0
	if s.convention == ConventionMover && pos.Turn() == game.Black {
		sign = -1.0
	}

	perMove := s.PerMove(len(moves))
	result := Result[T]{}

	for _, move := range moves {
		if s.ctx.Err() != nil {
			break
		}

		pos.MakeMove(move)
		score, played := 0.0, 0
		for ; played < perMove && s.ctx.Err() == nil; played++ {
			score += sign * s.policy.Rollout(pos).Value()
		}
		pos.Undo()
		s.rollouts += played

		// partially simulated, its score isn't comparable
		if played < perMove {
			break
		}
		if !result.Found || score > result.Score {
			result = Result[T]{Move: move, Score: score, Found: true}
		}
	}

	s.collector.AddRollouts(s.label, s.rollouts)
	return result
}
