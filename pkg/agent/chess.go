package agent

import (
	"fmt"

	"github.com/IlikeChooros/go-chess-agents/pkg/chess"
	"github.com/IlikeChooros/go-chess-agents/pkg/eval"
	"github.com/IlikeChooros/go-chess-agents/pkg/mcts"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
	"github.com/IlikeChooros/go-chess-agents/pkg/minimax"
	"github.com/IlikeChooros/go-chess-agents/pkg/nn"
	"github.com/pkg/errors"
)

type Chess = Agent[chess.Move, *chess.Board]

// Strategy kinds, as named in the configuration
type Kind string

const (
	KindMinimax Kind = "minimax"
	KindMCTS    Kind = "mcts"
	KindNeural  Kind = "neural"
)

var ErrUnknownKind = errors.New("agent: unknown kind")

// Parameters of a chess agent, zero values select the defaults
type Options struct {
	Depth int
	// Side the minimax root maximizes for, White's evaluation by default
	Perspective minimax.Perspective
	Simulations int
	// Rollout scoring, "+1 = White won" by default
	Convention mcts.Convention
	// Seed of the rollouts or the network weights, 0 picks one at random
	Seed    uint64
	Network *nn.Network
	// Metrics of the searches, nil to drop them
	Collector metrics.Collector
}

func evaluate(b *chess.Board) float64 {
	return eval.Evaluate(b)
}

// Create a chess agent of given kind
func NewChess(kind Kind, opts Options) (Chess, error) {
	switch kind {
	case KindMinimax:
		options := []minimax.Option{
			minimax.WithPerspective(opts.Perspective),
			minimax.WithCollector(opts.Collector, MinimaxName),
		}
		if opts.Depth > 0 {
			options = append(options, minimax.WithBaseDepth(opts.Depth))
		}
		return NewMinimax[chess.Move, *chess.Board](evaluate, options...), nil

	case KindMCTS:
		options := []mcts.Option{
			mcts.WithConvention(opts.Convention),
			mcts.WithCollector(opts.Collector, MCTSName),
		}
		if opts.Simulations > 0 {
			options = append(options, mcts.WithSimulations(opts.Simulations))
		}
		if opts.Seed != 0 {
			options = append(options, mcts.WithSeed(opts.Seed))
		}
		return NewMCTS[chess.Move, *chess.Board](options...), nil

	case KindNeural:
		network := opts.Network
		if network == nil {
			seed := opts.Seed
			if seed == 0 {
				seed = uint64(mcts.SeedGeneratorFn())
			}
			network = nn.NewNetwork(seed)
		}
		return NewScorer[chess.Move, *chess.Board](func(b *chess.Board) float64 {
			return network.Score(b)
		}), nil
	}
	return nil, errors.Wrap(ErrUnknownKind, fmt.Sprintf("%q", string(kind)))
}
