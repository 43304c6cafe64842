package agent

import (
	"context"

	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/IlikeChooros/go-chess-agents/pkg/mcts"
	"github.com/IlikeChooros/go-chess-agents/pkg/minimax"
)

// Display names of the built-in strategies
const (
	MinimaxName = "Minimax++"
	MCTSName    = "MCTS"
	ScorerName  = "Neural Network"
)

// Agent picks a move in the given position. The position must be left as it
// was given, the returned move is one of its legal moves. When there are no
// legal moves the agent returns false.
type Agent[T game.MoveLike, P any] interface {
	Name() string
	SelectMove(pos P) (T, bool)
}

// Implemented by the agents whose search can be cut short. Once the context
// is cancelled SelectMove returns the best move found so far, or false if
// nothing got searched yet.
type Interruptible interface {
	SetContext(ctx context.Context)
}

// Minimax agent, alpha-beta search with the depth depending on the piece count
type Minimax[T game.MoveLike, P minimax.PositionLike[T, P]] struct {
	searcher *minimax.Searcher[T, P]
}

func NewMinimax[T game.MoveLike, P minimax.PositionLike[T, P]](
	evaluate minimax.EvalFunc[P], options ...minimax.Option,
) *Minimax[T, P] {
	return &Minimax[T, P]{searcher: minimax.New[T, P](evaluate, options...)}
}

func (m *Minimax[T, P]) Name() string {
	return MinimaxName
}

func (m *Minimax[T, P]) SelectMove(pos P) (T, bool) {
	result := m.searcher.BestMove(pos)
	return result.Move, result.Found
}

func (m *Minimax[T, P]) SetContext(ctx context.Context) {
	m.searcher.SetContext(ctx)
}

func (m *Minimax[T, P]) Searcher() *minimax.Searcher[T, P] {
	return m.searcher
}

// Flat Monte-Carlo agent
type MCTS[T game.MoveLike, P game.PositionLike[T, P]] struct {
	searcher *mcts.Searcher[T, P]
}

func NewMCTS[T game.MoveLike, P game.PositionLike[T, P]](options ...mcts.Option) *MCTS[T, P] {
	return &MCTS[T, P]{searcher: mcts.New[T, P](options...)}
}

func (m *MCTS[T, P]) Name() string {
	return MCTSName
}

func (m *MCTS[T, P]) SelectMove(pos P) (T, bool) {
	result := m.searcher.BestMove(pos)
	return result.Move, result.Found
}

func (m *MCTS[T, P]) SetContext(ctx context.Context) {
	m.searcher.SetContext(ctx)
}

func (m *MCTS[T, P]) Searcher() *mcts.Searcher[T, P] {
	return m.searcher
}

// Greedy agent: plays the move leading to the highest scored position,
// looking only one move ahead. The first move wins ties.
type Scorer[T game.MoveLike, P game.PositionLike[T, P]] struct {
	score func(P) float64
}

func NewScorer[T game.MoveLike, P game.PositionLike[T, P]](score func(P) float64) *Scorer[T, P] {
	if score == nil {
		panic("agent: nil score function")
	}
	return &Scorer[T, P]{score: score}
}

func (s *Scorer[T, P]) Name() string {
	return ScorerName
}

func (s *Scorer[T, P]) SelectMove(pos P) (T, bool) {
	var (
		best      T
		bestScore float64
		found     bool
	)

	for _, move := range pos.LegalMoves() {
		pos.MakeMove(move)
		score := s.score(pos)
		pos.Undo()

		if !found || score > bestScore {
			best, bestScore, found = move, score, true
		}
	}
	return best, found
}
