package minimax

import (
	"context"
	"fmt"
	"math"

	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
)

const DefaultBaseDepth = 2

// The context is polled once per this many visited nodes
const cancelCheckInterval = 1024

// Position requirements of the search: the game interface plus a piece
// count for the adaptive depth
type PositionLike[T game.MoveLike, P any] interface {
	game.PositionLike[T, P]
	game.Counted
}

// Static evaluation, White's perspective
type EvalFunc[P any] func(P) float64

// Which side the search maximizes for
type Perspective int

const (
	// The root always maximizes White's evaluation, whoever is to move
	PerspectiveWhite Perspective = iota

	// The root's side to move maximizes its own advantage
	// (evaluations are negated when Black is to move at the root)
	PerspectiveMover
)

func (p Perspective) String() string {
	switch p {
	case PerspectiveWhite:
		return "white"
	case PerspectiveMover:
		return "mover"
	}
	return "unknown"
}

// Result of the root search
type Result[T game.MoveLike] struct {
	Move  T
	Score float64
	Found bool
}

// Search settings shared by all searcher instantiations
type settings struct {
	baseDepth   int
	pruning     bool
	perspective Perspective
	collector   metrics.Collector
	label       string
}

type Option func(*settings)

// Depth before the piece-count adjustment, must be at least 1
func WithBaseDepth(depth int) Option {
	return func(s *settings) {
		s.baseDepth = depth
	}
}

// Enable or disable alpha-beta cutoffs, disabled visits the full tree
func WithPruning(enabled bool) Option {
	return func(s *settings) {
		s.pruning = enabled
	}
}

func WithPerspective(perspective Perspective) Option {
	return func(s *settings) {
		s.perspective = perspective
	}
}

// Report visited nodes to the collector, under given agent label
func WithCollector(collector metrics.Collector, label string) Option {
	return func(s *settings) {
		if collector != nil {
			s.collector = collector
			s.label = label
		}
	}
}

// Searcher is a depth-bounded minimax with alpha-beta pruning.
// Not safe for concurrent use, each goroutine needs its own searcher.
type Searcher[T game.MoveLike, P PositionLike[T, P]] struct {
	settings
	evaluate EvalFunc[P]
	sign     float64
	nodes    int
	ctx      context.Context
	stopped  bool
}

// Create a new searcher, panics if the base depth is not positive
func New[T game.MoveLike, P PositionLike[T, P]](evaluate EvalFunc[P], options ...Option) *Searcher[T, P] {
	if evaluate == nil {
		panic("minimax: nil evaluation function")
	}

	s := &Searcher[T, P]{
		settings: settings{
			baseDepth:   DefaultBaseDepth,
			pruning:     true,
			perspective: PerspectiveWhite,
			collector:   metrics.NewDummyCollector(),
			label:       "minimax",
		},
		evaluate: evaluate,
		sign:     1,
		ctx:      context.Background(),
	}

	for _, option := range options {
		option(&s.settings)
	}

	if s.baseDepth < 1 {
		panic(fmt.Sprintf("minimax: base depth must be positive, got %d", s.baseDepth))
	}
	return s
}

// Adds a context to the searcher, once it's cancelled the root loop stops
// and the best move found so far is returned
func (s *Searcher[T, P]) SetContext(ctx context.Context) {
	s.ctx = ctx
}

func (s *Searcher[T, P]) Perspective() Perspective {
	return s.perspective
}

func (s *Searcher[T, P]) BaseDepth() int {
	return s.baseDepth
}

// Number of nodes visited by the last search
func (s *Searcher[T, P]) Nodes() int {
	return s.nodes
}

// Search depth for given number of pieces on the board,
// fewer pieces means a smaller branching factor, so we can go deeper
func (s *Searcher[T, P]) Depth(pieceCount int) int {
	switch {
	case pieceCount > 20:
		return s.baseDepth
	case pieceCount > 10:
		return s.baseDepth + 1
	default:
		return s.baseDepth + 2
	}
}

func (s *Searcher[T, P]) leaf(pos P) float64 {
	return s.sign * s.evaluate(pos)
}

// Whether the context got cancelled, sticky until the next BestMove
func (s *Searcher[T, P]) cancelled() bool {
	if !s.stopped && s.nodes%cancelCheckInterval == 0 && s.ctx.Err() != nil {
		s.stopped = true
	}
	return s.stopped
}

// Alpha-beta minimax, returns the value of the position, from the
// perspective of the maximizing side. After a cancellation the returned
// value is meaningless.
func (s *Searcher[T, P]) Search(pos P, depth int, alpha, beta float64, maximizing bool) float64 {
	s.nodes++
	if s.cancelled() {
		return 0
	}
	if depth == 0 || pos.IsTerminated() {
		return s.leaf(pos)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, move := range pos.LegalMoves() {
			pos.MakeMove(move)
			value := s.Search(pos, depth-1, alpha, beta, false)
			pos.Undo()
			if s.stopped {
				break
			}

			best = max(best, value)
			alpha = max(alpha, best)
			if s.pruning && beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range pos.LegalMoves() {
		pos.MakeMove(move)
		value := s.Search(pos, depth-1, alpha, beta, true)
		pos.Undo()
		if s.stopped {
			break
		}

		best = min(best, value)
		beta = min(beta, best)
		if s.pruning && beta <= alpha {
			break
		}
	}
	return best
}

// Find the best move in the position. Each root move is searched with a full
// window, the first move with the strictly greatest value is returned.
// Found is false only if there are no legal moves (or the context was
// cancelled before any root move was fully searched). A root move whose
// search got cancelled is not considered.
func (s *Searcher[T, P]) BestMove(pos P) Result[T] {
	s.nodes = 0
	s.stopped = false
	s.sign = 1
	if s.perspective == PerspectiveMover && pos.Turn() == game.Black {
		s.sign = -1
	}

	depth := s.Depth(pos.PieceCount())
	result := Result[T]{Score: math.Inf(-1)}

	for _, move := range pos.LegalMoves() {
		if s.ctx.Err() != nil {
			break
		}

		pos.MakeMove(move)
		value := s.Search(pos, depth-1, math.Inf(-1), math.Inf(1), false)
		pos.Undo()

		if s.stopped {
			break
		}
		if !result.Found || value > result.Score {
			result = Result[T]{Move: move, Score: value, Found: true}
		}
	}

	s.collector.AddNodes(s.label, s.nodes)
	return result
}
