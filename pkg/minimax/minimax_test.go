package minimax

import (
	"context"
	"testing"

	"github.com/IlikeChooros/go-chess-agents/pkg/chess"
	"github.com/IlikeChooros/go-chess-agents/pkg/eval"
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/stretchr/testify/require"
)

func treeScore(t *game.Tree) float64 {
	return t.Score()
}

func chessEval(b *chess.Board) float64 {
	return eval.Evaluate(b)
}

func newTreeSearcher(options ...Option) *Searcher[int, *game.Tree] {
	return New[int, *game.Tree](treeScore, options...)
}

// Builds a full tree with given branching and depth, leaf scores come
// from a small linear congruential generator so the tree is reproducible
func buildTree(branching, depth int, seed *uint32) *game.TreeNode {
	if depth == 0 {
		*seed = *seed*1664525 + 1013904223
		return game.Leaf(float64(*seed>>16%201) - 100)
	}
	children := make([]*game.TreeNode, branching)
	for i := range children {
		children[i] = buildTree(branching, depth-1, seed)
	}
	return game.Node(children...)
}

// Plain minimax without any pruning, used as the reference
func fullMinimax(node *game.TreeNode, maximizing bool) float64 {
	if len(node.Children) == 0 {
		return node.Score
	}
	best := fullMinimax(node.Children[0], !maximizing)
	for _, child := range node.Children[1:] {
		value := fullMinimax(child, !maximizing)
		if maximizing {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	return best
}

func TestDepthSelection(t *testing.T) {
	s := newTreeSearcher(WithBaseDepth(3))

	require.Equal(t, 3, s.Depth(32))
	require.Equal(t, 3, s.Depth(21))
	require.Equal(t, 4, s.Depth(20))
	require.Equal(t, 4, s.Depth(15))
	require.Equal(t, 5, s.Depth(10))
	require.Equal(t, 5, s.Depth(6))
}

func TestInvalidDepthPanics(t *testing.T) {
	require.Panics(t, func() { newTreeSearcher(WithBaseDepth(0)) })
	require.Panics(t, func() { newTreeSearcher(WithBaseDepth(-2)) })
	require.Panics(t, func() { New[int, *game.Tree](nil) })
}

func TestNoLegalMoves(t *testing.T) {
	s := newTreeSearcher()
	result := s.BestMove(game.NewTree(game.Leaf(5), game.White))
	require.False(t, result.Found)
}

func TestBestMoveTwoPly(t *testing.T) {
	tree := game.NewTree(game.Node(
		game.Node(game.Leaf(3), game.Leaf(12), game.Leaf(8)),
		game.Node(game.Leaf(2), game.Leaf(4), game.Leaf(6)),
		game.Node(game.Leaf(14), game.Leaf(5), game.Leaf(2)),
	), game.White)

	result := newTreeSearcher().BestMove(tree)
	require.True(t, result.Found)
	require.Equal(t, 0, result.Move)
	require.Equal(t, 3.0, result.Score)
	require.Equal(t, 0, tree.Ply())
}

func TestFirstMoveWinsTies(t *testing.T) {
	s := newTreeSearcher(WithBaseDepth(1))

	result := s.BestMove(game.NewTree(game.Node(game.Leaf(1), game.Leaf(1)), game.White))
	require.Equal(t, 0, result.Move)

	result = s.BestMove(game.NewTree(game.Node(game.Leaf(1), game.Leaf(5), game.Leaf(5)), game.White))
	require.Equal(t, 1, result.Move)
}

func TestPruningDoesNotChangeTheMove(t *testing.T) {
	for _, seed := range []uint32{1, 7, 42, 1337, 9001} {
		s := seed
		root := buildTree(4, 4, &s)

		pruned := newTreeSearcher(WithBaseDepth(4))
		full := newTreeSearcher(WithBaseDepth(4), WithPruning(false))

		a := pruned.BestMove(game.NewTree(root, game.White))
		b := full.BestMove(game.NewTree(root, game.White))

		require.Equal(t, b.Move, a.Move, "seed %d", seed)
		require.Equal(t, b.Score, a.Score, "seed %d", seed)
		require.Less(t, pruned.Nodes(), full.Nodes(), "seed %d", seed)

		// And both agree with the textbook minimax
		expected := fullMinimax(root.Children[b.Move], false)
		require.Equal(t, expected, b.Score)
		for _, child := range root.Children {
			require.LessOrEqual(t, fullMinimax(child, false), b.Score)
		}
	}
}

func TestPerspective(t *testing.T) {
	// Black to move: -3 is good for Black, +2 is good for White
	root := game.Node(game.Leaf(-3), game.Leaf(2))

	white := newTreeSearcher(WithBaseDepth(1))
	require.Equal(t, PerspectiveWhite, white.Perspective())
	result := white.BestMove(game.NewTree(root, game.Black))
	require.Equal(t, 1, result.Move)
	require.Equal(t, 2.0, result.Score)

	mover := newTreeSearcher(WithBaseDepth(1), WithPerspective(PerspectiveMover))
	result = mover.BestMove(game.NewTree(root, game.Black))
	require.Equal(t, 0, result.Move)
	require.Equal(t, 3.0, result.Score)

	// With White to move both perspectives agree
	result = mover.BestMove(game.NewTree(root, game.White))
	require.Equal(t, 1, result.Move)
	require.Equal(t, "white", PerspectiveWhite.String())
	require.Equal(t, "mover", PerspectiveMover.String())
}

func TestCancelledBeforeSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTreeSearcher()
	s.SetContext(ctx)
	result := s.BestMove(game.NewTree(game.Node(game.Leaf(1), game.Leaf(2)), game.White))
	require.False(t, result.Found)
	require.Equal(t, 0, s.Nodes())
}

func TestCancelReturnsBestSoFar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The first evaluation cancels, so only the first root move gets searched
	evaluate := func(t *game.Tree) float64 {
		cancel()
		return t.Score()
	}
	s := New[int, *game.Tree](evaluate, WithBaseDepth(1))
	s.SetContext(ctx)

	result := s.BestMove(game.NewTree(game.Node(game.Leaf(1), game.Leaf(5)), game.White))
	require.True(t, result.Found)
	require.Equal(t, 0, result.Move)
	require.Equal(t, 1.0, result.Score)
}

func TestCancelInsideDeepSearch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seed := uint32(3)
	// every root move has a 1365 node subtree, the cancellation is noticed
	// before the first one is done
	tree := game.NewTree(buildTree(4, 6, &seed), game.White)
	evaluate := func(t *game.Tree) float64 {
		cancel()
		return t.Score()
	}
	s := New[int, *game.Tree](evaluate, WithBaseDepth(6), WithPruning(false))
	s.SetContext(ctx)

	result := s.BestMove(tree)
	require.False(t, result.Found)
	require.Equal(t, cancelCheckInterval, s.Nodes())
	require.Equal(t, 0, tree.Ply())

	// A fresh context searches the whole tree again
	s.SetContext(context.Background())
	result = s.BestMove(tree)
	require.True(t, result.Found)
	require.Equal(t, 4*1365, s.Nodes())
}

func TestTerminalNodesAreEvaluated(t *testing.T) {
	// The first move ends the game at once, the search must not try to go deeper
	tree := game.NewTree(game.Node(
		game.Terminal(game.WhiteWon),
		game.Node(game.Leaf(0.5), game.Leaf(0.75)),
	), game.White)

	result := newTreeSearcher(WithBaseDepth(3)).BestMove(tree)
	require.Equal(t, 0, result.Move)
	require.Equal(t, 1.0, result.Score)
}

func TestChessPositionUnchanged(t *testing.T) {
	b, err := chess.FromMoves("e2e4", "e7e5", "g1f3", "b8c6")
	require.NoError(t, err)
	fen := b.FEN()

	s := New[chess.Move, *chess.Board](chessEval)
	first := s.BestMove(b)
	require.True(t, first.Found)
	require.Equal(t, fen, b.FEN())
	require.True(t, game.Contains(b, first.Move))

	// Deterministic given the move order
	second := s.BestMove(b)
	require.Equal(t, first, second)
}

func TestFindsMateInOne(t *testing.T) {
	b, err := chess.FromMoves("f2f3", "e7e5", "g2g4")
	require.NoError(t, err)

	result := New[chess.Move, *chess.Board](chessEval, WithPerspective(PerspectiveMover)).BestMove(b)
	require.True(t, result.Found)
	require.Equal(t, "d8h4", result.Move.String())
}
