package agent

import (
	"context"
	"testing"

	"github.com/IlikeChooros/go-chess-agents/pkg/chess"
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/IlikeChooros/go-chess-agents/pkg/mcts"
	"github.com/IlikeChooros/go-chess-agents/pkg/minimax"
	"github.com/stretchr/testify/require"
)

func treeScore(t *game.Tree) float64 {
	return t.Score()
}

func allChessAgents(t *testing.T) []Chess {
	agents := make([]Chess, 0, 3)
	for _, kind := range []Kind{KindMinimax, KindMCTS, KindNeural} {
		a, err := NewChess(kind, Options{Simulations: 40, Seed: 5})
		require.NoError(t, err)
		agents = append(agents, a)
	}
	return agents
}

func TestNames(t *testing.T) {
	names := []string{}
	for _, a := range allChessAgents(t) {
		names = append(names, a.Name())
	}
	require.Equal(t, []string{"Minimax++", "MCTS", "Neural Network"}, names)
}

func TestUnknownKind(t *testing.T) {
	_, err := NewChess("random", Options{})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNoLegalMoves(t *testing.T) {
	b, err := chess.FromMoves("f2f3", "e7e5", "g2g4", "d8h4")
	require.NoError(t, err)

	for _, a := range allChessAgents(t) {
		_, ok := a.SelectMove(b)
		require.False(t, ok, a.Name())
	}
}

func TestMovesAreLegalAndPositionUnchanged(t *testing.T) {
	b, err := chess.FromMoves("d2d4", "d7d5", "c2c4")
	require.NoError(t, err)
	fen := b.FEN()

	for _, a := range allChessAgents(t) {
		move, ok := a.SelectMove(b)
		require.True(t, ok, a.Name())
		require.True(t, game.Contains(b, move), a.Name())
		require.Equal(t, fen, b.FEN(), a.Name())
	}
}

func TestScorerIsGreedy(t *testing.T) {
	// The scorer only looks at the positions right after its own moves
	tree := game.NewTree(game.Node(
		game.Node(game.Leaf(-50)),
		game.Leaf(4),
		game.Leaf(9),
		game.Leaf(9),
	), game.White)

	s := NewScorer[int, *game.Tree](treeScore)
	move, ok := s.SelectMove(tree)
	require.True(t, ok)
	require.Equal(t, 2, move)
	require.Equal(t, 0, tree.Ply())
}

func TestScorerNilPanics(t *testing.T) {
	require.Panics(t, func() { NewScorer[int, *game.Tree](nil) })
}

func TestSearchAgentsOnTree(t *testing.T) {
	root := game.Node(
		game.Node(game.Leaf(1), game.Leaf(-4)),
		game.Node(game.Leaf(2), game.Leaf(3)),
	)

	mm := NewMinimax[int, *game.Tree](treeScore, minimax.WithBaseDepth(2))
	move, ok := mm.SelectMove(game.NewTree(root, game.White))
	require.True(t, ok)
	require.Equal(t, 1, move)
	require.Equal(t, 2, mm.Searcher().BaseDepth())

	wins := game.Node(game.Terminal(game.Draw), game.Terminal(game.WhiteWon))
	mc := NewMCTS[int, *game.Tree](mcts.WithSimulations(4), mcts.WithSeed(1))
	move, ok = mc.SelectMove(game.NewTree(wins, game.White))
	require.True(t, ok)
	require.Equal(t, 1, move)
	require.Equal(t, 4, mc.Searcher().Rollouts())
}

func TestSelfPlay(t *testing.T) {
	b := chess.NewBoard()
	a, err := NewChess(KindMinimax, Options{Depth: 2})
	require.NoError(t, err)

	for range 4 {
		move, ok := a.SelectMove(b)
		require.True(t, ok)
		require.True(t, game.Contains(b, move))
		b.MakeMove(move)
	}
	require.Equal(t, game.White, b.Turn())
	require.False(t, b.IsTerminated())
}

func TestPerspectiveOption(t *testing.T) {
	a, err := NewChess(KindMinimax, Options{})
	require.NoError(t, err)
	require.Equal(t, minimax.PerspectiveWhite, a.(*Minimax[chess.Move, *chess.Board]).Searcher().Perspective())

	// Black to move mates only when it plays for itself
	a, err = NewChess(KindMinimax, Options{Perspective: minimax.PerspectiveMover})
	require.NoError(t, err)
	b, err := chess.FromMoves("f2f3", "e7e5", "g2g4")
	require.NoError(t, err)

	move, ok := a.SelectMove(b)
	require.True(t, ok)
	require.Equal(t, "d8h4", move.String())
}

func TestInterruptibleAgents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, a := range allChessAgents(t) {
		in, ok := a.(Interruptible)
		if a.Name() == ScorerName {
			require.False(t, ok)
			continue
		}
		require.True(t, ok, a.Name())

		in.SetContext(ctx)
		_, found := a.SelectMove(chess.NewBoard())
		require.False(t, found, a.Name())
	}
}
