package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/agent"
	"github.com/IlikeChooros/go-chess-agents/pkg/mcts"
	"github.com/IlikeChooros/go-chess-agents/pkg/minimax"
	"github.com/IlikeChooros/go-chess-agents/pkg/nn"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	require.Equal(t, "minimax", cfg.White.Kind)
	require.Equal(t, "mcts", cfg.Black.Kind)
	require.Equal(t, 2, cfg.White.Depth)
	require.Equal(t, 200, cfg.Black.Simulations)
	require.Equal(t, mcts.ConventionWhite, cfg.Black.MCTSConvention())
	require.Equal(t, minimax.PerspectiveWhite, cfg.White.MinimaxPerspective())
	require.Equal(t, 10, cfg.Games)
	require.Equal(t, 2, cfg.Workers)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.Opening)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "arena.yaml", []byte(`
white:
  kind: neural
  seed: 17
  perspective: mover
black:
  kind: mcts
  simulations: 50
  convention: mover
games: 4
max_plies: 120
delay: 250ms
opening: [e2e4, e7e5]
`))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, "neural", cfg.White.Kind)
	require.Equal(t, uint64(17), cfg.White.Seed)
	require.Equal(t, minimax.PerspectiveMover, cfg.White.MinimaxPerspective())
	require.Equal(t, minimax.PerspectiveWhite, cfg.Black.MinimaxPerspective())
	require.Equal(t, 50, cfg.Black.Simulations)
	require.Equal(t, mcts.ConventionMover, cfg.Black.MCTSConvention())
	require.Equal(t, 4, cfg.Games)
	require.Equal(t, 120, cfg.MaxPlies)
	require.Equal(t, 250*time.Millisecond, cfg.Delay)
	require.Equal(t, []string{"e2e4", "e7e5"}, cfg.Opening)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ARENA_GAMES", "7")
	t.Setenv("ARENA_WHITE_DEPTH", "3")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, 7, cfg.Games)
	require.Equal(t, 3, cfg.White.Depth)
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"zero depth":       "white:\n  depth: 0\n",
		"zero simulations": "black:\n  simulations: 0\n",
		"unknown kind":     "black:\n  kind: stockfish\n",
		"bad convention":   "black:\n  convention: black\n",
		"bad perspective":  "white:\n  perspective: black\n",
		"no games":         "games: 0\n",
		"no workers":       "workers: 0\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(viper.New(), writeFile(t, "arena.yaml", []byte(content)))
			require.Error(t, err)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestAgentOptions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, nn.NewNetwork(5).Save(&buf))
	weights := writeFile(t, "net.bin", buf.Bytes())

	p := Player{Kind: "neural", Depth: 2, Perspective: "mover", Simulations: 10, Convention: "mover", Weights: weights}
	opts, err := p.AgentOptions()
	require.NoError(t, err)
	require.NotNil(t, opts.Network)
	require.Equal(t, mcts.ConventionMover, opts.Convention)
	require.Equal(t, minimax.PerspectiveMover, opts.Perspective)

	a, err := agent.NewChess(agent.Kind(p.Kind), opts)
	require.NoError(t, err)
	require.Equal(t, agent.ScorerName, a.Name())

	p.Weights = filepath.Join(t.TempDir(), "missing.bin")
	_, err = p.AgentOptions()
	require.Error(t, err)
}
