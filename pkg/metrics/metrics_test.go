package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg).(*promCollector)

	c.AddNodes("minimax", 120)
	c.AddNodes("minimax", 30)
	c.AddRollouts("mcts", 200)
	c.AddGame("1-0")
	c.AddGame("1-0")
	c.ObserveMove("mcts", 15*time.Millisecond)

	require.Equal(t, 150.0, testutil.ToFloat64(c.nodes.WithLabelValues("minimax")))
	require.Equal(t, 200.0, testutil.ToFloat64(c.rollouts.WithLabelValues("mcts")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.games.WithLabelValues("1-0")))
	require.Equal(t, 1, testutil.CollectAndCount(c.moveTime))
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	require.NotPanics(t, func() {
		c.AddNodes("minimax", 1)
		c.AddRollouts("mcts", 1)
		c.ObserveMove("mcts", time.Second)
		c.AddGame("*")
	})
}
