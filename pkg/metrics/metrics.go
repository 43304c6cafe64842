package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chess_agents"

// Collector receives counters from the searches and the driving loop.
// Implementations must be safe for concurrent use, the arena shares one
// collector between all of its workers.
type Collector interface {
	// Nodes visited by one minimax search
	AddNodes(agent string, n int)
	// Rollouts played by one Monte-Carlo search
	AddRollouts(agent string, n int)
	// Time spent selecting a single move
	ObserveMove(agent string, elapsed time.Duration)
	// Finished game with given result ("1-0", "0-1", "1/2-1/2", "*")
	AddGame(result string)
}

type promCollector struct {
	nodes    *prometheus.CounterVec
	rollouts *prometheus.CounterVec
	moveTime *prometheus.HistogramVec
	games    *prometheus.CounterVec
}

// Collector backed by prometheus metrics, registered on 'reg'
func NewPrometheusCollector(reg prometheus.Registerer) Collector {
	factory := promauto.With(reg)
	return &promCollector{
		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_nodes_total",
			Help:      "Positions visited by minimax searches.",
		}, []string{"agent"}),
		rollouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_rollouts_total",
			Help:      "Random playouts run by Monte-Carlo searches.",
		}, []string{"agent"}),
		moveTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "move_duration_seconds",
			Help:      "Time spent selecting a move.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"agent"}),
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Finished games by result.",
		}, []string{"result"}),
	}
}

func (c *promCollector) AddNodes(agent string, n int) {
	c.nodes.WithLabelValues(agent).Add(float64(n))
}

func (c *promCollector) AddRollouts(agent string, n int) {
	c.rollouts.WithLabelValues(agent).Add(float64(n))
}

func (c *promCollector) ObserveMove(agent string, elapsed time.Duration) {
	c.moveTime.WithLabelValues(agent).Observe(elapsed.Seconds())
}

func (c *promCollector) AddGame(result string) {
	c.games.WithLabelValues(result).Inc()
}

type dummyCollector struct{}

// Collector that drops everything, the default of every search
func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) AddNodes(agent string, n int)                    {}
func (dummyCollector) AddRollouts(agent string, n int)                 {}
func (dummyCollector) ObserveMove(agent string, elapsed time.Duration) {}
func (dummyCollector) AddGame(result string)                           {}
