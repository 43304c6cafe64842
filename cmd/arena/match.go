package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/bench"
	"github.com/IlikeChooros/go-chess-agents/pkg/chess"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newMatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Play a series of games, the players swap colours every game",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.match(ctx)
		},
	}

	flags := cmd.Flags()
	flags.Int("games", 10, "number of games")
	flags.Int("workers", 2, "games played in parallel")
	flags.String("metrics-addr", "", "serve prometheus metrics on this address (:9090)")
	bind(a.v, flags, map[string]string{
		"games":        "games",
		"workers":      "workers",
		"metrics_addr": "metrics-addr",
	})
	return cmd
}

// Serve the registry's metrics until the returned function is called
func serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", addr).Msg("serving metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

// Logs every finished game
type progressListener struct {
	bench.DefaultListener[chess.Move, *chess.Board]
	total    int
	finished int
}

func (p *progressListener) OnFinishedGame(record *bench.Record, b *chess.Board) {
	p.finished++
	log.Info().
		Int("game", p.finished).
		Int("of", p.total).
		Str("white", record.White).
		Str("black", record.Black).
		Str("result", record.Result).
		Int("plies", record.Plies()).
		Msg("game finished")
}

func (a *app) match(ctx context.Context) error {
	cfg := a.cfg

	reg := prometheus.NewRegistry()
	collector := metrics.NewPrometheusCollector(reg)
	if cfg.MetricsAddr != "" {
		stop := serveMetrics(cfg.MetricsAddr, reg)
		defer stop()
	}

	arena := bench.NewVersusArena(
		chess.NewBoard(),
		chessFactory(cfg.White, collector),
		chessFactory(cfg.Black, collector),
	)
	arena.Setup(cfg.Games, cfg.Workers, cfg.MaxPlies)
	arena.Opening = cfg.Opening
	arena.Collector = collector
	arena.Listener = bench.NewArenaListener[chess.Move, *chess.Board](&progressListener{total: cfg.Games})

	log.Info().
		Str("player1", cfg.White.Kind).
		Str("player2", cfg.Black.Kind).
		Int("games", cfg.Games).
		Int("workers", cfg.Workers).
		Msg("match started")

	if err := arena.Run(ctx); err != nil {
		return err
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	if err := enc.Encode(arena.Summary()); err != nil {
		return err
	}

	if cfg.Record != "" {
		return writeRecords(cfg.Record, arena.Records()...)
	}
	return nil
}
