package main

import (
	"os"
	"time"

	"github.com/IlikeChooros/go-chess-agents/internal/config"
	"github.com/IlikeChooros/go-chess-agents/pkg/agent"
	"github.com/IlikeChooros/go-chess-agents/pkg/bench"
	"github.com/IlikeChooros/go-chess-agents/pkg/chess"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Shared state of the commands, filled before any subcommand runs
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "arena",
		Short:         "Play chess agents against each other",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return setupLogging(cfg.LogLevel)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (yaml, json or toml)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("white", "minimax", "white player: minimax, mcts or neural")
	flags.String("black", "mcts", "black player: minimax, mcts or neural")
	flags.Int("depth", 2, "minimax base depth, for both players")
	flags.String("perspective", "white", "minimax root maximizes for: white (always White's evaluation) or mover")
	flags.Int("simulations", 200, "mcts simulations per move, for both players")
	flags.String("convention", "white", "mcts rollout scoring: white (+1 for a White win) or mover")
	flags.StringSlice("moves", nil, "opening moves played before the agents take over (e2e4,e7e5)")
	flags.Int("max-plies", 0, "stop the game after this many plies, 0 for no limit")
	flags.String("record", "", "write the game record(s) to this yaml file")

	bind(a.v, flags, map[string]string{
		"log_level":         "log-level",
		"white.kind":        "white",
		"black.kind":        "black",
		"white.depth":       "depth",
		"black.depth":       "depth",
		"white.perspective": "perspective",
		"black.perspective": "perspective",
		"white.simulations": "simulations",
		"black.simulations": "simulations",
		"white.convention":  "convention",
		"black.convention":  "convention",
		"opening":           "moves",
		"max_plies":         "max-plies",
		"record":            "record",
	})

	root.AddCommand(newPlayCmd(a), newMatchCmd(a))
	return root
}

// Bind viper keys to flags, a flag only overrides the configuration when
// it was set on the command line
func bind(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "arena: log level")
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

// Agent factory for the player settings
func chessFactory(p config.Player, collector metrics.Collector) bench.Factory[chess.Move, *chess.Board] {
	return func() (agent.Agent[chess.Move, *chess.Board], error) {
		opts, err := p.AgentOptions()
		if err != nil {
			return nil, err
		}
		opts.Collector = collector
		return agent.NewChess(agent.Kind(p.Kind), opts)
	}
}
