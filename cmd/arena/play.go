package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/IlikeChooros/go-chess-agents/pkg/bench"
	"github.com/IlikeChooros/go-chess-agents/pkg/chess"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single game, printing the board after every move",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.play(ctx)
		},
	}

	cmd.Flags().Duration("delay", 0, "pause after every move (300ms)")
	bind(a.v, cmd.Flags(), map[string]string{"delay": "delay"})
	return cmd
}

func (a *app) play(ctx context.Context) error {
	collector := metrics.NewDummyCollector()
	white, err := chessFactory(a.cfg.White, collector)()
	if err != nil {
		return errors.Wrap(err, "arena: white player")
	}
	black, err := chessFactory(a.cfg.Black, collector)()
	if err != nil {
		return errors.Wrap(err, "arena: black player")
	}

	out := termenv.NewOutput(os.Stdout)
	printer := &boardPrinter{out: out}

	match := bench.NewMatch(white, black)
	match.MaxPlies = a.cfg.MaxPlies
	match.Delay = a.cfg.Delay
	match.Opening = a.cfg.Opening
	match.Listener = printer

	log.Info().Str("white", white.Name()).Str("black", black.Name()).Msg("game started")

	b := chess.NewBoard()
	printer.print(b, "")
	record, err := match.Play(ctx, b)
	if err != nil {
		return err
	}

	log.Info().
		Str("result", record.Result).
		Stringer("termination", record.Termination).
		Int("plies", record.Plies()).
		Dur("duration", record.Duration).
		Msg("game finished")

	if a.cfg.Record != "" {
		return writeRecords(a.cfg.Record, record)
	}
	return nil
}

func writeRecords(path string, records ...*bench.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "arena: creating record file")
	}
	defer f.Close()

	if err := bench.WriteRecords(f, records...); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("games", len(records)).Msg("records written")
	return nil
}
