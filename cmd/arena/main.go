package main

/*
Arena: lets the chess agents play against each other.

	arena play --white minimax --black mcts --delay 300ms
	arena match --games 100 --workers 4 --metrics-addr :9090
*/

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}
}
