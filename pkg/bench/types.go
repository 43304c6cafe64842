package bench

import (
	"sync/atomic"

	"github.com/IlikeChooros/go-chess-agents/pkg/game"
)

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

type VersusArenaStats struct {
	p1Wins     uint32
	p2Wins     uint32
	draws      uint32
	whiteWins  uint32
	blackWins  uint32
	unfinished uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

// Drawn games, unfinished ones included
func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) WhiteWins() int {
	return int(atomic.LoadUint32(&vas.whiteWins))
}

func (vas *VersusArenaStats) BlackWins() int {
	return int(atomic.LoadUint32(&vas.blackWins))
}

// Games stopped before a result (ply limit, interrupted)
func (vas *VersusArenaStats) Unfinished() int {
	return int(atomic.LoadUint32(&vas.unfinished))
}

func (vas *VersusArenaStats) add(result VersusMatchResult, outcome game.Outcome) {
	switch result {
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&vas.p2Wins, 1)
	default:
		atomic.AddUint32(&vas.draws, 1)
	}

	switch outcome {
	case game.WhiteWon:
		atomic.AddUint32(&vas.whiteWins, 1)
	case game.BlackWon:
		atomic.AddUint32(&vas.blackWins, 1)
	case game.NoOutcome:
		atomic.AddUint32(&vas.unfinished, 1)
	}
}

type VersusSummaryInfo struct {
	TotalGames int    `json:"total_games" yaml:"total_games"`
	P1Wins     int    `json:"player1_wins" yaml:"player1_wins"`
	P2Wins     int    `json:"player2_wins" yaml:"player2_wins"`
	WhiteWins  int    `json:"white_wins" yaml:"white_wins"`
	BlackWins  int    `json:"black_wins" yaml:"black_wins"`
	Draws      int    `json:"draws" yaml:"draws"`
	Unfinished int    `json:"unfinished" yaml:"unfinished"`
	Workers    int    `json:"workers" yaml:"workers"`
	P1Name     string `json:"player1_name" yaml:"player1_name"`
	P2Name     string `json:"player2_name" yaml:"player2_name"`
}

// maps a game outcome to which agent won, given player assignments
func toAgentResult(outcome game.Outcome, p1White bool) VersusMatchResult {
	winner, ok := outcome.Winner()
	if !ok {
		return VersusDraw
	}

	if (winner == game.White) == p1White {
		return VersusPl1Win
	}
	return VersusPl2Win
}
