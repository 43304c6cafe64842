// Package eval holds the static heuristic used by the minimax agent.
//
// Scores are always expressed from White's point of view, positive values
// favour White. Sign handling for the side to move is left to the search.
package eval

import "github.com/IlikeChooros/go-chess-agents/pkg/game"

// Read-only view of a position the evaluator needs
type Board interface {
	// Side to move
	Turn() game.Side
	// Whether the side to move is in check
	IsCheck() bool
	// Number of pieces of given kind and side
	Count(piece game.Piece, side game.Side) int
	// Square of the side's king, ok is false if there is no king
	KingSquare(side game.Side) (square int, ok bool)
	// Number of pieces of 'side' attacking 'square'
	Attackers(side game.Side, square int) int
}

const (
	// Bonus/penalty for the side giving/receiving check
	CheckBonus = 2.0
	// Penalty per enemy piece attacking the king
	KingAttackerPenalty = 0.5
	// Safety score of a side without a king
	MissingKingPenalty = -100.0
)

// Material weights, the king is not counted
var Weights = map[game.Piece]float64{
	game.Pawn:   1,
	game.Knight: 3,
	game.Bishop: 3,
	game.Rook:   5,
	game.Queen:  9,
}

// Evaluate the position statically
func Evaluate(b Board) float64 {
	score := Material(b, game.White) - Material(b, game.Black)

	// Being in check is bad for the side to move
	if b.IsCheck() {
		if b.Turn() == game.White {
			score -= CheckBonus
		} else {
			score += CheckBonus
		}
	}

	score += KingSafety(b, game.White)
	score -= KingSafety(b, game.Black)
	return score
}

// Weighted material sum of one side
func Material(b Board, side game.Side) float64 {
	var sum float64
	for piece, weight := range Weights {
		sum += float64(b.Count(piece, side)) * weight
	}
	return sum
}

// King safety of one side, non-positive: -0.5 per attacker of the king square
func KingSafety(b Board, side game.Side) float64 {
	square, ok := b.KingSquare(side)
	if !ok {
		return MissingKingPenalty
	}
	return -KingAttackerPenalty * float64(b.Attackers(side.Other(), square))
}
