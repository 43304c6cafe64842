package chess

import (
	"math/bits"

	dragon "github.com/IlikeChooros/dragontoothmg"
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
)

// Leaper attack tables, squares are indexed a1=0, b1=1, ..., h8=63.
// Sliders use the engine's magic bitboards.

var (
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
	// pawnSources[side][sq] = squares from which a pawn of 'side' attacks 'sq'
	pawnSources [2][64]uint64
)

var (
	knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func squareMask(file, rank int) uint64 {
	return 1 << uint(rank*8+file)
}

func init() {
	for sq := 0; sq < 64; sq++ {
		file, rank := sq%8, sq/8

		for _, d := range knightDeltas {
			if onBoard(file+d[0], rank+d[1]) {
				knightAttacks[sq] |= squareMask(file+d[0], rank+d[1])
			}
		}

		for _, d := range kingDeltas {
			if onBoard(file+d[0], rank+d[1]) {
				kingAttacks[sq] |= squareMask(file+d[0], rank+d[1])
			}
		}

		// White pawns attack upwards, so they sit one rank below the target
		for _, df := range [2]int{-1, 1} {
			if onBoard(file+df, rank-1) {
				pawnSources[game.White][sq] |= squareMask(file+df, rank-1)
			}
			if onBoard(file+df, rank+1) {
				pawnSources[game.Black][sq] |= squareMask(file+df, rank+1)
			}
		}
	}
}

// Number of pieces in 'by' (belonging to 'side') attacking 'sq', pinned pieces included
func countAttackers(by *dragon.Bitboards, side game.Side, occupied uint64, sq int) int {
	count := bits.OnesCount64(knightAttacks[sq] & by.Knights)
	count += bits.OnesCount64(kingAttacks[sq] & by.Kings)
	count += bits.OnesCount64(pawnSources[side][sq] & by.Pawns)
	count += bits.OnesCount64(dragon.CalculateRookMoveBitboard(uint8(sq), occupied) & (by.Rooks | by.Queens))
	count += bits.OnesCount64(dragon.CalculateBishopMoveBitboard(uint8(sq), occupied) & (by.Bishops | by.Queens))
	return count
}
