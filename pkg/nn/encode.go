package nn

import "github.com/IlikeChooros/go-chess-agents/pkg/game"

const (
	// Squares on the board, a1 = 0, h8 = 63
	Squares = 64
	// One plane per piece kind and side: white pawn..king, then black pawn..king
	Planes    = 12
	InputSize = Planes * Squares
)

// Read-only piece placement the encoder needs
type PieceBoard interface {
	PieceAt(square int) (game.Piece, game.Side, bool)
}

// Plane holding given piece of given side
func Plane(piece game.Piece, side game.Side) int {
	return int(side)*6 + int(piece)
}

// One-hot encoding of the board, index is plane*64 + square
func Encode(b PieceBoard) []float64 {
	x := make([]float64, InputSize)
	for sq := range Squares {
		if piece, side, ok := b.PieceAt(sq); ok {
			x[Plane(piece, side)*Squares+sq] = 1
		}
	}
	return x
}
