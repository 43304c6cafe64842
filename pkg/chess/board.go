package chess

/*
Chess rules collaborator for the search packages.

Legal move generation, make/undo, check detection and slider attacks come
from github.com/IlikeChooros/dragontoothmg. On top of it this package answers
the questions the evaluators ask (piece counts, attackers of a square, king
squares) straight from the engine's bitboards.

A game is over on checkmate, stalemate, insufficient material, the 75-move
rule or a fivefold repetition. The 50-move rule and threefold repetition only
allow a player to claim a draw, so they don't end the game here.
*/

import (
	"math/bits"
	"strings"

	dragon "github.com/IlikeChooros/dragontoothmg"
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/pkg/errors"
)

const (
	// Position is drawn after 75 moves without a capture or pawn move
	seventyFiveMoveRule = 150
	// Position is drawn once it appears for the fifth time
	fivefoldRepetition = 5
)

// Light squares mask (b1, d1, ..., a2, c2, ...)
const lightSquares uint64 = 0x55AA55AA55AA55AA

type Move = dragon.Move

// Board implements game.PositionLike for chess. It owns the engine board
// and is not safe for concurrent use, clone it per goroutine.
type Board struct {
	board *dragon.Board
	// legal moves of the current position, nil when stale
	moves []Move
	// zobrist keys of every position of the game, the current one last
	keys []uint64
}

var _ game.PositionLike[Move, *Board] = (*Board)(nil)

// New board in the standard starting position
func NewBoard() *Board {
	return newBoard(dragon.NewBoard())
}

func newBoard(board *dragon.Board) *Board {
	keys := make([]uint64, 1, 128)
	keys[0] = board.Hash()
	return &Board{board: board, keys: keys}
}

// Board set up from the Forsyth-Edwards notation
func FromFEN(fen string) (*Board, error) {
	if len(strings.Fields(fen)) != 6 {
		return nil, errors.Errorf("chess: malformed FEN %q", fen)
	}
	board := dragon.ParseFen(fen)
	return newBoard(&board), nil
}

// New board from the starting position after playing the given moves,
// written in the long algebraic notation (e2e4, e7e8q)
func FromMoves(moves ...string) (*Board, error) {
	b := NewBoard()
	for _, notation := range moves {
		m, err := b.ParseMove(notation)
		if err != nil {
			return nil, err
		}
		b.MakeMove(m)
	}
	return b, nil
}

// Parse a move in the long algebraic notation, it must be legal in the position
func (b *Board) ParseMove(notation string) (Move, error) {
	m, err := dragon.ParseMove(notation)
	if err != nil {
		return 0, errors.Wrapf(err, "chess: parsing %q", notation)
	}
	if !b.board.IsLegal(m) {
		return 0, errors.Errorf("chess: move %q is not legal in %s", notation, b.FEN())
	}
	return m, nil
}

func (b *Board) LegalMoves() []Move {
	if b.moves == nil {
		b.moves = b.board.GenerateLegalMoves()
	}
	return b.moves
}

func (b *Board) MakeMove(m Move) {
	b.board.Make(m)
	b.moves = nil
	b.keys = append(b.keys, b.board.Hash())
}

func (b *Board) Undo() {
	b.board.Undo()
	b.moves = nil
	if len(b.keys) > 1 {
		b.keys = b.keys[:len(b.keys)-1]
	}
}

func (b *Board) IsTerminated() bool {
	return len(b.LegalMoves()) == 0 ||
		b.InsufficientMaterial() ||
		b.board.Halfmoveclock >= seventyFiveMoveRule ||
		b.Repetitions() >= fivefoldRepetition
}

// How many times the current position has occurred, this one included.
// Only positions since the last capture or pawn move can repeat.
func (b *Board) Repetitions() int {
	last := len(b.keys) - 1
	stop := max(last-int(b.board.Halfmoveclock), 0)

	count := 0
	for i := last; i >= stop; i -= 2 {
		if b.keys[i] == b.keys[last] {
			count++
		}
	}
	return count
}

// Checkmate is a win for the side that just moved, every other termination is a draw
func (b *Board) Outcome() game.Outcome {
	if !b.IsTerminated() {
		return game.NoOutcome
	}
	if b.IsCheckmate() {
		return game.WinFor(b.Turn().Other())
	}
	return game.Draw
}

func (b *Board) IsCheckmate() bool {
	return len(b.LegalMoves()) == 0 && b.IsCheck()
}

func (b *Board) IsStalemate() bool {
	return len(b.LegalMoves()) == 0 && !b.IsCheck()
}

func (b *Board) Turn() game.Side {
	if b.board.Wtomove {
		return game.White
	}
	return game.Black
}

func (b *Board) Clone() *Board {
	return &Board{
		board: b.board.Clone(),
		keys:  append(make([]uint64, 0, cap(b.keys)), b.keys...),
	}
}

// Forsyth-Edwards notation of the position, describes the full state
// (placement, side to move, castling, en passant and move counters)
func (b *Board) FEN() string {
	return b.board.ToFen()
}

func (b *Board) String() string {
	return b.FEN()
}

func (b *Board) bitboards(side game.Side) *dragon.Bitboards {
	if side == game.White {
		return &b.board.White
	}
	return &b.board.Black
}

func pieceBitboard(bbs *dragon.Bitboards, piece game.Piece) uint64 {
	switch piece {
	case game.Pawn:
		return bbs.Pawns
	case game.Knight:
		return bbs.Knights
	case game.Bishop:
		return bbs.Bishops
	case game.Rook:
		return bbs.Rooks
	case game.Queen:
		return bbs.Queens
	case game.King:
		return bbs.Kings
	}
	return 0
}

func (b *Board) occupied() uint64 {
	return b.board.White.All | b.board.Black.All
}

// Total number of pieces on the board, kings and pawns included
func (b *Board) PieceCount() int {
	return bits.OnesCount64(b.occupied())
}

func (b *Board) Count(piece game.Piece, side game.Side) int {
	return bits.OnesCount64(pieceBitboard(b.bitboards(side), piece))
}

func (b *Board) KingSquare(side game.Side) (int, bool) {
	kings := b.bitboards(side).Kings
	if kings == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(kings), true
}

func (b *Board) Attackers(side game.Side, square int) int {
	return countAttackers(b.bitboards(side), side, b.occupied(), square)
}

// Whether the side to move is in check
func (b *Board) IsCheck() bool {
	return b.board.OurKingInCheck()
}

// Piece standing on the square, ok is false for an empty square
func (b *Board) PieceAt(square int) (game.Piece, game.Side, bool) {
	piece, white := dragon.GetPieceType(uint8(square), b.board)
	if piece == dragon.Nothing {
		return game.Pawn, game.White, false
	}

	side := game.Black
	if white {
		side = game.White
	}
	// engine kinds start at Pawn = 1
	return game.Piece(piece - dragon.Pawn), side, true
}

// Neither side can possibly deliver mate: bare kings, a single minor piece,
// or bishops only, all standing on the same square colour
func (b *Board) InsufficientMaterial() bool {
	w, bl := b.bitboards(game.White), b.bitboards(game.Black)
	if w.Pawns|bl.Pawns|w.Rooks|bl.Rooks|w.Queens|bl.Queens != 0 {
		return false
	}

	if bits.OnesCount64(w.Knights|w.Bishops|bl.Knights|bl.Bishops) <= 1 {
		return true
	}

	if w.Knights|bl.Knights == 0 {
		bishops := w.Bishops | bl.Bishops
		return bishops&lightSquares == 0 || bishops&^lightSquares == 0
	}
	return false
}
