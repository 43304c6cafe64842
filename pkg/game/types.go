package game

// Moves are opaque to the search, they only have to be comparable
// so they can be matched against the legal move list
type MoveLike comparable

type Side int8

const (
	White Side = iota
	Black
)

func (s Side) Other() Side {
	return s ^ 1
}

func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

// Piece kinds, in the order used by the evaluators and the nn encoder
type Piece int8

const (
	Pawn Piece = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// All piece kinds, king included
var Pieces = [...]Piece{Pawn, Knight, Bishop, Rook, Queen, King}

func (p Piece) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Final result of a game, NoOutcome while the game is still running
type Outcome int8

const (
	NoOutcome Outcome = iota
	WhiteWon
	BlackWon
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWon:
		return "1-0"
	case BlackWon:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// Value of the outcome with White as the maximizing side: +1 win, -1 loss, 0 draw
func (o Outcome) Value() float64 {
	switch o {
	case WhiteWon:
		return 1
	case BlackWon:
		return -1
	}
	return 0
}

// Winner returns the winning side, ok is false for draws and running games
func (o Outcome) Winner() (Side, bool) {
	switch o {
	case WhiteWon:
		return White, true
	case BlackWon:
		return Black, true
	}
	return White, false
}

func WinFor(side Side) Outcome {
	if side == White {
		return WhiteWon
	}
	return BlackWon
}
