package game

// Position abstraction used by every search algorithm. The position is
// mutated in place with MakeMove/Undo pairs, the searches must leave it
// exactly as they found it.
type PositionLike[T MoveLike, P any] interface {
	// Legal moves in a deterministic order, the same position must
	// always produce the same order (tie-breaking depends on it)
	LegalMoves() []T
	// Apply the move in place
	MakeMove(T)
	// Revert the last applied move
	Undo()
	// Whether the game has ended (mate, stalemate or a drawing rule)
	IsTerminated() bool
	// Result of the game, NoOutcome if not terminated
	Outcome() Outcome
	// Side to move
	Turn() Side
	// Deep copy, without any memory shared with the original
	Clone() P
}

// Position that can report how many pieces are on the board,
// used by the adaptive depth heuristics
type Counted interface {
	PieceCount() int
}

// Contains reports whether move is in the legal move list of pos
func Contains[T MoveLike, P PositionLike[T, P]](pos P, move T) bool {
	for _, m := range pos.LegalMoves() {
		if m == move {
			return true
		}
	}
	return false
}
