package bench

import (
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/game"
)

// Information about a move made by the driving loop
type MoveInfo[T game.MoveLike] struct {
	GameID   string
	Ply      int
	Side     game.Side
	Agent    string
	Move     T
	Notation string
	Elapsed  time.Duration
}

// Callbacks of the driving loop. The position is the game's own position,
// listeners may read it but must not modify it.
type ListenerLike[T game.MoveLike, P any] interface {
	OnMoveMade(info MoveInfo[T], pos P)
	OnFinishedGame(record *Record, pos P)
}

// Listener doing nothing
type DefaultListener[T game.MoveLike, P any] struct{}

func (DefaultListener[T, P]) OnMoveMade(info MoveInfo[T], pos P)   {}
func (DefaultListener[T, P]) OnFinishedGame(record *Record, pos P) {}

// Listener built from optional callbacks
type ListenerFuncs[T game.MoveLike, P any] struct {
	MoveMade     func(info MoveInfo[T], pos P)
	FinishedGame func(record *Record, pos P)
}

func (l ListenerFuncs[T, P]) OnMoveMade(info MoveInfo[T], pos P) {
	if l.MoveMade != nil {
		l.MoveMade(info, pos)
	}
}

func (l ListenerFuncs[T, P]) OnFinishedGame(record *Record, pos P) {
	if l.FinishedGame != nil {
		l.FinishedGame(record, pos)
	}
}
