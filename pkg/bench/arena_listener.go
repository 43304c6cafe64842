package bench

import (
	"sync"

	"github.com/IlikeChooros/go-chess-agents/pkg/game"
)

// ArenaListener distributes the callbacks of all arena workers to the given
// listeners, one call at a time, so they don't have to be safe for
// concurrent use.
type ArenaListener[T game.MoveLike, P any] struct {
	mu        sync.Mutex
	listeners []ListenerLike[T, P]
}

func NewArenaListener[T game.MoveLike, P any](listeners ...ListenerLike[T, P]) *ArenaListener[T, P] {
	return &ArenaListener[T, P]{listeners: listeners}
}

func (al *ArenaListener[T, P]) Add(listener ListenerLike[T, P]) {
	al.mu.Lock()
	defer al.mu.Unlock()
	al.listeners = append(al.listeners, listener)
}

func (al *ArenaListener[T, P]) OnMoveMade(info MoveInfo[T], pos P) {
	al.mu.Lock()
	defer al.mu.Unlock()
	for _, l := range al.listeners {
		l.OnMoveMade(info, pos)
	}
}

func (al *ArenaListener[T, P]) OnFinishedGame(record *Record, pos P) {
	al.mu.Lock()
	defer al.mu.Unlock()
	for _, l := range al.listeners {
		l.OnFinishedGame(record, pos)
	}
}
