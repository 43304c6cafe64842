package bench

import (
	"context"
	"sync"
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/agent"
	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/IlikeChooros/go-chess-agents/pkg/metrics"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

/*
Arena benchmark subpackage, allows to play a series of games between two
agent configurations. Every worker builds its own agents and plays on its own
copy of the starting position, the players swap colours every game.
*/

// Creates a fresh agent, called once per worker
type Factory[T game.MoveLike, P any] func() (agent.Agent[T, P], error)

type VersusArena[T game.MoveLike, P game.PositionLike[T, P]] struct {
	VersusArenaStats
	Player1  Factory[T, P]
	Player2  Factory[T, P]
	NGames   int
	NThreads int
	MaxPlies int
	Opening  []string
	Position P
	// Shared by all workers, wrap it with ArenaListener if it's not safe
	// for concurrent use
	Listener  ListenerLike[T, P]
	Collector metrics.Collector

	mu      sync.Mutex
	records []*Record
	names   [2]string
}

func NewVersusArena[T game.MoveLike, P game.PositionLike[T, P]](
	position P, player1, player2 Factory[T, P],
) *VersusArena[T, P] {
	return &VersusArena[T, P]{
		Player1:   player1,
		Player2:   player2,
		NGames:    100,
		NThreads:  2,
		Position:  position,
		Listener:  DefaultListener[T, P]{},
		Collector: metrics.NewDummyCollector(),
	}
}

func (va *VersusArena[T, P]) Setup(nGames, nThreads, maxPlies int) *VersusArena[T, P] {
	va.NGames = max(nGames, 0)
	va.NThreads = max(nThreads, 1)
	va.MaxPlies = max(maxPlies, 0)
	return va
}

// Play all the games, blocks until they are finished or the context is
// cancelled. Player 1 is White in even games. The first error of any worker
// stops the remaining ones.
func (va *VersusArena[T, P]) Run(ctx context.Context) error {
	nThreads := min(max(va.NThreads, 1), max(va.NGames, 1))
	nGames := va.NGames / nThreads
	rest := va.NGames % nThreads

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	first := 0
	for i := range nThreads {
		n := nGames
		if rest > 0 {
			n++
			rest--
		}
		// Cloned here, the workers never touch the shared position
		id, from, pos := i, first, va.Position.Clone()
		g.Go(func() error {
			return va.worker(ctx, id, from, n, pos)
		})
		first += n
	}

	err := g.Wait()
	log.Debug().
		Int("games", va.Total()).
		Int("workers", nThreads).
		Dur("elapsed", time.Since(start)).
		Msg("arena finished")
	return err
}

// Play games [first, first+n)
func (va *VersusArena[T, P]) worker(ctx context.Context, id, first, n int, start P) error {
	p1, err := va.Player1()
	if err != nil {
		return errors.Wrap(err, "bench: creating player 1")
	}
	p2, err := va.Player2()
	if err != nil {
		return errors.Wrap(err, "bench: creating player 2")
	}
	va.setNames(p1.Name(), p2.Name())

	for i := first; i < first+n; i++ {
		if ctx.Err() != nil {
			return nil
		}

		p1White := i%2 == 0
		match := NewMatch(p1, p2)
		if !p1White {
			match = NewMatch(p2, p1)
		}
		match.MaxPlies = va.MaxPlies
		match.Opening = va.Opening
		match.Listener = va.Listener
		match.Collector = va.Collector

		pos := start.Clone()
		record, err := match.Play(ctx, pos)
		if err != nil {
			return errors.Wrapf(err, "bench: worker %d, game %d", id, i)
		}

		outcome := record.Outcome()
		va.add(toAgentResult(outcome, p1White), outcome)

		va.mu.Lock()
		va.records = append(va.records, record)
		va.mu.Unlock()
	}
	return nil
}

func (va *VersusArena[T, P]) setNames(p1, p2 string) {
	va.mu.Lock()
	defer va.mu.Unlock()
	va.names = [2]string{p1, p2}
}

// Records of the finished games, in the order they were finished
func (va *VersusArena[T, P]) Records() []*Record {
	va.mu.Lock()
	defer va.mu.Unlock()
	return append([]*Record(nil), va.records...)
}

func (va *VersusArena[T, P]) Summary() VersusSummaryInfo {
	va.mu.Lock()
	names := va.names
	va.mu.Unlock()

	return VersusSummaryInfo{
		TotalGames: va.Total(),
		P1Wins:     va.P1Wins(),
		P2Wins:     va.P2Wins(),
		WhiteWins:  va.WhiteWins(),
		BlackWins:  va.BlackWins(),
		Draws:      va.Draws(),
		Unfinished: va.Unfinished(),
		Workers:    max(va.NThreads, 1),
		P1Name:     names[0],
		P2Name:     names[1],
	}
}
