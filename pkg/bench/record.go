package bench

import (
	"io"
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/game"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Why the driving loop stopped
type Termination int

const (
	// The position is terminated (mate, stalemate or a drawing rule)
	TerminationGameOver Termination = iota
	// The agent to move found no legal move
	TerminationNoMoves
	// Ply limit reached
	TerminationMaxPlies
	// Context cancelled
	TerminationInterrupted
)

var terminationNames = map[Termination]string{
	TerminationGameOver:    "game-over",
	TerminationNoMoves:     "no-moves",
	TerminationMaxPlies:    "max-plies",
	TerminationInterrupted: "interrupted",
}

func (t Termination) String() string {
	if name, ok := terminationNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t Termination) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Termination) UnmarshalText(text []byte) error {
	for term, name := range terminationNames {
		if name == string(text) {
			*t = term
			return nil
		}
	}
	return errors.Errorf("bench: unknown termination %q", string(text))
}

// Record of a single game
type Record struct {
	ID    uuid.UUID `yaml:"id" json:"id"`
	White string    `yaml:"white" json:"white"`
	Black string    `yaml:"black" json:"black"`
	// Moves played before the agents took over
	Opening     []string      `yaml:"opening,omitempty" json:"opening,omitempty"`
	Moves       []string      `yaml:"moves" json:"moves"`
	Result      string        `yaml:"result" json:"result"`
	Termination Termination   `yaml:"termination" json:"termination"`
	StartedAt   time.Time     `yaml:"started_at" json:"started_at"`
	Duration    time.Duration `yaml:"duration" json:"duration"`
}

func NewRecord(white, black string) *Record {
	return &Record{
		ID:        uuid.New(),
		White:     white,
		Black:     black,
		Moves:     make([]string, 0, 80),
		Result:    game.NoOutcome.String(),
		StartedAt: time.Now(),
	}
}

// Outcome of the recorded game, NoOutcome if it was not finished
func (r *Record) Outcome() game.Outcome {
	for _, o := range []game.Outcome{game.WhiteWon, game.BlackWon, game.Draw} {
		if o.String() == r.Result {
			return o
		}
	}
	return game.NoOutcome
}

func (r *Record) Plies() int {
	return len(r.Moves)
}

func (r *Record) WriteYAML(w io.Writer) error {
	return WriteRecords(w, r)
}

// Write the records as a multi-document yaml stream
func WriteRecords(w io.Writer, records ...*Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, "bench: encoding record")
		}
	}
	return enc.Close()
}

func ReadRecord(r io.Reader) (*Record, error) {
	records, err := ReadRecords(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("bench: no record")
	}
	return records[0], nil
}

// Read all records of a yaml stream written by WriteRecords
func ReadRecords(r io.Reader) ([]*Record, error) {
	dec := yaml.NewDecoder(r)
	records := []*Record{}
	for {
		rec := &Record{}
		err := dec.Decode(rec)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "bench: decoding record")
		}
		records = append(records, rec)
	}
}
