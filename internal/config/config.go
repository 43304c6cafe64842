package config

import (
	"os"
	"strings"
	"time"

	"github.com/IlikeChooros/go-chess-agents/pkg/agent"
	"github.com/IlikeChooros/go-chess-agents/pkg/mcts"
	"github.com/IlikeChooros/go-chess-agents/pkg/minimax"
	"github.com/IlikeChooros/go-chess-agents/pkg/nn"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "ARENA"

var validate = validator.New()

// Player settings, the fields not used by the kind are ignored
type Player struct {
	Kind  string `mapstructure:"kind" validate:"oneof=minimax mcts neural"`
	Depth int    `mapstructure:"depth" validate:"gte=1"`
	// Minimax: "white" maximizes White's evaluation, "mover" the side to move
	Perspective string `mapstructure:"perspective" validate:"oneof=white mover"`
	Simulations int    `mapstructure:"simulations" validate:"gte=1"`
	// MCTS: "white" scores rollouts as +1 for a White win, "mover" for the side to move
	Convention string `mapstructure:"convention" validate:"oneof=white mover"`
	Seed       uint64 `mapstructure:"seed"`
	// Network weights written by nn.Network.Save, random weights if empty
	Weights string `mapstructure:"weights"`
}

type Config struct {
	White    Player        `mapstructure:"white"`
	Black    Player        `mapstructure:"black"`
	Games    int           `mapstructure:"games" validate:"gte=1"`
	Workers  int           `mapstructure:"workers" validate:"gte=1"`
	MaxPlies int           `mapstructure:"max_plies" validate:"gte=0"`
	Delay    time.Duration `mapstructure:"delay" validate:"gte=0"`
	Opening  []string      `mapstructure:"opening"`
	// Where to write the game record(s), nothing is written if empty
	Record      string `mapstructure:"record"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Registers the default of every key, the environment variables are only
// looked up for known keys
func SetDefaults(v *viper.Viper) {
	for _, side := range []string{"white", "black"} {
		v.SetDefault(side+".kind", "minimax")
		v.SetDefault(side+".depth", minimax.DefaultBaseDepth)
		v.SetDefault(side+".perspective", minimax.PerspectiveWhite.String())
		v.SetDefault(side+".simulations", mcts.DefaultSimulations)
		v.SetDefault(side+".convention", mcts.ConventionWhite.String())
		v.SetDefault(side+".seed", 0)
		v.SetDefault(side+".weights", "")
	}
	v.SetDefault("black.kind", "mcts")

	v.SetDefault("games", 10)
	v.SetDefault("workers", 2)
	v.SetDefault("max_plies", 0)
	v.SetDefault("delay", time.Duration(0))
	v.SetDefault("opening", []string{})
	v.SetDefault("record", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
}

// Load the configuration: defaults, then the file at 'path' (if not empty),
// then ARENA_* environment variables, then whatever was bound to 'v' before
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: reading %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: decoding")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "config: invalid")
	}
	return nil
}

func (p Player) MinimaxPerspective() minimax.Perspective {
	if p.Perspective == minimax.PerspectiveMover.String() {
		return minimax.PerspectiveMover
	}
	return minimax.PerspectiveWhite
}

func (p Player) MCTSConvention() mcts.Convention {
	if p.Convention == mcts.ConventionMover.String() {
		return mcts.ConventionMover
	}
	return mcts.ConventionWhite
}

// Agent options described by the player settings, loads the network weights
func (p Player) AgentOptions() (agent.Options, error) {
	opts := agent.Options{
		Depth:       p.Depth,
		Perspective: p.MinimaxPerspective(),
		Simulations: p.Simulations,
		Convention:  p.MCTSConvention(),
		Seed:        p.Seed,
	}

	if p.Kind == string(agent.KindNeural) && p.Weights != "" {
		f, err := os.Open(p.Weights)
		if err != nil {
			return opts, errors.Wrap(err, "config: opening weights")
		}
		defer f.Close()

		network, err := nn.Load(f)
		if err != nil {
			return opts, errors.Wrapf(err, "config: loading %s", p.Weights)
		}
		opts.Network = network
	}
	return opts, nil
}
