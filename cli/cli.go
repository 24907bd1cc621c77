// Package cli parses the command line and the optional config file shared
// by the breakout hosts.
package cli

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"go.creack.net/breakout/entity"
	"go.creack.net/breakout/game"
)

// Options are the host settings that are not part of the game config.
type Options struct {
	ConfigPath string
	Seed       uint64 // 0 means time seeded.
	Listen     string // Spectator address, empty disables it.
	Sound      bool
	Demo       bool // Let the autopilot play.
	TPS        int  // Ticks per second.
	DumpConfig bool
}

// Rand returns the random source for the round, nil when unseeded.
func (o Options) Rand() game.Rand {
	if o.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(o.Seed, o.Seed))
}

// rowColors is a flag.Value for a comma separated list of colors.
type rowColors struct{ dst *[]entity.Color }

func (rc rowColors) String() string {
	if rc.dst == nil {
		return ""
	}
	strs := make([]string, 0, len(*rc.dst))
	for _, elem := range *rc.dst {
		strs = append(strs, elem.String())
	}
	return strings.Join(strs, ",")
}

func (rc rowColors) Set(s string) error {
	var colors []entity.Color
	for _, elem := range strings.Split(s, ",") {
		c, err := entity.ParseColor(elem)
		if err != nil {
			return err
		}
		colors = append(colors, c)
	}
	*rc.dst = colors
	return nil
}

// variant is a flag.Value selecting a row color preset.
type variant struct{ dst *[]entity.Color }

func (v variant) String() string { return "" }

func (v variant) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic":
		*v.dst = game.ClassicRowColors()
	case "tiered":
		*v.dst = game.TieredRowColors()
	default:
		return fmt.Errorf("unknown variant %q, expected classic or tiered", s)
	}
	return nil
}

func newFlagSet(cfg *game.Config, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)

	fs.StringVar(&opts.ConfigPath, "config", "", "TOML config file, flags take precedence")
	fs.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 for a time based one")
	fs.StringVar(&opts.Listen, "listen", opts.Listen, "spectator websocket address, empty to disable")
	fs.BoolVar(&opts.Sound, "sound", opts.Sound, "play sound effects")
	fs.BoolVar(&opts.Demo, "demo", opts.Demo, "let the autopilot play")
	fs.IntVar(&opts.TPS, "tps", opts.TPS, "ticks per second")
	fs.BoolVar(&opts.DumpConfig, "dump-config", false, "print the resulting config as TOML and exit")

	fs.Var(variant{&cfg.RowColors}, "variant", "row color preset: classic or tiered")
	fs.Var(rowColors{&cfg.RowColors}, "row-colors", "comma separated initial color of each row, top to bottom")
	fs.Float64Var(&cfg.Width, "width", cfg.Width, "arena width")
	fs.Float64Var(&cfg.Height, "height", cfg.Height, "arena height")
	fs.Float64Var(&cfg.BallRadius, "ball-radius", cfg.BallRadius, "ball radius")
	fs.Float64Var(&cfg.PaddleWidth, "paddle-width", cfg.PaddleWidth, "paddle width, 0 for a quarter of the arena")
	fs.IntVar(&cfg.LaunchSpread, "launch-spread", cfg.LaunchSpread, "max horizontal launch impulse")
	fs.Float64Var(&cfg.SpeedFloor, "speed-floor", cfg.SpeedFloor, "axis speed under which the ball gets nudged")
	fs.IntVar(&cfg.NudgeMax, "nudge-max", cfg.NudgeMax, "max nudge impulse")

	return fs
}

// ParseConfig builds the game config from the defaults, the optional
// -config file and the flags, in that order of precedence.
func ParseConfig(args []string) (game.Config, Options, error) {
	cfg := game.DefaultConfig()
	opts := Options{TPS: 60}

	fs := newFlagSet(&cfg, &opts)
	if err := fs.Parse(args); err != nil {
		return game.Config{}, Options{}, fmt.Errorf("parse flags: %w", err)
	}

	if opts.ConfigPath != "" {
		md, err := toml.DecodeFile(opts.ConfigPath, &cfg)
		if err != nil {
			return game.Config{}, Options{}, fmt.Errorf("load config %q: %w", opts.ConfigPath, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, elem := range undecoded {
				keys = append(keys, elem.String())
			}
			return game.Config{}, Options{}, fmt.Errorf("unknown keys in %q: %s: %w", opts.ConfigPath, strings.Join(keys, ", "), game.ErrInvalidConfig)
		}
		// The file overwrote the flag values, apply them again.
		if err := fs.Parse(args); err != nil {
			return game.Config{}, Options{}, fmt.Errorf("parse flags: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return game.Config{}, Options{}, fmt.Errorf("validate config: %w", err)
	}
	if opts.TPS <= 0 {
		return game.Config{}, Options{}, fmt.Errorf("tps must be positive, got %d: %w", opts.TPS, game.ErrInvalidConfig)
	}
	return cfg, opts, nil
}

// WriteConfig encodes cfg as TOML, in the format -config reads.
func WriteConfig(w io.Writer, cfg game.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
