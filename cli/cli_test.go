package cli

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"go.creack.net/breakout/entity"
	"go.creack.net/breakout/game"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "breakout.toml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("Write config: %s", err)
	}
	return p
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, opts, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	def := game.DefaultConfig()
	if cfg.Width != def.Width || cfg.Height != def.Height || !slices.Equal(cfg.RowColors, def.RowColors) {
		t.Errorf("Expected the default config, got %+v", cfg)
	}
	if opts.TPS != 60 || opts.Seed != 0 || opts.Listen != "" || opts.Demo || opts.Sound {
		t.Errorf("Unexpected default options: %+v", opts)
	}
	if opts.Rand() != nil {
		t.Error("Unseeded options should not return a random source")
	}
}

func TestParseConfigFlags(t *testing.T) {
	cfg, opts, err := ParseConfig([]string{
		"-variant", "tiered",
		"-width", "500",
		"-nudge-max", "5",
		"-seed", "42",
		"-listen", ":9000",
		"-demo",
		"-tps", "30",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !slices.Equal(cfg.RowColors, game.TieredRowColors()) {
		t.Errorf("Expected tiered rows, got %v", cfg.RowColors)
	}
	if cfg.Width != 500 || cfg.NudgeMax != 5 {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if opts.Seed != 42 || opts.Listen != ":9000" || !opts.Demo || opts.TPS != 30 {
		t.Errorf("Unexpected options: %+v", opts)
	}
	if opts.Rand() == nil {
		t.Error("Seeded options should return a random source")
	}
}

func TestParseConfigRowColors(t *testing.T) {
	cfg, _, err := ParseConfig([]string{"-row-colors", "Red, blue,GREEN"})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if want := []entity.Color{entity.Red, entity.Blue, entity.Green}; !slices.Equal(cfg.RowColors, want) {
		t.Errorf("Expected %v, got %v", want, cfg.RowColors)
	}
}

func TestParseConfigFile(t *testing.T) {
	p := writeFile(t, `
width = 600
ball_radius = 8
row_colors = ["red", "red", "blue"]
`)

	cfg, opts, err := ParseConfig([]string{"-config", p, "-ball-radius", "12"})
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if opts.ConfigPath != p {
		t.Errorf("Expected config path %q, got %q", p, opts.ConfigPath)
	}
	if cfg.Width != 600 {
		t.Errorf("Expected width from the file, got %v", cfg.Width)
	}
	if cfg.BallRadius != 12 {
		t.Errorf("Flags should win over the file, got radius %v", cfg.BallRadius)
	}
	if cfg.Height != game.DefaultConfig().Height {
		t.Errorf("Missing keys should keep the default, got height %v", cfg.Height)
	}
	if want := []entity.Color{entity.Red, entity.Red, entity.Blue}; !slices.Equal(cfg.RowColors, want) {
		t.Errorf("Expected %v, got %v", want, cfg.RowColors)
	}
}

func TestParseConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		args    []string
		invalid bool // Expect ErrInvalidConfig.
	}{
		{"unknown flag", []string{"-nope"}, false},
		{"bad variant", []string{"-variant", "rainbow"}, false},
		{"bad color", []string{"-row-colors", "green,pink,red"}, false},
		{"short rows", []string{"-row-colors", "green,red"}, true},
		{"zero width", []string{"-width", "0"}, true},
		{"negative nudge", []string{"-nudge-max", "-1"}, true},
		{"zero tps", []string{"-tps", "0"}, true},
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, false},
		{"unknown key", []string{"-config", writeFile(t, "colour = 1\n")}, true},
		{"bad file", []string{"-config", writeFile(t, "width = \n")}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseConfig(tc.args)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if got := errors.Is(err, game.ErrInvalidConfig); got != tc.invalid {
				t.Errorf("errors.Is(ErrInvalidConfig) = %t, want %t (%s)", got, tc.invalid, err)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, _, err := ParseConfig([]string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.RowColors = game.TieredRowColors()
	cfg.Width = 480

	var buf bytes.Buffer
	if err := WriteConfig(&buf, cfg); err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	got, _, err := ParseConfig([]string{"-config", writeFile(t, buf.String())})
	if err != nil {
		t.Fatalf("Reading back the written config: %s", err)
	}
	if got.Width != 480 || !slices.Equal(got.RowColors, cfg.RowColors) {
		t.Errorf("Expected %+v, got %+v", cfg, got)
	}
}
