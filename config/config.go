// Package config loads board configuration from YAML and command-line
// flags on top of tetris.DefaultConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/tetris"
	"gopkg.in/yaml.v3"
)

// Load decodes a YAML document over the default configuration. Unknown
// keys are rejected. An empty document yields the defaults.
func Load(r io.Reader) (tetris.Config, error) {
	cfg := tetris.DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return tetris.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return tetris.Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the configuration at path.
func LoadFile(path string) (tetris.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return tetris.Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return tetris.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the board fields and that every colour name resolves.
func Validate(cfg tetris.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := render.NewPalette(cfg.Colors); err != nil {
		return fmt.Errorf("%w: %w", tetris.ErrInvalidConfig, err)
	}
	return nil
}

// Flags are the options shared by every binary. Zero values leave the
// loaded configuration untouched.
type Flags struct {
	Path  string
	Speed int
	Cols  int
	Rows  int
	Seed  uint64
	Quiet bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Path, "config", "", "Path to a YAML board configuration.")
	fs.IntVar(&f.Speed, "speed", 0, "Ticks per second, overriding the configuration.")
	fs.IntVar(&f.Cols, "cols", 0, "Board width in cells, overriding the configuration.")
	fs.IntVar(&f.Rows, "rows", 0, "Board height in cells, overriding the configuration.")
	fs.Uint64Var(&f.Seed, "seed", 0, "Seed for the piece sequence. 0 picks one from the clock.")
	fs.BoolVar(&f.Quiet, "quiet", false, "Suppress the stop event.")
}

// Resolve loads the configured file, or the defaults, and applies the
// overrides.
func (f *Flags) Resolve() (tetris.Config, error) {
	cfg := tetris.DefaultConfig()
	if f.Path != "" {
		var err error
		if cfg, err = LoadFile(f.Path); err != nil {
			return tetris.Config{}, err
		}
	}

	if f.Speed != 0 {
		cfg.Speed = f.Speed
	}
	if f.Cols != 0 {
		cfg.Cols = f.Cols
	}
	if f.Rows != 0 {
		cfg.Rows = f.Rows
	}
	if f.Quiet {
		cfg.Quiet = true
	}

	if err := Validate(cfg); err != nil {
		return tetris.Config{}, err
	}
	return cfg, nil
}
