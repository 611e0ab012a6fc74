package tetris

import (
	"errors"
	"fmt"
	"maps"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MaxSpeed is the highest accepted tick rate, in ticks per second.
const MaxSpeed = 1000

// Config holds the recognized board and loop options.
type Config struct {
	ID       string          `yaml:"id"`
	Cols     int             `yaml:"cols"`
	Rows     int             `yaml:"rows"`
	CellSize int             `yaml:"cell_size"`
	Padding  int             `yaml:"padding"`
	Speed    int             `yaml:"speed"`
	Quiet    bool            `yaml:"quiet"`
	Colors   map[Cell]string `yaml:"colors"`
}

// DefaultConfig returns the standard 10x15 board at two ticks per second.
func DefaultConfig() Config {
	return Config{
		ID:       "board",
		Cols:     10,
		Rows:     15,
		CellSize: 30,
		Padding:  5,
		Speed:    2,
		Colors:   DefaultColors(),
	}
}

// DefaultColors returns the default colour names per cell code. Codes 0
// and 1 map to no colour and are never drawn.
func DefaultColors() map[Cell]string {
	return map[Cell]string{
		0: "",
		1: "",
		2: "aqua",
		3: "green",
		4: "gold",
		5: "indigo",
		6: "red",
		7: "blue",
		8: "darkorange",
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Cols < MaxMatrixSize:
		return fmt.Errorf("%w: cols must be at least %d, got %d", ErrInvalidConfig, MaxMatrixSize, c.Cols)
	case c.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidConfig, c.Rows)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalidConfig, c.CellSize)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding must not be negative, got %d", ErrInvalidConfig, c.Padding)
	case c.Speed <= 0:
		return fmt.Errorf("%w: speed must be positive, got %d", ErrInvalidConfig, c.Speed)
	case c.Speed > MaxSpeed:
		return fmt.Errorf("%w: speed must be at most %d, got %d", ErrInvalidConfig, MaxSpeed, c.Speed)
	}
	return nil
}

func (c Config) clone() Config {
	c.Colors = maps.Clone(c.Colors)
	return c
}
