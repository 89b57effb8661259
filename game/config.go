package game

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration constants
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// StageSize is the bounding box of the trapezoid floor in pixels
	StageSize Vec2

	// Corner offsets of the floor relative to the stage origin.
	// The far edge is the top of the screen, the near edge the bottom.
	FarLeft, NearLeft, NearRight, FarRight Vec2

	// GameTicks is the length of a round in ticks (60 per second)
	GameTicks int

	// Seed drives the entity manager's random source
	Seed int64
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1024,
		ScreenHeight: 768,
		StageSize:    Vec2{600, 320},
		FarLeft:      Vec2{100, 0},
		NearLeft:     Vec2{0, 320},
		NearRight:    Vec2{600, 320},
		FarRight:     Vec2{490, 0},
		GameTicks:    60 * 100, // 100 seconds
		Seed:         1,
	}
}

// StageOrigin returns the top-left corner of the stage bounding box, centred
// on screen
func (c Config) StageOrigin() Vec2 {
	return Vec2{
		X: (float64(c.ScreenWidth) - c.StageSize.X) / 2,
		Y: (float64(c.ScreenHeight) - c.StageSize.Y) / 2,
	}
}

// ScreenCenter returns the middle of the screen
func (c Config) ScreenCenter() Vec2 {
	return Vec2{float64(c.ScreenWidth) / 2, float64(c.ScreenHeight) / 2}
}

// Validate checks the non-geometric settings. Geometry is validated by NewStage.
func (c Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.ScreenWidth, c.ScreenHeight)
	}
	if c.StageSize.X <= 0 || c.StageSize.Y <= 0 {
		return fmt.Errorf("%w: stage size %vx%v", ErrInvalidConfig, c.StageSize.X, c.StageSize.Y)
	}
	if c.GameTicks <= 0 {
		return fmt.Errorf("%w: game ticks %d", ErrInvalidConfig, c.GameTicks)
	}
	return nil
}
