package engine

import (
	"fmt"
	"time"

	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/dragsession"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/flip"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/selection"
	"github.com/Magstic/J2ME-Launcher-sub001/internal/grid/spatial"
)

// Config holds every engine tunable. Lengths share the unit of the render
// port (pixels for a browser-like surface, cells for a terminal).
type Config struct {
	MinItemWidth float64 `yaml:"min_item_width"`
	RowHeight    float64 `yaml:"row_height"`
	BufferRows   int     `yaml:"buffer_rows"`

	BucketSize    float64       `yaml:"bucket_size"`
	DragThreshold float64       `yaml:"drag_threshold"`
	RecomputeHz   float64       `yaml:"recompute_hz"`
	FadeOut       time.Duration `yaml:"fade_out"`
	DoubleClick   time.Duration `yaml:"double_click"`

	FlipDuration time.Duration `yaml:"flip_duration"`
	FlipEasing   string        `yaml:"flip_easing"`
	FlipFade     bool          `yaml:"flip_fade"`
	FlipFadeFrom float64       `yaml:"flip_fade_from"`

	TeardownDelay time.Duration `yaml:"teardown_delay"`
	PreviewLayers int           `yaml:"preview_layers"`

	// Strict turns programming errors such as stale index queries into
	// panics. Leave it off in release builds.
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns pixel-unit defaults.
func DefaultConfig() Config {
	return Config{
		MinItemWidth:  160,
		RowHeight:     150,
		BufferRows:    2,
		BucketSize:    spatial.DefaultBucketSize,
		DragThreshold: selection.DefaultDragThreshold,
		RecomputeHz:   selection.DefaultRecomputeHz,
		FadeOut:       selection.DefaultFadeOut,
		DoubleClick:   selection.DefaultDoubleClick,
		FlipDuration:  flip.DefaultDuration,
		FlipEasing:    flip.EaseOut,
		FlipFadeFrom:  flip.DefaultFadeFrom,
		TeardownDelay: dragsession.DefaultTeardownDelay,
		PreviewLayers: dragsession.DefaultPreviewLayers,
	}
}

// Validate rejects values no component can work with.
func (c Config) Validate() error {
	if c.MinItemWidth <= 0 {
		return fmt.Errorf("min_item_width must be positive, got %v", c.MinItemWidth)
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("row_height must be positive, got %v", c.RowHeight)
	}
	if c.BufferRows < 0 {
		return fmt.Errorf("buffer_rows must not be negative, got %d", c.BufferRows)
	}
	if c.BucketSize < 0 {
		return fmt.Errorf("bucket_size must not be negative, got %v", c.BucketSize)
	}
	if c.RecomputeHz < 0 {
		return fmt.Errorf("recompute_hz must not be negative, got %v", c.RecomputeHz)
	}
	switch c.FlipEasing {
	case "", flip.EaseLinear, flip.EaseIn, flip.EaseOut, flip.EaseInOut, flip.EaseSmoothstep:
	default:
		return fmt.Errorf("unknown flip_easing %q", c.FlipEasing)
	}
	return nil
}

func (c Config) selectionConfig() selection.Config {
	return selection.Config{
		DragThreshold: c.DragThreshold,
		BucketSize:    c.BucketSize,
		RecomputeHz:   c.RecomputeHz,
		FadeOut:       c.FadeOut,
		DoubleClick:   c.DoubleClick,
		Strict:        c.Strict,
	}
}

func (c Config) flipOptions() flip.Options {
	return flip.Options{
		Duration: c.FlipDuration,
		Easing:   c.FlipEasing,
		Fade:     c.FlipFade,
		FadeFrom: c.FlipFadeFrom,
	}
}
