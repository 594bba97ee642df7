package painter

import (
	"errors"
	"fmt"

	"github.com/AnyUserName/impasto-cli/internal/brush"
	"github.com/AnyUserName/impasto-cli/internal/planner"
	"github.com/AnyUserName/impasto-cli/internal/segment"
)

var (
	// ErrInvalidBackground is returned for an unknown background mode.
	ErrInvalidBackground = errors.New("painter: invalid background")
	// ErrInvalidArc is returned for an unknown arc style.
	ErrInvalidArc = errors.New("painter: invalid arc style")
	// ErrEmptyImage is returned when the input has no pixels.
	ErrEmptyImage = segment.ErrEmptyImage
)

// Background selects what the canvas shows before strokes are applied.
type Background string

const (
	BackgroundBlur    Background = "blur"    // blurred saturated input
	BackgroundCluster Background = "cluster" // every region in its representative color
	BackgroundNone    Background = "none"    // white
)

// ParseBackground validates a background mode name.
func ParseBackground(s string) (Background, error) {
	switch Background(s) {
	case BackgroundBlur, BackgroundCluster, BackgroundNone:
		return Background(s), nil
	}
	return "", fmt.Errorf("%w: %q (want blur, cluster or none)", ErrInvalidBackground, s)
}

// Options configure one painting. Size and threshold fields set to
// planner.Auto are derived from the image.
type Options struct {
	Background Background
	Saturation float64 // 1 keeps the input colors

	Width       int
	Height      int
	Density     int
	RandSizes   int // percent in [1, 100]; 100 keeps all strokes the same size
	LongStrokes bool

	SegBound int
	SmallMax int
	LargeMin int
	ColDiff  int // 0..region.MaxContrast

	Directed    bool
	Ground      bool
	NoHairlines bool
	NoMargins   bool
	Highlight   bool
	Colorify    int
	Arc         brush.ArcStyle

	Segment     segment.Params
	Diagnostics bool // keep intermediate images in the result

	Seed    uint64
	Workers int // <= 0 means one per CPU
}

// DefaultOptions returns the classic settings.
func DefaultOptions() Options {
	return Options{
		Background: BackgroundCluster,
		Saturation: 2.5,
		Width:      planner.Auto,
		Height:     planner.Auto,
		Density:    planner.Auto,
		RandSizes:  100,
		SegBound:   planner.Auto,
		SmallMax:   planner.Auto,
		LargeMin:   planner.Auto,
		ColDiff:    500,
		Arc:        brush.ArcLog,
		Segment:    segment.DefaultParams(),
	}
}

// Validate checks o for values the painter cannot work with.
func (o Options) Validate() error {
	if _, err := ParseBackground(string(o.Background)); err != nil {
		return err
	}
	if _, err := brush.ParseArc(string(o.Arc)); err != nil {
		return fmt.Errorf("%w: %q (want log or cos)", ErrInvalidArc, o.Arc)
	}
	if o.Saturation < 0 {
		return fmt.Errorf("painter: saturation must not be negative, got %g", o.Saturation)
	}
	if o.RandSizes < 1 || o.RandSizes > 100 {
		return fmt.Errorf("painter: rand-sizes must be in [1, 100], got %d", o.RandSizes)
	}
	if o.Colorify < 0 || o.Colorify > 255 {
		return fmt.Errorf("painter: colorify must be in [0, 255], got %d", o.Colorify)
	}
	for name, v := range map[string]int{"width": o.Width, "height": o.Height, "density": o.Density} {
		if v != planner.Auto && v < 1 {
			return fmt.Errorf("painter: stroke %s must be positive, got %d", name, v)
		}
	}
	if o.Segment.Scale <= 0 || o.Segment.Sigma < 0 || o.Segment.MinSize < 0 {
		return fmt.Errorf("painter: invalid segmentation parameters %+v", o.Segment)
	}
	return nil
}

func (o Options) plannerConfig(w, h int) planner.Config {
	return planner.Config{
		Sizes: planner.AutoSizes(w, h, planner.SizeOptions{
			Width:   o.Width,
			Height:  o.Height,
			Density: o.Density,
			Long:    o.LongStrokes,
		}),
		RandSizes:  o.RandSizes,
		Thresholds: planner.NewThresholds(w, h, o.SegBound, o.SmallMax, o.LargeMin),
		ColDiff:    o.ColDiff,
		Arc:        o.Arc,
		Directed:   o.Directed,
		Ground:     o.Ground,
		Highlight:  o.Highlight,
		Colorify:   o.Colorify,
		Margins:    !o.NoMargins,
	}
}
