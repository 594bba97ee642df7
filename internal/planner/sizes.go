// Package planner decides which regions get which kind of stroke and
// where each stroke goes.
package planner

import (
	"math/rand/v2"

	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// Auto marks a size or threshold that is derived from the image.
const Auto = -1

// Sizes are the complex stroke dimensions and the spacing of the anchor
// grid, in pixels.
type Sizes struct {
	Width   int
	Height  int
	Density int
}

// SizeOptions are user overrides for Sizes. Auto fields are computed.
type SizeOptions struct {
	Width   int
	Height  int
	Density int
	Long    bool // taller and narrower strokes
}

// AutoSizes derives stroke sizes for a w×h image. Strokes are about 2% of
// the image circumference wide and the grid step about 1.5%, both
// shrinking slightly for very large images. An explicit width or height
// without an explicit density sets the density to a third of it.
func AutoSizes(w, h int, o SizeOptions) Sizes {
	circ := float64(w + h)
	var s Sizes
	if o.Width > 0 {
		s.Width = o.Width
	} else {
		s.Width = int(circ * 0.01 * (2.66667 - 0.000166667*circ))
	}
	s.Height = s.Width
	if o.Height > 0 {
		s.Height = o.Height
	}
	if o.Long {
		s.Height = int(float64(s.Width) * 1.7)
		s.Width = max(1, int(float64(s.Width)*0.8))
	}

	switch {
	case o.Density > 0:
		s.Density = o.Density
	case o.Width > 0:
		s.Density = max(1, o.Width/3)
	case o.Height > 0:
		s.Density = max(1, o.Height/3)
	default:
		s.Density = max(1, int(circ*0.01*(1.66667-0.000166667*circ)))
	}
	s.Width = max(1, s.Width)
	s.Height = max(1, s.Height)
	return s
}

// Jitter scales all sizes by one random percentage in [randSizes, 100].
// A randSizes of 100 or more returns s unchanged without drawing.
func (s Sizes) Jitter(r *rand.Rand, randSizes int) Sizes {
	if randSizes >= 100 {
		return s
	}
	scale := rng.Int(r, max(1, randSizes), 100)
	return Sizes{
		Width:   max(1, s.Width*scale/100),
		Height:  max(1, s.Height*scale/100),
		Density: max(1, s.Density*scale/100),
	}
}

// Kind is how a region is painted.
type Kind int

const (
	Skip    Kind = iota // left to the background
	Simple              // one flat stroke along the regression line
	Complex             // a field of multicolored strokes
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Complex:
		return "complex"
	}
	return "skip"
}

// Thresholds split regions by pixel count. Regions up to SmallMax pixels
// get a simple stroke, regions above LargeMin get complex strokes and the
// band in between is skipped.
type Thresholds struct {
	SmallMax int
	LargeMin int
}

// NewThresholds resolves the thresholds for a w×h image. segBound sets
// both bounds; smallMax and largeMin override one bound each. Auto values
// fall back to w·h/5000.
func NewThresholds(w, h, segBound, smallMax, largeMin int) Thresholds {
	def := w * h / 5000
	if segBound != Auto {
		def = segBound
	}
	t := Thresholds{SmallMax: def, LargeMin: def}
	if smallMax != Auto {
		t.SmallMax = smallMax
	}
	if largeMin != Auto {
		t.LargeMin = largeMin
	}
	return t
}

// Classify returns the kind for a region of the given size. Simple wins
// when the bounds overlap.
func (t Thresholds) Classify(size int) Kind {
	switch {
	case size <= t.SmallMax:
		return Simple
	case size > t.LargeMin:
		return Complex
	}
	return Skip
}

// SimpleDims is the stroke for a small region: as long as its regression
// line and as wide as needed to cover its pixels. hairline is set when
// either side collapses to one pixel.
func SimpleDims(size, lineLength int) (width, height int, hairline bool) {
	height = max(1, lineLength)
	width = max(1, size/height)
	return width, height, width == 1 || height == 1
}
