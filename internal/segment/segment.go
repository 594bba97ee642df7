// Package segment labels every pixel of an image with a region ID.
//
// The painter treats segmentation as an oracle: anything that implements
// Segmenter can be plugged in. Felzenszwalb is the built-in implementation.
package segment

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrEmptyImage is returned when the input has no pixels.
	ErrEmptyImage = errors.New("segment: empty image")
	// ErrInvalidLabels is returned for a label grid that does not match
	// its own dimensions or count.
	ErrInvalidLabels = errors.New("segment: invalid label grid")
)

// Params are passed through to the segmenter unchanged.
type Params struct {
	Scale   float64 // higher means larger regions
	Sigma   float64 // gaussian pre-smoothing width
	MinSize int     // regions below this size are merged into a neighbour
}

// DefaultParams mirrors the classic style.
func DefaultParams() Params {
	return Params{Scale: 50, Sigma: 4.5, MinSize: 10}
}

// Labels is a width×height grid of region IDs in 0..Count-1. The built-in
// segmenter numbers them densely in raster order.
type Labels struct {
	Width  int
	Height int
	IDs    []int // row-major
	Count  int
}

// Validate checks that the grid covers Width×Height pixels and every label
// lies in 0..Count-1. Labels need not be dense: an unused ID is allowed.
func (l *Labels) Validate() error {
	if l.Width <= 0 || l.Height <= 0 || len(l.IDs) != l.Width*l.Height {
		return fmt.Errorf("%w: %d labels for a %dx%d grid", ErrInvalidLabels, len(l.IDs), l.Width, l.Height)
	}
	for i, id := range l.IDs {
		if id < 0 || id >= l.Count {
			return fmt.Errorf("%w: pixel (%d, %d) has label %d, count is %d",
				ErrInvalidLabels, i%l.Width, i/l.Width, id, l.Count)
		}
	}
	return nil
}

// At returns the label of pixel (x, y).
func (l *Labels) At(x, y int) int {
	return l.IDs[y*l.Width+x]
}

// Segmenter maps a pixel buffer to a label grid of the same size.
type Segmenter interface {
	Segment(img image.Image, p Params) (*Labels, error)
}

// relabel renumbers arbitrary component roots densely in raster order.
func relabel(roots []int, w, h int) *Labels {
	ids := make([]int, len(roots))
	dense := make(map[int]int)
	for i, r := range roots {
		id, ok := dense[r]
		if !ok {
			id = len(dense)
			dense[r] = id
		}
		ids[i] = id
	}
	return &Labels{Width: w, Height: h, IDs: ids, Count: len(dense)}
}
