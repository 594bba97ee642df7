// Package brush synthesizes single brush strokes as small RGBA patches.
//
// A stroke is painted column by column. Each row is shifted horizontally by
// an arc profile so the silhouette curves, and cutoff templates trim the
// ends of every column so the stroke gets rounded caps instead of a
// rectangular outline.
package brush

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// ArcStyle selects the silhouette profile of complex strokes.
type ArcStyle string

const (
	ArcLog ArcStyle = "log" // strongest curvature near the bottom
	ArcCos ArcStyle = "cos" // symmetric half-cosine bulge
)

// ParseArc validates an arc style name.
func ParseArc(s string) (ArcStyle, error) {
	switch ArcStyle(s) {
	case ArcLog, ArcCos:
		return ArcStyle(s), nil
	}
	return "", fmt.Errorf("brush: unknown arc style %q (want log or cos)", s)
}

// Arc returns the profile of the given style.
func Arc(style ArcStyle, n, bulge int) []int {
	if style == ArcCos {
		return CosArc(n, bulge)
	}
	return LogArc(n, bulge)
}

// CosArc returns n offsets following cos over [-90°, 90°), scaled to bulge.
func CosArc(n, bulge int) []int {
	arc := make([]int, n)
	if n <= 2 {
		return arc
	}
	step := math.Max(180/float64(n), 1e-8)
	for i := range arc {
		deg := -90 + float64(i)*step
		arc[i] = int(math.Floor(math.Cos(deg*math.Pi/180) * float64(bulge)))
	}
	return arc
}

// LogArc returns n offsets following log2 over [1.1, 11), reversed so the
// steep part of the curve sits at the end of the stroke, scaled to bulge.
func LogArc(n, bulge int) []int {
	arc := make([]int, n)
	if n <= 2 {
		return arc
	}
	vals := make([]float64, n)
	step := 10 / float64(n)
	param := 1.1
	peak := 0.0
	for i := n - 1; i >= 0; i-- {
		vals[i] = math.Log2(param)
		peak = math.Max(peak, vals[i])
		param += step
	}
	scale := float64(bulge) / peak
	for i, v := range vals {
		arc[i] = int(v * scale)
	}
	return arc
}

// ArcFromLine converts a regression line into an arc: the distance of each
// line point from the chord joining the line's end points. The sign is
// normalised so the arc always bulges the same way relative to the stroke.
func ArcFromLine(line []image.Point) []int {
	n := len(line)
	arc := make([]int, n)
	if n == 0 {
		return arc
	}
	start, end := line[0], line[n-1]
	vx, vy := float64(end.X-start.X), float64(end.Y-start.Y)
	nx, ny := -vy, vx
	norm := math.Hypot(nx, ny)
	if norm == 0 {
		return arc
	}
	if float64(start.X)*nx+float64(start.Y)*ny < 0 {
		nx, ny = -nx, -ny
	}
	nx, ny = nx/norm, ny/norm
	offset := float64(start.X)*nx + float64(start.Y)*ny
	for i, p := range line {
		arc[i] = int(math.Abs(float64(p.X)*nx + float64(p.Y)*ny - offset))
	}

	chordMidY := float64(start.Y+end.Y) / 2
	falling := start.Y > end.Y
	midAbove := float64(line[n/2].Y) < chordMidY
	switch {
	case !falling && !midAbove:
		peak := maxOf(arc)
		for i := range arc {
			arc[i] = peak - arc[i]
		}
	case falling && midAbove:
		peak := maxOf(arc)
		flipped := make([]int, n)
		for i, v := range arc {
			flipped[n-1-i] = peak - v
		}
		return flipped
	}
	return arc
}

// Roughen makes an arc look hand drawn. It adds a random walk that
// alternates between drifting up or down and holding a plateau; phase
// lengths are random but never exceed one percent of the arc length.
// The input is not modified.
func Roughen(r *rand.Rand, arc []int) []int {
	const (
		drift = iota
		retreat
		plateau
	)
	out := make([]int, len(arc))
	roof := int(float64(len(arc)) * 0.01)
	incr := roof

	nextLimit := func(base int) int {
		if rng.Coin(r) {
			return min(roof, rng.Int(r, base, base+incr))
		}
		return min(roof, max(0, rng.Int(r, base-incr, base)))
	}

	offset, hold := 0, 0
	limit := rng.Int(r, 0, roof)
	prevLimit := limit
	mode, prevMode := plateau, drift
	for i, v := range arc {
		if hold >= limit {
			if mode != plateau {
				prevMode = mode
				mode = plateau
				prevLimit = limit
			} else if prevMode == drift {
				mode = retreat
			} else {
				mode = drift
			}
			limit = nextLimit(prevLimit)
			hold = 0
		}
		switch {
		case mode == drift && r.IntN(6) == 0:
			offset++
		case mode == retreat && r.IntN(6) == 0:
			offset--
		}
		out[i] = max(0, v+offset)
		hold++
	}
	return out
}

func maxOf(v []int) int {
	m := 0
	for i, x := range v {
		if i == 0 || x > m {
			m = x
		}
	}
	return m
}
