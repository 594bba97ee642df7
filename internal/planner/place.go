package planner

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/AnyUserName/impasto-cli/internal/region"
	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// groundLine is the fraction of the image height below which a large
// region's lowest pixel marks it as ground.
const groundLine = 0.9

// groundDensity thins the anchor grid of ground regions.
const groundDensity = 0.4

// Positions returns the points of a step-spaced grid over box that fall
// inside region id, in random order.
func Positions(r *rand.Rand, ix *region.Index, id int, box region.BBox, step int) []image.Point {
	step = max(1, step)
	var pts []image.Point
	for x := box.MinX; x <= box.MaxX; x += step {
		for y := box.MinY; y <= box.MaxY; y += step {
			if ix.Contains(id, x, y) {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	r.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })
	return pts
}

// SampleColors reads the corners of a w×h window centered on at. The top
// corners become the start colors and the bottom corners the end colors.
// The window is clamped to the image.
func SampleColors(img *image.NRGBA, at image.Point, w, h int) (start, end [2]color.NRGBA) {
	b := img.Bounds()
	left := max(b.Min.X, at.X-w/2)
	top := max(b.Min.Y, at.Y-h/2)
	right := min(b.Max.X-1, left+w)
	bottom := min(b.Max.Y-1, top+h)

	start = [2]color.NRGBA{img.NRGBAAt(left, top), img.NRGBAAt(right, top)}
	end = [2]color.NRGBA{img.NRGBAAt(left, bottom), img.NRGBAAt(right, bottom)}
	return start, end
}

// IsGround reports whether a region reaching down to box.MaxY sits in the
// bottom tenth of an image of the given height.
func IsGround(box region.BBox, height int) bool {
	return float64(box.MaxY) > float64(height)*groundLine
}

// AngleBand returns the range complex stroke angles are drawn from. In
// directed mode the 40° band is centered so strokes counter the region's
// orientation; otherwise it starts at a random angle.
func AngleBand(r *rand.Rand, directed bool, orientation float64) (lo, hi int) {
	if directed {
		lo = -int(orientation) - 20
	} else {
		lo = rng.Int(r, -90, 90)
	}
	return lo, lo + 40
}
