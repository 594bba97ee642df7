// Package composite places synthesized strokes on the canvas. A stroke is
// rotated with canvas expansion, cropped to its visible pixels and pasted
// so that its anchor lands on the placement point.
package composite

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// markerTolerance is the largest per-channel distance at which a rotated
// pixel still counts as the marker.
const markerTolerance = 200

// Rotate rotates img counter-clockwise by angle degrees. The result is
// large enough to hold every corner; uncovered pixels are transparent.
func Rotate(img image.Image, angle float64) *image.NRGBA {
	return imaging.Rotate(img, angle, color.Transparent)
}

// Crop cuts img down to the bounding box of its non-transparent pixels and
// returns the offset of that box inside img. It reports false when every
// pixel is transparent.
func Crop(img *image.NRGBA) (*image.NRGBA, image.Point, bool) {
	b := img.Bounds()
	box := image.Rectangle{}
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[img.PixOffset(x, y)+3] == 0 {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if !found {
				box, found = px, true
			} else {
				box = box.Union(px)
			}
		}
	}
	if !found {
		return img, image.Point{}, false
	}
	return imaging.Crop(img, box), box.Min.Sub(b.Min), true
}

// Marker returns a color that is far from c in every channel: each channel
// goes to the opposite end of the range.
func Marker(c color.NRGBA) color.NRGBA {
	flip := func(v uint8) uint8 {
		if v > 128 {
			return 0
		}
		return 255
	}
	return color.NRGBA{R: flip(c.R), G: flip(c.G), B: flip(c.B), A: 255}
}

// FindMarker returns the pixel of img closest to marker by Manhattan
// distance over RGBA. Only opaque-ish pixels within markerTolerance on
// every channel are candidates. Ties keep the first hit scanning columns
// left to right.
func FindMarker(img *image.NRGBA, marker color.NRGBA) (image.Point, bool) {
	b := img.Bounds()
	best, bestDist := image.Point{}, -1
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			c := img.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			dr, dg := diff(c.R, marker.R), diff(c.G, marker.G)
			db, da := diff(c.B, marker.B), diff(c.A, marker.A)
			if dr >= markerTolerance || dg >= markerTolerance || db >= markerTolerance || da >= markerTolerance {
				continue
			}
			if d := dr + dg + db + da; bestDist < 0 || d < bestDist {
				best, bestDist = image.Pt(x, y), d
			}
		}
	}
	return best, bestDist >= 0
}

// RotatedPoint predicts where pixel p of a w×h image ends up after Rotate
// by angle, in the coordinates of the rotated image of size rw×rh.
//
// The point travels on a circle around the image center. With d its
// distance from the center, the chord between the old and new position is
// sqrt(2d²(1-cos θ)) by the law of cosines, and its midpoint lies on the
// bisector at d·cos(θ/2). A point at the center stays at the center.
func RotatedPoint(w, h, rw, rh int, angle float64, p image.Point) image.Point {
	cx, cy := float64(w)/2-0.5, float64(h)/2-0.5
	rcx, rcy := float64(rw)/2-0.5, float64(rh)/2-0.5
	px, py := float64(p.X)-cx, float64(p.Y)-cy

	d := math.Hypot(px, py)
	if d == 0 {
		return image.Pt(int(math.Round(rcx)), int(math.Round(rcy)))
	}
	theta := angle * math.Pi / 180
	chord := math.Sqrt(2 * d * d * (1 - math.Cos(theta)))
	apothem := d * math.Cos(theta/2)

	// unit bisector: p turned by half the angle
	sin, cos := math.Sincos(theta / 2)
	ux, uy := (cos*px+sin*py)/d, (-sin*px+cos*py)/d
	sign := 1.0
	if sin < 0 {
		sign = -1
	}
	qx := apothem*ux + chord/2*sign*uy
	qy := apothem*uy - chord/2*sign*ux
	return image.Pt(int(math.Round(qx+rcx)), int(math.Round(qy+rcy)))
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
