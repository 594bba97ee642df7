package composite

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/impasto-cli/internal/brush"
)

// Placed is a rotated, cropped stroke and the point of it that must cover
// the placement coordinate.
type Placed struct {
	Patch   *image.NRGBA
	Anchor  image.Point
	Tracked bool // anchor recovered from the marker pixel
}

// TrackAnchor rotates a copy of patch with the anchor pixel painted in
// marker and returns where the anchor ended up in the rotated image. When
// resampling washed the marker out it falls back to RotatedPoint and
// reports false.
func TrackAnchor(patch *image.NRGBA, angle float64, anchor image.Point, marker color.NRGBA) (image.Point, bool) {
	b := patch.Bounds()
	anchor = image.Pt(
		min(max(anchor.X, b.Min.X), b.Max.X-1),
		min(max(anchor.Y, b.Min.Y), b.Max.Y-1),
	)
	marked := imaging.Clone(patch)
	marked.SetNRGBA(anchor.X-b.Min.X, anchor.Y-b.Min.Y, marker)
	rotated := Rotate(marked, angle)

	if p, ok := FindMarker(rotated, marker); ok {
		return p, true
	}
	rb := rotated.Bounds()
	return RotatedPoint(b.Dx(), b.Dy(), rb.Dx(), rb.Dy(), angle, anchor.Sub(b.Min)), false
}

// Prepare rotates s and locates its anchor in the cropped result. It
// reports false when nothing visible is left to paste.
func Prepare(s brush.Stroke) (Placed, bool) {
	rotated := Rotate(s.Patch, s.Angle)
	cropped, origin, ok := Crop(rotated)
	if !ok {
		return Placed{}, false
	}
	if s.Centered {
		b := cropped.Bounds()
		return Placed{
			Patch:  cropped,
			Anchor: image.Pt(int(math.RoundToEven(float64(b.Dx())/2)), int(math.RoundToEven(float64(b.Dy())/2))),
		}, true
	}
	p, tracked := TrackAnchor(s.Patch, s.Angle, s.Anchor, Marker(s.Color))
	return Placed{Patch: cropped, Anchor: p.Sub(origin), Tracked: tracked}, true
}
