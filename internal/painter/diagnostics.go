package painter

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/AnyUserName/impasto-cli/internal/region"
	"github.com/AnyUserName/impasto-cli/internal/rng"
	"github.com/AnyUserName/impasto-cli/internal/segment"
)

// regLineColor marks regression lines in the overlay.
var regLineColor = color.NRGBA{R: 255, G: 255, A: 255}

// Diagnostics are the intermediate stages of a painting.
type Diagnostics struct {
	Saturated   *image.NRGBA    // input after saturation
	Clustered   *image.NRGBA    // regions in their representative color
	RandomColor *image.NRGBA    // regions in random colors
	RegLines    *image.NRGBA    // input with regression lines drawn in yellow
	Labels      *segment.Labels // raw label grid
}

func diagnose(src image.Image, saturated *image.NRGBA, labels *segment.Labels, ix *region.Index, shapes []region.Shape, seed uint64) *Diagnostics {
	d := &Diagnostics{
		Saturated: saturated,
		Clustered: clusterImage(saturated, ix),
		Labels:    labels,
	}

	// A private generator keeps the stroke plan independent of whether
	// diagnostics were requested.
	r := rng.New(^seed)
	d.RandomColor = imaging.New(ix.Width, ix.Height, color.White)
	for _, reg := range ix.Regions() {
		cr, cg, cb := colorful.Hsv(r.Float64()*360, 0.4+0.6*r.Float64(), 0.5+0.5*r.Float64()).RGB255()
		c := color.NRGBA{R: cr, G: cg, B: cb, A: 255}
		for _, px := range reg.Pixels {
			d.RandomColor.SetNRGBA(px.X, px.Y, c)
		}
	}

	d.RegLines = imaging.Clone(src)
	b := d.RegLines.Bounds()
	for _, s := range shapes {
		for _, p := range s.Line {
			x := min(max(p.X, 0), b.Dx()-1)
			y := min(max(p.Y, 0), b.Dy()-1)
			d.RegLines.SetNRGBA(x, y, regLineColor)
		}
	}
	return d
}
