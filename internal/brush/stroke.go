package brush

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// MarginShift is how much margin whitening lightens or darkens.
const MarginShift = 50

// Stroke is an unrotated brush patch together with how it must be placed.
type Stroke struct {
	Patch *image.NRGBA
	// Angle is the counter-clockwise rotation in degrees to apply before
	// placing the patch.
	Angle float64
	// Anchor is the pixel that must land on the placement point. When
	// Centered is set the center of the rotated, cropped patch is used
	// instead.
	Anchor   image.Point
	Centered bool
	// Color is the stroke's reference color, used to pick a marker that
	// stands out from it.
	Color color.NRGBA
}

// ComplexOptions describe one multicolored stroke.
type ComplexOptions struct {
	Width, Height      int
	Start, End         [2]color.NRGBA // sampled at the stroke's top and bottom corners
	AngleMin, AngleMax int
	Arc                ArcStyle
	Ground             bool // short, tall, near vertical strokes
	Margins            bool // allow lightening above the lower edge
}

// Complex paints a multicolored stroke whose colors run from Start at the
// top to End at the bottom, with streaks along its length.
func Complex(r *rand.Rand, o ComplexOptions) Stroke {
	sizeX, sizeY := max(1, o.Width), max(1, o.Height)

	var (
		angle        int
		upper, lower []int
		bulge        int
		whiten       bool
	)
	if o.Ground {
		sizeX = max(1, int(float64(sizeX)*0.4))
		sizeY = max(1, sizeY*2)
		angle = rng.Int(r, 80, 100)
		capSize := rng.Int(r, int(float64(sizeX)*0.3), int(float64(sizeX)*0.5))
		upper, lower = CapCutoffs(sizeX, capSize)
		bulge = sizeX * 3 / 5
		if o.Arc == ArcCos {
			bulge = sizeX * 2 / 5
		}
	} else {
		angle = rng.Int(r, o.AngleMin, o.AngleMax)
		upper, lower = Cutoffs(r, sizeX, sizeY)
		bulge = sizeX * 2 / 5
		if o.Arc == ArcCos {
			bulge = sizeX / 5
		}
		whiten = o.Margins && rng.Coin(r)
	}

	patch := image.NewNRGBA(image.Rect(0, 0, sizeX+int(math.Ceil(float64(bulge)/2)), sizeY))
	paintW := sizeX - bulge/2
	starts := Ramp(o.Start, paintW)
	ends := Ramp(o.End, paintW)
	arc := Arc(o.Arc, sizeY, bulge)

	st := newStreak(r, paintW, sizeY-upper[0]-lower[0])
	for x := 0; x < paintW; x++ {
		edge := sizeY - upper[x] - lower[x]
		st.advance(r, edge)

		if edge == 1 {
			patch.SetNRGBA(x+arc[0], 0, starts[0])
			continue
		}
		col := column{
			sizeY:  sizeY,
			edge:   edge,
			start:  starts[x],
			end:    ends[x],
			gStart: st.start,
			gStop:  st.stop,
			whiten: whiten,
		}
		for y := upper[x]; y < edge; y++ {
			patch.SetNRGBA(x+arc[y], y, col.at(y))
		}
	}

	return Stroke{
		Patch:    patch,
		Angle:    float64(angle),
		Centered: true,
		Color:    o.Start[0],
	}
}

// column computes the colors of one painted column.
type column struct {
	sizeY, edge   int
	start, end    color.NRGBA
	gStart, gStop int
	whiten        bool
}

func (c column) at(y int) color.NRGBA {
	if y < c.gStart {
		return c.start
	}
	if c.whiten {
		light := max(3, c.sizeY/30)
		dark := max(1, light/10)
		if y >= c.edge-dark {
			return Lighten(c.end, -MarginShift)
		}
		if y > c.edge-light {
			return Lighten(c.end, MarginShift)
		}
	}
	if y > c.edge-c.gStop {
		return c.end
	}
	span := c.edge - c.gStop - c.gStart
	if span <= 0 {
		return c.start
	}
	p := float64(y-c.gStart) / float64(span)
	blend := func(a, b uint8) uint8 {
		return clamp8(int(a) - int(float64(int(a)-int(b))*p))
	}
	return color.NRGBA{
		R: blend(c.start.R, c.end.R),
		G: blend(c.start.G, c.end.G),
		B: blend(c.start.B, c.end.B),
		A: 255,
	}
}

// SimpleOptions describe a single-colored stroke that follows a region's
// regression line.
type SimpleOptions struct {
	Width int
	Line  []image.Point
	Angle float64 // region orientation, see region.Orientation
	Color color.NRGBA
}

// Simple paints a flat stroke bent like the region's regression line. It
// reports false when the stroke would be a hairline.
func Simple(r *rand.Rand, o SimpleOptions) (Stroke, bool) {
	sizeX := o.Width
	if sizeX <= 1 || len(o.Line) <= 1 {
		return Stroke{}, false
	}
	capSize := rng.Int(r, int(float64(sizeX)*0.3), int(float64(sizeX)*0.5))
	arc := Roughen(r, ArcFromLine(o.Line))
	sizeY := len(arc)

	patch := image.NewNRGBA(image.Rect(0, 0, sizeX+maxOf(arc)+1, sizeY))
	upper, lower := CapCutoffs(sizeX, capSize)
	c := o.Color
	c.A = 255
	for x := 0; x < sizeX; x++ {
		for y := 0; y < sizeY; y++ {
			if y >= upper[x] && y <= sizeY-lower[x] {
				patch.SetNRGBA(x+arc[y], y, c)
			}
		}
	}

	mid := sizeX / 2
	anchor := image.Pt(mid+arc[0], upper[mid])
	if o.Angle > 0 {
		anchor = image.Pt(mid+arc[sizeY-1], sizeY-max(1, lower[mid]))
	}
	return Stroke{
		Patch:  patch,
		Angle:  -o.Angle,
		Anchor: anchor,
		Color:  c,
	}, true
}
