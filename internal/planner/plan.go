package planner

import (
	"image"
	"math/rand/v2"

	"github.com/AnyUserName/impasto-cli/internal/brush"
	"github.com/AnyUserName/impasto-cli/internal/region"
	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// Config holds the painting options that shape a plan.
type Config struct {
	Sizes      Sizes
	RandSizes  int // percent, 100 disables size jitter
	Thresholds Thresholds
	ColDiff    int // minimum neighbour contrast for a simple stroke
	Arc        brush.ArcStyle
	Directed   bool
	Ground     bool
	Highlight  bool
	Colorify   int
	Margins    bool
}

// Stroke is one planned stroke. Exactly one of Simple and Complex is set.
// Seed feeds the generator that synthesizes the stroke, so strokes can be
// built in any order and still come out the same.
type Stroke struct {
	Region  int
	At      image.Point
	Seed    uint64
	Simple  *brush.SimpleOptions
	Complex *brush.ComplexOptions
}

// Plan lists the strokes for one image in paint order, together with the
// regions that get no stroke.
type Plan struct {
	Strokes   []Stroke
	Hairlines []int // region IDs filled flat after all strokes
	Skipped   int   // mid-sized regions left to the background
	Muted     int   // small regions too close in color to their surroundings
	Unfit     int   // regions without a usable regression line
}

// Counts returns the number of simple and complex strokes.
func (p *Plan) Counts() (simple, complex int) {
	for _, s := range p.Strokes {
		if s.Simple != nil {
			simple++
		} else {
			complex++
		}
	}
	return simple, complex
}

// Build plans the strokes for img. shapes must be ordered the way regions
// should be painted, normally largest first. Small regions with no shape
// are queued for the flat fill.
func (c Config) Build(r *rand.Rand, img *image.NRGBA, ix *region.Index, shapes []region.Shape) *Plan {
	p := &Plan{}
	fitted := make([]bool, ix.Len())
	for _, s := range shapes {
		fitted[s.ID] = true
	}
	for id, ok := range fitted {
		if ok || ix.Region(id).Size() == 0 {
			continue
		}
		p.Unfit++
		if c.Thresholds.Classify(ix.Region(id).Size()) == Simple {
			p.Hairlines = append(p.Hairlines, id)
		}
	}

	for _, s := range shapes {
		switch c.Thresholds.Classify(s.Size) {
		case Simple:
			c.planSimple(r, img, ix, s, p)
		case Complex:
			c.planComplex(r, img, ix, s, p)
		default:
			p.Skipped++
		}
	}
	return p
}

func (c Config) planSimple(r *rand.Rand, img *image.NRGBA, ix *region.Index, s region.Shape, p *Plan) {
	width, _, hairline := SimpleDims(s.Size, s.LineLength())
	if hairline {
		p.Hairlines = append(p.Hairlines, s.ID)
		return
	}
	rep := ix.Region(s.ID).Representative()
	if region.Contrast(img, rep, s.Box) < c.ColDiff {
		p.Muted++
		return
	}
	at := s.Start()
	p.Strokes = append(p.Strokes, Stroke{
		Region: s.ID,
		At:     at,
		Seed:   rng.Derive(r),
		Simple: &brush.SimpleOptions{
			Width: width,
			Line:  s.Line,
			Angle: s.Angle,
			Color: img.NRGBAAt(at.X, at.Y),
		},
	})
}

func (c Config) planComplex(r *rand.Rand, img *image.NRGBA, ix *region.Index, s region.Shape, p *Plan) {
	sizes := c.Sizes.Jitter(r, c.RandSizes)
	ground := c.Ground && IsGround(s.Box, ix.Height)
	step := sizes.Density
	if ground {
		step = max(1, int(float64(step)*groundDensity))
	}
	lo, hi := AngleBand(r, c.Directed, s.Angle)

	for i, at := range Positions(r, ix, s.ID, s.Box, step) {
		start, end := SampleColors(img, at, sizes.Width, sizes.Height)
		if c.Highlight && i%5 == 4 {
			start, end = brush.Vivid(start, end)
		}
		if c.Colorify > 0 {
			for j := range start {
				start[j] = brush.Colorify(r, start[j], c.Colorify)
				end[j] = brush.Colorify(r, end[j], c.Colorify)
			}
		}
		p.Strokes = append(p.Strokes, Stroke{
			Region: s.ID,
			At:     at,
			Seed:   rng.Derive(r),
			Complex: &brush.ComplexOptions{
				Width:    sizes.Width,
				Height:   sizes.Height,
				Start:    start,
				End:      end,
				AngleMin: lo,
				AngleMax: hi,
				Arc:      c.Arc,
				Ground:   ground,
				Margins:  c.Margins,
			},
		})
	}
}
