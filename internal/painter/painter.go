// Package painter turns a photograph into a painting: it saturates the
// input, segments it into regions, lays down a background and then
// composites a procedurally generated brush stroke per planned position.
package painter

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/impasto-cli/internal/brush"
	"github.com/AnyUserName/impasto-cli/internal/composite"
	"github.com/AnyUserName/impasto-cli/internal/planner"
	"github.com/AnyUserName/impasto-cli/internal/region"
	"github.com/AnyUserName/impasto-cli/internal/rng"
	"github.com/AnyUserName/impasto-cli/internal/segment"
)

// batchSize bounds how many rotated patches are held before they are
// pasted.
const batchSize = 256

// Stats summarise one painting.
type Stats struct {
	Regions        int `json:"regions"`
	Fitted         int `json:"fitted"`
	Unfit          int `json:"unfit"`
	Skipped        int `json:"skipped"`
	Muted          int `json:"muted"`
	Hairlines      int `json:"hairlines"`
	SimpleStrokes  int `json:"simple_strokes"`
	ComplexStrokes int `json:"complex_strokes"`
	Tracked        int `json:"tracked"`   // simple strokes anchored by marker
	Fallbacks      int `json:"fallbacks"` // simple strokes anchored by geometry
	Invisible      int `json:"invisible"` // strokes that rotated to nothing

	Sizes      planner.Sizes      `json:"sizes"`
	Thresholds planner.Thresholds `json:"thresholds"`
	Elapsed    time.Duration      `json:"elapsed_ns"`
}

// Result is a finished painting.
type Result struct {
	Image       *image.RGBA
	Stats       Stats
	Diagnostics *Diagnostics // nil unless Options.Diagnostics is set
}

// Painter paints images. It is safe for concurrent use.
type Painter struct {
	seg segment.Segmenter
	log *slog.Logger
}

// New returns a painter using seg for segmentation. A nil seg selects the
// built-in Felzenszwalb segmenter and a nil log discards log output.
func New(seg segment.Segmenter, log *slog.Logger) *Painter {
	if seg == nil {
		seg = segment.Felzenszwalb{}
	}
	if log == nil {
		log = NopLogger()
	}
	return &Painter{seg: seg, log: log}
}

// Paint renders img. The same image, options and seed always produce the
// same pixels, whatever the worker count.
func (p *Painter) Paint(img image.Image, o Options) (*Result, error) {
	start := time.Now()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	saturated := Saturate(img, o.Saturation)
	labels, err := p.seg.Segment(saturated, o.Segment)
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	if labels.Width != w || labels.Height != h {
		return nil, fmt.Errorf("segment: label grid is %dx%d, image is %dx%d", labels.Width, labels.Height, w, h)
	}
	if err := labels.Validate(); err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	ix := region.NewIndex(labels)
	shapes := region.AnalyzeAll(ix, workers)
	p.log.Debug("regions analysed", "regions", ix.Len(), "fitted", len(shapes))

	cfg := o.plannerConfig(w, h)
	plan := cfg.Build(rng.New(o.Seed), saturated, ix, shapes)
	p.log.Debug("strokes planned",
		"strokes", len(plan.Strokes), "hairlines", len(plan.Hairlines),
		"width", cfg.Sizes.Width, "height", cfg.Sizes.Height, "density", cfg.Sizes.Density,
		"smallMax", cfg.Thresholds.SmallMax, "largeMin", cfg.Thresholds.LargeMin)

	canvas := composite.NewCanvas(background(o.Background, saturated, ix))
	st := p.render(canvas, plan, workers)

	if !o.NoHairlines {
		for _, id := range plan.Hairlines {
			reg := ix.Region(id)
			rep := reg.Representative()
			canvas.Fill(reg.Pixels, saturated.NRGBAAt(rep.X, rep.Y))
		}
	}

	st.Regions = ix.Len()
	st.Fitted = len(shapes)
	st.Unfit = plan.Unfit
	st.Skipped = plan.Skipped
	st.Muted = plan.Muted
	st.Hairlines = len(plan.Hairlines)
	st.Sizes = cfg.Sizes
	st.Thresholds = cfg.Thresholds
	st.Elapsed = time.Since(start)

	res := &Result{Image: canvas.Image(), Stats: st}
	if o.Diagnostics {
		res.Diagnostics = diagnose(img, saturated, labels, ix, shapes, o.Seed)
	}
	p.log.Info("painted", "width", w, "height", h,
		"simple", st.SimpleStrokes, "complex", st.ComplexStrokes, "elapsed", st.Elapsed)
	return res, nil
}

// render synthesizes and rotates strokes on up to workers goroutines and
// pastes them in plan order.
func (p *Painter) render(canvas *composite.Canvas, plan *planner.Plan, workers int) Stats {
	var st Stats
	type prepared struct {
		placed composite.Placed
		ok     bool
	}
	batch := make([]prepared, batchSize)

	for lo := 0; lo < len(plan.Strokes); lo += batchSize {
		strokes := plan.Strokes[lo:min(lo+batchSize, len(plan.Strokes))]

		var wg sync.WaitGroup
		sem := make(chan struct{}, workers)
		for i, s := range strokes {
			wg.Add(1)
			go func(i int, s planner.Stroke) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				placed, ok := composite.Prepare(synthesize(s))
				batch[i] = prepared{placed, ok}
			}(i, s)
		}
		wg.Wait()

		for i, s := range strokes {
			pr := batch[i]
			if !pr.ok {
				st.Invisible++
				continue
			}
			canvas.Place(pr.placed, s.At)
			if s.Simple != nil {
				st.SimpleStrokes++
				if pr.placed.Tracked {
					st.Tracked++
				} else {
					st.Fallbacks++
				}
			} else {
				st.ComplexStrokes++
			}
		}
	}
	return st
}

// synthesize builds the unrotated patch for s from its own generator.
// A simple stroke the brush rejects still yields a transparent patch so
// it is counted as invisible.
func synthesize(s planner.Stroke) brush.Stroke {
	r := rng.New(s.Seed)
	if s.Simple != nil {
		if stroke, ok := brush.Simple(r, *s.Simple); ok {
			return stroke
		}
		return brush.Stroke{Patch: image.NewNRGBA(image.Rect(0, 0, 1, 1))}
	}
	return brush.Complex(r, *s.Complex)
}

// Saturate scales every pixel's distance from its own luminance by
// factor: 0 gives grey, 1 leaves the image unchanged.
func Saturate(img image.Image, factor float64) *image.NRGBA {
	if factor == 1 {
		return imaging.Clone(img)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		l := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		f := func(v uint8) uint8 {
			return clamp8(l + factor*(float64(v)-l))
		}
		return color.NRGBA{R: f(c.R), G: f(c.G), B: f(c.B), A: c.A}
	})
}

// blurKernel is a 5×5 ring: every pixel becomes the mean of the sixteen
// pixels two steps away.
var blurKernel = [25]float64{
	1, 1, 1, 1, 1,
	1, 0, 0, 0, 1,
	1, 0, 0, 0, 1,
	1, 0, 0, 0, 1,
	1, 1, 1, 1, 1,
}

func background(mode Background, saturated *image.NRGBA, ix *region.Index) image.Image {
	switch mode {
	case BackgroundBlur:
		return imaging.Convolve5x5(saturated, blurKernel, &imaging.ConvolveOptions{Normalize: true})
	case BackgroundCluster:
		return clusterImage(saturated, ix)
	}
	return imaging.New(saturated.Bounds().Dx(), saturated.Bounds().Dy(), color.White)
}

// clusterImage fills every region with the color of its representative
// pixel.
func clusterImage(img *image.NRGBA, ix *region.Index) *image.NRGBA {
	out := imaging.New(ix.Width, ix.Height, color.White)
	for _, reg := range ix.Regions() {
		if reg.Size() == 0 {
			continue
		}
		rep := reg.Representative()
		c := img.NRGBAAt(rep.X, rep.Y)
		for _, px := range reg.Pixels {
			out.SetNRGBA(px.X, px.Y, c)
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
