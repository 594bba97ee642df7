package painter

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/AnyUserName/impasto-cli/internal/planner"
	"github.com/AnyUserName/impasto-cli/internal/segment"
)

// landscape draws a sky gradient, a red disc and a green strip of ground.
func landscape(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy, rad := w/3, h/3, h/5
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{uint8(60 + y*2), uint8(120 + y), 230, 255}
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= rad*rad {
				c = color.NRGBA{220, 40, 30, 255}
			}
			if y > h*3/4 {
				c = color.NRGBA{40, uint8(140 + (x*7)%40), 50, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestPaint_Deterministic(t *testing.T) {
	img := landscape(64, 48)
	o := DefaultOptions()
	o.Seed = 42
	o.Ground = true
	o.Highlight = true

	o.Workers = 1
	a, err := New(nil, nil).Paint(img, o)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	o.Workers = 4
	b, err := New(nil, nil).Paint(img, o)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if !bytes.Equal(a.Image.Pix, b.Image.Pix) {
		t.Error("same seed produced different paintings")
	}
	if a.Stats.ComplexStrokes == 0 {
		t.Error("expected complex strokes")
	}
	if a.Stats.SimpleStrokes != a.Stats.Tracked+a.Stats.Fallbacks {
		t.Errorf("anchor stats inconsistent: %+v", a.Stats)
	}

	o.Seed = 43
	c, err := New(nil, nil).Paint(img, o)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if bytes.Equal(a.Image.Pix, c.Image.Pix) {
		t.Error("different seeds produced identical paintings")
	}
}

func TestPaint_Dimensions(t *testing.T) {
	img := landscape(37, 23)
	res, err := New(nil, nil).Paint(img, DefaultOptions())
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if got := res.Image.Bounds(); got != image.Rect(0, 0, 37, 23) {
		t.Errorf("bounds = %v", got)
	}
	if res.Stats.Regions == 0 || res.Stats.Regions < res.Stats.Fitted {
		t.Errorf("bad region stats: %+v", res.Stats)
	}
}

func TestPaint_SolidImage(t *testing.T) {
	res, err := New(nil, nil).Paint(solid(10, 10, color.NRGBA{90, 90, 200, 255}), DefaultOptions())
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if res.Stats.Regions != 1 {
		t.Errorf("regions = %d, want 1", res.Stats.Regions)
	}
	if got := res.Image.Bounds().Size(); got != image.Pt(10, 10) {
		t.Errorf("size = %v", got)
	}
}

func TestPaint_NothingPainted(t *testing.T) {
	o := DefaultOptions()
	o.Background = BackgroundNone
	o.SmallMax = 0
	o.LargeMin = 1 << 30
	o.NoHairlines = true

	res, err := New(nil, nil).Paint(landscape(30, 20), o)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	for i, v := range res.Image.Pix {
		if v != 255 {
			t.Fatalf("byte %d = %d, want a white canvas", i, v)
		}
	}
}

func TestPaint_Errors(t *testing.T) {
	p := New(nil, nil)

	o := DefaultOptions()
	o.Background = "sepia"
	if _, err := p.Paint(landscape(8, 8), o); !errors.Is(err, ErrInvalidBackground) {
		t.Errorf("err = %v, want ErrInvalidBackground", err)
	}

	o = DefaultOptions()
	o.Arc = "sine"
	if _, err := p.Paint(landscape(8, 8), o); !errors.Is(err, ErrInvalidArc) {
		t.Errorf("err = %v, want ErrInvalidArc", err)
	}

	if _, err := p.Paint(image.NewNRGBA(image.Rect(0, 0, 0, 5)), DefaultOptions()); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}

	o = DefaultOptions()
	o.RandSizes = 0
	if _, err := p.Paint(landscape(8, 8), o); err == nil {
		t.Error("rand-sizes 0 should be rejected")
	}
}

type shiftedSegmenter struct{}

func (shiftedSegmenter) Segment(img image.Image, _ segment.Params) (*segment.Labels, error) {
	return &segment.Labels{Width: 1, Height: 1, IDs: []int{0}, Count: 1}, nil
}

func TestPaint_SegmenterMismatch(t *testing.T) {
	if _, err := New(shiftedSegmenter{}, nil).Paint(landscape(8, 8), DefaultOptions()); err == nil {
		t.Error("expected an error for a label grid of the wrong size")
	}
}

// gapSegmenter labels the left half 0 and the right half g.right, leaving
// the IDs in between unused.
type gapSegmenter struct {
	right, count int
}

func (g gapSegmenter) Segment(img image.Image, _ segment.Params) (*segment.Labels, error) {
	b := img.Bounds()
	l := &segment.Labels{Width: b.Dx(), Height: b.Dy(), IDs: make([]int, b.Dx()*b.Dy()), Count: g.count}
	for i := range l.IDs {
		if i%l.Width >= l.Width/2 {
			l.IDs[i] = g.right
		}
	}
	return l, nil
}

func TestPaint_SparseLabels(t *testing.T) {
	for _, bg := range []Background{BackgroundCluster, BackgroundBlur, BackgroundNone} {
		o := DefaultOptions()
		o.Background = bg
		o.Diagnostics = true
		res, err := New(gapSegmenter{right: 2, count: 3}, nil).Paint(landscape(40, 30), o)
		if err != nil {
			t.Fatalf("%s: Paint: %v", bg, err)
		}
		if res.Stats.Regions != 3 {
			t.Errorf("%s: regions = %d, want 3", bg, res.Stats.Regions)
		}
		if res.Stats.Hairlines != 0 {
			t.Errorf("%s: empty region filled as hairline", bg)
		}
	}
}

func TestPaint_LabelOutOfRange(t *testing.T) {
	for _, g := range []gapSegmenter{{right: 5, count: 2}, {right: -1, count: 1}} {
		_, err := New(g, nil).Paint(landscape(10, 10), DefaultOptions())
		if !errors.Is(err, segment.ErrInvalidLabels) {
			t.Errorf("label %d of %d: err = %v, want ErrInvalidLabels", g.right, g.count, err)
		}
	}
}

func TestPaint_Diagnostics(t *testing.T) {
	o := DefaultOptions()
	o.Diagnostics = true
	img := landscape(40, 30)
	res, err := New(nil, nil).Paint(img, o)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	d := res.Diagnostics
	if d == nil {
		t.Fatal("no diagnostics")
	}
	for name, im := range map[string]*image.NRGBA{
		"saturated": d.Saturated, "clustered": d.Clustered,
		"random": d.RandomColor, "reglines": d.RegLines,
	} {
		if im.Bounds() != img.Bounds() {
			t.Errorf("%s bounds = %v", name, im.Bounds())
		}
	}
	if d.Labels.Count != res.Stats.Regions {
		t.Errorf("label count %d, regions %d", d.Labels.Count, res.Stats.Regions)
	}

	res, err = New(nil, nil).Paint(img, DefaultOptions())
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if res.Diagnostics != nil {
		t.Error("diagnostics returned without being requested")
	}
}

func TestSaturate(t *testing.T) {
	img := solid(2, 2, color.NRGBA{200, 100, 50, 255})
	if got := Saturate(img, 1).NRGBAAt(0, 0); got != img.NRGBAAt(0, 0) {
		t.Errorf("factor 1 changed the color: %v", got)
	}
	grey := Saturate(img, 0).NRGBAAt(0, 0)
	if grey.R != grey.G || grey.G != grey.B {
		t.Errorf("factor 0 should give grey, got %v", grey)
	}
	vivid := Saturate(img, 2.5).NRGBAAt(0, 0)
	if vivid.R != 255 || vivid.B != 0 {
		t.Errorf("factor 2.5 should push channels apart, got %v", vivid)
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if err := o.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if o.Width != planner.Auto || o.SegBound != planner.Auto {
		t.Error("sizes and thresholds should default to auto")
	}
}
