package brush

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/AnyUserName/impasto-cli/internal/rng"
)

var (
	red  = color.NRGBA{220, 40, 30, 255}
	blue = color.NRGBA{20, 60, 210, 255}
)

func TestCosArc(t *testing.T) {
	for _, n := range []int{1, 2} {
		for i, v := range CosArc(n, 10) {
			if v != 0 {
				t.Errorf("CosArc(%d)[%d] = %d, want 0", n, i, v)
			}
		}
	}
	arc := CosArc(40, 12)
	if len(arc) != 40 {
		t.Fatalf("len = %d", len(arc))
	}
	peak := 0
	for i, v := range arc {
		if v < 0 || v > 12 {
			t.Errorf("arc[%d] = %d outside [0, 12]", i, v)
		}
		if v > arc[peak] {
			peak = i
		}
	}
	if peak < 15 || peak > 25 {
		t.Errorf("cos arc should peak mid-stroke, peaked at %d", peak)
	}
	if arc[0] != 0 {
		t.Errorf("cos arc should start at 0, got %d", arc[0])
	}
}

func TestLogArc(t *testing.T) {
	arc := LogArc(50, 20)
	if arc[0] < 19 || arc[0] > 20 {
		t.Errorf("log arc should reach the bulge at the top, got %d", arc[0])
	}
	for i := 1; i < len(arc); i++ {
		if arc[i] > arc[i-1] {
			t.Fatalf("log arc increases at %d: %d > %d", i, arc[i], arc[i-1])
		}
		if arc[i] < 0 {
			t.Fatalf("negative offset at %d", i)
		}
	}
	if got := LogArc(30, 0); got[0] != 0 {
		t.Errorf("zero bulge should give a flat arc, got %d", got[0])
	}
}

func TestParseArc(t *testing.T) {
	if a, err := ParseArc("cos"); err != nil || a != ArcCos {
		t.Errorf("ParseArc(cos) = %q, %v", a, err)
	}
	if _, err := ParseArc("sine"); err == nil {
		t.Error("expected error for unknown arc")
	}
}

func TestCutoffs(t *testing.T) {
	r := rng.New(5)
	upper, lower := Cutoffs(r, 30, 60)
	if len(upper) != 30 || len(lower) != 30 {
		t.Fatalf("lengths %d/%d, want 30", len(upper), len(lower))
	}
	for i := range upper {
		if upper[i] < 0 || lower[i] < 0 {
			t.Fatalf("negative cutoff at %d", i)
		}
		if upper[i] > 60 || lower[i] > 60 {
			t.Errorf("cutoff at %d exceeds stroke height: %d/%d", i, upper[i], lower[i])
		}
	}

	u2, l2 := Cutoffs(rng.New(5), 30, 60)
	for i := range upper {
		if upper[i] != u2[i] || lower[i] != l2[i] {
			t.Fatalf("cutoffs not reproducible at %d", i)
		}
	}
}

func TestCapCutoffs(t *testing.T) {
	upper, lower := CapCutoffs(21, 8)
	if upper[0] != 8 {
		t.Errorf("cap should be deepest at the edge, got %d", upper[0])
	}
	if upper[10] > 1 {
		t.Errorf("cap should vanish mid-stroke, got %d", upper[10])
	}
	for i := range upper {
		if upper[i] != lower[i] {
			t.Fatalf("caps should be symmetric at %d", i)
		}
	}
}

func TestRamp(t *testing.T) {
	ramp := Ramp([2]color.NRGBA{{0, 100, 200, 255}, {100, 100, 0, 255}}, 10)
	if len(ramp) != 10 {
		t.Fatalf("len = %d", len(ramp))
	}
	if ramp[0] != (color.NRGBA{0, 100, 200, 255}) {
		t.Errorf("ramp[0] = %v", ramp[0])
	}
	if ramp[5].R != 50 || ramp[5].B != 100 {
		t.Errorf("ramp[5] = %v, want R=50 B=100", ramp[5])
	}
	for i := 1; i < len(ramp); i++ {
		if ramp[i].R < ramp[i-1].R || ramp[i].B > ramp[i-1].B {
			t.Fatalf("ramp not monotone at %d", i)
		}
		if ramp[i].A != 255 {
			t.Fatalf("ramp alpha at %d = %d", i, ramp[i].A)
		}
	}
}

func TestVivid(t *testing.T) {
	start := [2]color.NRGBA{{230, 10, 10, 255}, {10, 20, 90, 255}}
	end := [2]color.NRGBA{{10, 180, 10, 255}, {40, 40, 40, 255}}
	s, e := Vivid(start, end)
	if s[0].R != 255 {
		t.Errorf("bright dominant channel should clamp to 255, got %d", s[0].R)
	}
	if s[1].B != 40 {
		t.Errorf("dark dominant channel should drop by 50, got %d", s[1].B)
	}
	if e[0].G != 230 {
		t.Errorf("end color G: got %d, want 230", e[0].G)
	}
	if e[1].R != 0 {
		t.Errorf("tie goes to red and clamps at 0, got %d", e[1].R)
	}
}

func TestColorify(t *testing.T) {
	r := rng.New(9)
	c := color.NRGBA{10, 200, 30, 255}
	if Colorify(r, c, 0) != c {
		t.Error("zero amount must not change the color")
	}
	for i := 0; i < 20; i++ {
		got := Colorify(r, c, 40)
		if got.R != 10 || got.B != 30 {
			t.Fatalf("only the dominant channel may change: %v", got)
		}
		if got.G != 240 && got.G != 160 {
			t.Fatalf("G = %d, want 240 or 160", got.G)
		}
	}
}

func TestStreak(t *testing.T) {
	r := rng.New(3)
	s := newStreak(r, 40, 30)
	if s.widthMax != 10 || s.widthMin < 1 || s.widthMin > 10 {
		t.Fatalf("bad init: %+v", s)
	}
	if s.start < 10 || s.start > 14 {
		t.Errorf("initial start %d outside [10, 14]", s.start)
	}
}

// nudged reports whether next's offsets are prev's moved by -2, 0 or +2
// each, clamped at 0, and pulled back one pixel when they would meet.
func nudged(prev, next streak, edge int) bool {
	clamp := func(v int) int { return min(255, max(0, v)) }
	for _, ds := range []int{-2, 0, 2} {
		for _, dt := range []int{-2, 0, 2} {
			start, stop := clamp(prev.start+ds), clamp(prev.stop+dt)
			if start+stop == edge {
				start, stop = max(start-1, 0), max(stop-1, 0)
			}
			if next.start == start && next.stop == stop {
				return true
			}
		}
	}
	return false
}

func TestStreak_Advance(t *testing.T) {
	const edge = 30
	r := rng.New(11)
	s := newStreak(r, 40, edge)

	var resets, fresh, extended int
	for i := 0; i < 2000; i++ {
		prev := s
		s.advance(r, edge)

		switch {
		case prev.width == 0:
			// A fresh streak draws its start and begins at width 1.
			fresh++
			if s.width != 1 || s.stop != 0 || s.start < 0 || s.start > 4*edge/5 {
				t.Fatalf("step %d: fresh streak %+v from %+v", i, s, prev)
			}
			if s.widthMin != prev.widthMin {
				t.Fatalf("step %d: fresh streak changed widthMin", i)
			}
		case prev.width < prev.widthMin:
			// Below the minimum width a streak always continues.
			if s.width != prev.width+1 || s.widthMin != prev.widthMin {
				t.Fatalf("step %d: streak under its minimum ended: %+v -> %+v", i, prev, s)
			}
			if !nudged(prev, s, edge) {
				t.Fatalf("step %d: offsets moved too far: %+v -> %+v", i, prev, s)
			}
		case s.width == 0:
			resets++
			if s.stop != 0 || s.widthMin < 1 || s.widthMin > s.widthMax {
				t.Fatalf("step %d: bad reset %+v", i, s)
			}
			if s.start < 0 || s.start > 4*edge/5 {
				t.Fatalf("step %d: reset start %d out of range", i, s.start)
			}
		default:
			extended++
			if s.width != prev.width+1 || !nudged(prev, s, edge) {
				t.Fatalf("step %d: bad continuation %+v -> %+v", i, prev, s)
			}
		}
		if s.start < 0 || s.stop < 0 {
			t.Fatalf("step %d: negative offset %+v", i, s)
		}
	}
	if resets == 0 || extended == 0 || fresh == 0 {
		t.Errorf("branches not all taken: resets=%d extended=%d fresh=%d", resets, extended, fresh)
	}
	// Every reset is followed by a fresh start, plus the initial one.
	if d := fresh - resets; d != 0 && d != 1 {
		t.Errorf("%d resets but %d fresh starts", resets, fresh)
	}
}

func TestColumn(t *testing.T) {
	c := column{sizeY: 40, edge: 40, start: red, end: blue, gStart: 10, gStop: 5}
	if c.at(3) != red {
		t.Errorf("above gradient start should be the start color")
	}
	if c.at(39) != blue {
		t.Errorf("below gradient stop should be the end color")
	}
	mid := c.at(22)
	if mid.R >= red.R || mid.R <= blue.R {
		t.Errorf("gradient midpoint R = %d not between %d and %d", mid.R, blue.R, red.R)
	}

	c.whiten = true
	if got := c.at(39); got != Lighten(blue, -MarginShift) {
		t.Errorf("lower edge should be darkened, got %v", got)
	}
	if got := c.at(38); got != Lighten(blue, MarginShift) {
		t.Errorf("band above the edge should be lightened, got %v", got)
	}
}

func opaque(img *image.NRGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestComplex(t *testing.T) {
	o := ComplexOptions{
		Width: 20, Height: 24,
		Start: [2]color.NRGBA{red, red}, End: [2]color.NRGBA{blue, blue},
		AngleMin: -30, AngleMax: 10,
		Arc:     ArcLog,
		Margins: true,
	}
	s := Complex(rng.New(1), o)
	if got := s.Patch.Bounds(); got.Dx() != 24 || got.Dy() != 24 {
		t.Errorf("patch size %v, want 24x24", got)
	}
	if s.Angle < -30 || s.Angle > 10 {
		t.Errorf("angle %v outside band", s.Angle)
	}
	if !s.Centered {
		t.Error("complex strokes are placed by their center")
	}
	if opaque(s.Patch) == 0 {
		t.Error("patch is empty")
	}

	again := Complex(rng.New(1), o)
	if !bytes.Equal(s.Patch.Pix, again.Patch.Pix) {
		t.Error("same seed produced different patches")
	}
}

func TestComplex_Ground(t *testing.T) {
	o := ComplexOptions{
		Width: 20, Height: 10,
		Start: [2]color.NRGBA{red, blue}, End: [2]color.NRGBA{blue, red},
		Arc:    ArcCos,
		Ground: true,
	}
	for seed := uint64(0); seed < 10; seed++ {
		s := Complex(rng.New(seed), o)
		if s.Angle < 80 || s.Angle > 100 {
			t.Fatalf("ground angle %v outside [80, 100]", s.Angle)
		}
		if s.Patch.Bounds().Dy() != 20 {
			t.Fatalf("ground stroke height %d, want 20", s.Patch.Bounds().Dy())
		}
	}
}

func TestComplex_Tiny(t *testing.T) {
	o := ComplexOptions{Width: 1, Height: 1, Start: [2]color.NRGBA{red, red}, End: [2]color.NRGBA{red, red}}
	s := Complex(rng.New(2), o)
	if s.Patch == nil {
		t.Fatal("nil patch")
	}
}

func TestArcFromLine(t *testing.T) {
	var straight []image.Point
	for i := 0; i < 10; i++ {
		straight = append(straight, image.Pt(i, 2*i))
	}
	for i, v := range ArcFromLine(straight) {
		if v != 0 {
			t.Errorf("straight line arc[%d] = %d", i, v)
		}
	}

	var bent []image.Point
	for x := 0; x <= 20; x++ {
		bent = append(bent, image.Pt(x, (x-10)*(x-10)/5))
	}
	arc := ArcFromLine(bent)
	if len(arc) != len(bent) {
		t.Fatalf("len = %d", len(arc))
	}
	if maxOf(arc) == 0 {
		t.Error("bent line should produce a curved arc")
	}
	for i, v := range arc {
		if v < 0 {
			t.Fatalf("arc[%d] = %d", i, v)
		}
	}

	if got := ArcFromLine([]image.Point{{3, 3}, {3, 3}}); got[0] != 0 || got[1] != 0 {
		t.Errorf("degenerate chord should give zeros, got %v", got)
	}
}

func TestRoughen(t *testing.T) {
	arc := make([]int, 400)
	for i := range arc {
		arc[i] = 5
	}
	out := Roughen(rng.New(4), arc)
	if len(out) != len(arc) {
		t.Fatalf("len = %d", len(out))
	}
	for i := range arc {
		if arc[i] != 5 {
			t.Fatal("input was modified")
		}
		if out[i] < 0 {
			t.Fatalf("out[%d] = %d", i, out[i])
		}
	}
}

func TestSimple(t *testing.T) {
	var line []image.Point
	for x := 0; x < 30; x++ {
		line = append(line, image.Pt(x, 10+x/3))
	}
	if _, ok := Simple(rng.New(1), SimpleOptions{Width: 1, Line: line, Color: red}); ok {
		t.Error("width 1 is a hairline")
	}

	s, ok := Simple(rng.New(1), SimpleOptions{Width: 6, Line: line, Angle: -20, Color: red})
	if !ok {
		t.Fatal("simple stroke rejected")
	}
	if s.Patch.Bounds().Dy() != len(line) {
		t.Errorf("height %d, want %d", s.Patch.Bounds().Dy(), len(line))
	}
	if s.Angle != 20 {
		t.Errorf("rotation %v, want 20", s.Angle)
	}
	if !s.Anchor.In(s.Patch.Bounds()) {
		t.Errorf("anchor %v outside patch %v", s.Anchor, s.Patch.Bounds())
	}
	for i := 0; i < len(s.Patch.Pix); i += 4 {
		if s.Patch.Pix[i+3] == 0 {
			continue
		}
		if s.Patch.Pix[i] != red.R || s.Patch.Pix[i+1] != red.G || s.Patch.Pix[i+2] != red.B {
			t.Fatal("simple strokes are a single flat color")
		}
	}
}
