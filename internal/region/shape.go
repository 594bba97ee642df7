package region

import (
	"cmp"
	"image"
	"math"
	"runtime"
	"slices"
	"sync"
)

// Shape is the immutable set of statistics derived for one region.
type Shape struct {
	ID    int
	Size  int
	Box   BBox
	Line  []image.Point // regression line, x non-decreasing
	Angle float64       // degrees, see Orientation
	Fit   *Poly         // nil when Line is the raw pixel list
}

// Start returns the first point of the regression line.
func (s Shape) Start() image.Point { return s.Line[0] }

// LineLength is the rounded distance between the regression line ends.
func (s Shape) LineLength() int {
	a, b := s.Line[0], s.Line[len(s.Line)-1]
	return int(math.RoundToEven(math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))))
}

// Analyze computes the shape of r inside an image of the given height.
// It reports false for regions too small for a regression, for rank
// deficient fits and for fits whose samples all fall outside the image.
func Analyze(r Region, height int) (Shape, bool) {
	if r.Size() < MinFitPoints {
		return Shape{}, false
	}
	box := r.Bounds()
	s := Shape{ID: r.ID, Size: r.Size(), Box: box}

	if box.MinX == box.MaxX || box.MinY == box.MaxY {
		s.Line = r.Pixels
	} else {
		xs := make([]float64, len(r.Pixels))
		ys := make([]float64, len(r.Pixels))
		for i, p := range r.Pixels {
			xs[i], ys[i] = float64(p.X), float64(p.Y)
		}
		fit, ok := FitQuadratic(xs, ys)
		if !ok {
			return Shape{}, false
		}
		s.Fit = &fit
		s.Line = SampleLine(fit, box.MinX, box.MaxX, height)
		if len(s.Line) == 0 {
			return Shape{}, false
		}
	}
	s.Angle = Orientation(s.Line, box.MinX, box.MaxX)
	return s, true
}

// AnalyzeAll analyzes every region of ix on up to workers goroutines and
// returns the successful shapes ordered largest first. Ties are broken by
// descending ID so the order is stable across runs.
func AnalyzeAll(ix *Index, workers int) []Shape {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	type result struct {
		shape Shape
		ok    bool
	}
	results := make([]result, ix.Len())

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for id := range results {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			s, ok := Analyze(ix.Region(id), ix.Height)
			results[id] = result{s, ok}
		}(id)
	}
	wg.Wait()

	shapes := make([]Shape, 0, len(results))
	for _, r := range results {
		if r.ok {
			shapes = append(shapes, r.shape)
		}
	}
	slices.SortFunc(shapes, func(a, b Shape) int {
		if c := cmp.Compare(b.Size, a.Size); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return shapes
}
