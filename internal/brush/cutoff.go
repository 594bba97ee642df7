package brush

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/interp"

	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// Cutoffs builds the upper and lower cap templates of a complex stroke.
// Each template is a cubic spline through a handful of random control
// values bounded by fractions of the stroke height, sampled once per
// column.
func Cutoffs(r *rand.Rand, width, height int) (upper, lower []int) {
	h := float64(height)
	frac := func(f float64) int { return int(h * f) }

	stop := max(1, frac(0.2))
	upperKnots := []float64{
		float64(rng.Int(r, frac(0.1), max(1, frac(0.3)))),
		float64(rng.Int(r, frac(0.05), stop)),
		float64(rng.Int(r, frac(0.05), stop)),
		float64(rng.Int(r, frac(0.05), stop)),
		float64(rng.Int(r, frac(0.1), stop)),
	}

	stop = max(1, frac(0.03))
	lowerKnots := []float64{
		float64(rng.Int(r, frac(0.15), frac(0.2))),
		float64(rng.Int(r, 0, stop)),
		float64(rng.Int(r, 0, stop)),
		float64(rng.Int(r, 0, stop)),
		float64(rng.Int(r, 0, stop)),
		float64(rng.Int(r, frac(0.15), frac(0.2))),
	}
	return splineProfile(width, upperKnots), splineProfile(width, lowerKnots)
}

// CapCutoffs builds symmetric cosine caps: deepest at both ends of the
// stroke and zero in the middle. The same template trims top and bottom.
func CapCutoffs(width, capSize int) (upper, lower []int) {
	arc := CosArc(width, capSize)
	upper = make([]int, width)
	for i, v := range arc {
		upper[i] = abs(capSize - v)
	}
	return upper, upper
}

// splineProfile spreads knots evenly over [0, n] and samples the spline at
// every integer in [0, n).
func splineProfile(n int, knots []float64) []int {
	out := make([]int, n)
	if n <= 0 {
		return out
	}
	xs := make([]float64, len(knots))
	for i := range xs {
		xs[i] = float64(n) * float64(i) / float64(len(knots)-1)
	}

	var pred interp.Predictor
	var spline interp.NotAKnotCubic
	if err := spline.Fit(xs, knots); err == nil {
		pred = &spline
	} else {
		var lin interp.PiecewiseLinear
		if err := lin.Fit(xs, knots); err != nil {
			return out
		}
		pred = &lin
	}
	for i := range out {
		out[i] = abs(int(pred.Predict(float64(i))))
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
