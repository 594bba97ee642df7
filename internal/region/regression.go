package region

import (
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// Degree of the polynomial fitted through each region.
	Degree = 2
	// MinFitPoints is the smallest region that gets a regression line.
	MinFitPoints = Degree + 7
)

// Poly is y = A·x² + B·x + C.
type Poly struct {
	A, B, C float64
}

// At evaluates the polynomial.
func (p Poly) At(x float64) float64 {
	return p.A*x*x + p.B*x + p.C
}

// FitQuadratic fits a degree-2 polynomial to the points by least squares.
// It reports false when the design matrix is rank deficient.
func FitQuadratic(xs, ys []float64) (Poly, bool) {
	n := len(xs)
	if n < Degree+1 || len(ys) != n {
		return Poly{}, false
	}
	a := mat.NewDense(n, Degree+1, nil)
	for i, x := range xs {
		a.Set(i, 0, x*x)
		a.Set(i, 1, x)
		a.Set(i, 2, 1)
	}

	// Column scaling keeps x² and 1 comparable before the rank test.
	var norms [Degree + 1]float64
	for j := range norms {
		norms[j] = mat.Norm(a.ColView(j), 2)
		if norms[j] == 0 {
			return Poly{}, false
		}
		for i := 0; i < n; i++ {
			a.Set(i, j, a.At(i, j)/norms[j])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return Poly{}, false
	}
	rcond := float64(n) * 2.220446049250313e-16
	if svd.Rank(rcond) < Degree+1 {
		return Poly{}, false
	}

	var c mat.VecDense
	svd.SolveVecTo(&c, mat.NewVecDense(n, append([]float64(nil), ys...)), Degree+1)
	return Poly{
		A: c.AtVec(0) / norms[0],
		B: c.AtVec(1) / norms[1],
		C: c.AtVec(2) / norms[2],
	}, true
}

// SampleLine walks the fitted curve from minX to maxX. The step is chosen
// so the number of samples approximates the chord length between the curve
// end points. Samples outside [0, height-1] are dropped.
func SampleLine(p Poly, minX, maxX, height int) []image.Point {
	x0, x1 := float64(minX), float64(maxX)
	chord := math.Hypot(x1-x0, p.At(x1)-p.At(x0))
	if chord == 0 {
		return nil
	}
	step := (x1 - x0) / chord
	if step <= 0 {
		return nil
	}
	count := int(math.Ceil((x1 + 1 - x0) / step))
	line := make([]image.Point, 0, count)
	for i := 0; i < count; i++ {
		x := x0 + float64(i)*step
		y := int(p.At(x))
		if y < 0 || y > height-1 {
			continue
		}
		line = append(line, image.Pt(int(x), y))
	}
	return line
}

// Orientation returns the rotation in degrees that makes the line upright.
// A rising line (y grows with x) rotates clockwise and yields a negative
// angle. The result is within [-90, 90].
func Orientation(line []image.Point, minX, maxX int) float64 {
	if minX == maxX || len(line) == 0 {
		return 0
	}
	start, stop := line[0].Y, line[len(line)-1].Y
	dx := float64(maxX - minX)
	dy := float64(stop - start)
	hyp := math.Hypot(dx, dy)
	deg := math.Acos(math.Abs(dy)/hyp) * 180 / math.Pi
	if stop > start {
		return -deg
	}
	return deg
}
