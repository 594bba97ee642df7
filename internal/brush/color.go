package brush

import (
	"image/color"
	"math/rand/v2"

	"gonum.org/v1/gonum/interp"

	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// VividAmount is how far a highlighted stroke's dominant channel moves.
const VividAmount = 50

// Ramp interpolates linearly from c[0] to c[1] over n columns, per channel,
// so neighbouring columns differ smoothly instead of splitting in two.
func Ramp(c [2]color.NRGBA, n int) []color.NRGBA {
	out := make([]color.NRGBA, max(n, 0))
	if n <= 0 {
		return out
	}
	xs := []float64{0, float64(n)}
	channel := func(a, b uint8) interp.Predictor {
		var lin interp.PiecewiseLinear
		// Two distinct abscissae always fit.
		_ = lin.Fit(xs, []float64{float64(a), float64(b)})
		return &lin
	}
	pr := channel(c[0].R, c[1].R)
	pg := channel(c[0].G, c[1].G)
	pb := channel(c[0].B, c[1].B)
	for i := range out {
		x := float64(i)
		out[i] = color.NRGBA{
			R: clamp8(int(pr.Predict(x))),
			G: clamp8(int(pg.Predict(x))),
			B: clamp8(int(pb.Predict(x))),
			A: 255,
		}
	}
	return out
}

// Dominant returns the index (0=R, 1=G, 2=B) of the strongest channel.
// Ties go to the earlier channel.
func Dominant(c color.NRGBA) int {
	ch := 0
	if c.G > c.R {
		ch = 1
	}
	if c.B > channel(c, ch) {
		ch = 2
	}
	return ch
}

// Vivid pushes the dominant channel of every color toward its nearest
// extreme by VividAmount.
func Vivid(start, end [2]color.NRGBA) ([2]color.NRGBA, [2]color.NRGBA) {
	push := func(c color.NRGBA) color.NRGBA {
		ch := Dominant(c)
		v := int(channel(c, ch))
		if v >= 128 {
			v += VividAmount
		} else {
			v -= VividAmount
		}
		return withChannel(c, ch, clamp8(v))
	}
	for i := range start {
		start[i] = push(start[i])
		end[i] = push(end[i])
	}
	return start, end
}

// Colorify moves the dominant channel of c up or down by amount, chosen by
// a coin flip.
func Colorify(r *rand.Rand, c color.NRGBA, amount int) color.NRGBA {
	if amount <= 0 {
		return c
	}
	ch := Dominant(c)
	v := int(channel(c, ch))
	if rng.Coin(r) {
		v += amount
	} else {
		v -= amount
	}
	return withChannel(c, ch, clamp8(v))
}

// Lighten adds d to the RGB channels and forces full opacity.
func Lighten(c color.NRGBA, d int) color.NRGBA {
	return color.NRGBA{
		R: clamp8(int(c.R) + d),
		G: clamp8(int(c.G) + d),
		B: clamp8(int(c.B) + d),
		A: 255,
	}
}

func channel(c color.NRGBA, ch int) uint8 {
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	}
	return c.B
}

func withChannel(c color.NRGBA, ch int, v uint8) color.NRGBA {
	switch ch {
	case 0:
		c.R = v
	case 1:
		c.G = v
	default:
		c.B = v
	}
	return c
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
