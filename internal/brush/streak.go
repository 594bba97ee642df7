package brush

import (
	"math/rand/v2"

	"github.com/AnyUserName/impasto-cli/internal/rng"
)

// streak groups neighbouring columns into runs with a similar gradient so
// the stroke shows smudged streaks along its length. start and stop are
// the offsets from the top and bottom of the visible column where the
// color gradient begins and ends.
type streak struct {
	width    int
	widthMin int
	widthMax int
	start    int
	stop     int
}

func newStreak(r *rand.Rand, paintWidth, edgeHeight int) streak {
	s := streak{widthMax: paintWidth / 4}
	s.widthMin = rng.Int(r, 1, max(1, s.widthMax))
	s.start = rng.Int(r, edgeHeight/3, max(1, edgeHeight/2-1))
	return s
}

// advance moves to the next column. A fresh streak picks a new gradient
// start; a running streak either nudges its offsets by at most two pixels
// or, once past its minimum width and on a lost coin flip, ends.
func (s *streak) advance(r *rand.Rand, edgeHeight int) {
	switch {
	case s.width == 0:
		s.start = rng.Int(r, 0, 4*edgeHeight/5)
		s.stop = 0
		s.width++
	case s.width < s.widthMin || rng.Coin(r):
		s.start = min(255, max(0, s.start-rng.Pick(r, -2, 0, 2)))
		s.stop = min(255, max(0, s.stop-rng.Pick(r, -2, 0, 2)))
		if s.start+s.stop == edgeHeight {
			s.start = max(s.start-1, 0)
			s.stop = max(s.stop-1, 0)
		}
		s.width++
	default:
		s.start = rng.Int(r, 0, 4*edgeHeight/5)
		s.stop = 0
		s.width = 0
		s.widthMin = rng.Int(r, 1, max(1, s.widthMax))
	}
}
