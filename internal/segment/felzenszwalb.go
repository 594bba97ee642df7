package segment

import (
	"cmp"
	"image"
	"math"
	"slices"

	"github.com/disintegration/imaging"
)

// Felzenszwalb is the efficient graph-based segmentation of Felzenszwalb
// and Huttenlocher on an 8-connected pixel grid.
//
// Scale plays the role of k on 0..255 channel distances, so it matches the
// scale parameter of implementations working on normalised floats.
type Felzenszwalb struct{}

type edge struct {
	w    float32
	a, b int32
}

// Segment implements Segmenter.
func (Felzenszwalb) Segment(img image.Image, p Params) (*Labels, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	src := imaging.Clone(img)
	if p.Sigma > 0 {
		src = imaging.Blur(src, p.Sigma)
	}

	edges := buildEdges(src, w, h)
	slices.SortStableFunc(edges, func(x, y edge) int { return cmp.Compare(x.w, y.w) })

	k := float32(p.Scale)
	f := newForest(w*h, k)
	for _, e := range edges {
		a, b := f.find(e.a), f.find(e.b)
		if a == b {
			continue
		}
		if e.w <= f.thresh[a] && e.w <= f.thresh[b] {
			root := f.union(a, b)
			f.thresh[root] = e.w + k/float32(f.size[root])
		}
	}

	if p.MinSize > 1 {
		minSize := int32(p.MinSize)
		for _, e := range edges {
			a, b := f.find(e.a), f.find(e.b)
			if a != b && (f.size[a] < minSize || f.size[b] < minSize) {
				f.union(a, b)
			}
		}
	}

	roots := make([]int, w*h)
	for i := range roots {
		roots[i] = int(f.find(int32(i)))
	}
	return relabel(roots, w, h), nil
}

// buildEdges connects each pixel to its right, lower, lower-right and
// upper-right neighbours.
func buildEdges(src *image.NRGBA, w, h int) []edge {
	edges := make([]edge, 0, w*h*4)
	dist := func(i, j int) float32 {
		pi, pj := src.Pix[i*4:i*4+3], src.Pix[j*4:j*4+3]
		dr := float64(pi[0]) - float64(pj[0])
		dg := float64(pi[1]) - float64(pj[1])
		db := float64(pi[2]) - float64(pj[2])
		return float32(math.Sqrt(dr*dr + dg*dg + db*db))
	}
	link := func(x0, y0, x1, y1 int) {
		i, j := y0*w+x0, y1*w+x1
		edges = append(edges, edge{w: dist(i, j), a: int32(i), b: int32(j)})
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+1 < w {
				link(x, y, x+1, y)
			}
			if y+1 < h {
				link(x, y, x, y+1)
			}
			if x+1 < w && y+1 < h {
				link(x, y, x+1, y+1)
			}
			if x+1 < w && y > 0 {
				link(x, y, x+1, y-1)
			}
		}
	}
	return edges
}
