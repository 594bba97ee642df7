// Package region turns a label grid into regions and derives the shape
// statistics the stroke planner needs: bounding box, size, a regression
// line through the region, its orientation and its contrast to the
// surrounding pixels.
package region

import (
	"image"

	"github.com/AnyUserName/impasto-cli/internal/segment"
)

// Region is the set of pixels sharing one label. Pixels are stored in raster
// order and belong to the Index; callers must not modify them.
type Region struct {
	ID     int
	Pixels []image.Point
}

// Size returns the pixel count.
func (r Region) Size() int { return len(r.Pixels) }

// Representative is the first pixel of the region in raster order. It must
// not be called on an empty region.
func (r Region) Representative() image.Point { return r.Pixels[0] }

// BBox is an inclusive pixel bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY int
}

// Bounds computes the bounding box of r.
func (r Region) Bounds() BBox {
	b := BBox{MinX: r.Pixels[0].X, MinY: r.Pixels[0].Y, MaxX: r.Pixels[0].X, MaxY: r.Pixels[0].Y}
	for _, p := range r.Pixels[1:] {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Index maps region IDs to their pixels. All regions of one image are built
// together and dropped together.
type Index struct {
	Width   int
	Height  int
	labels  []int
	regions []Region
}

// NewIndex groups the pixels of l by label. l must be valid; label IDs no
// pixel carries yield empty regions.
func NewIndex(l *segment.Labels) *Index {
	counts := make([]int, l.Count)
	for _, id := range l.IDs {
		counts[id]++
	}
	regions := make([]Region, l.Count)
	for id := range regions {
		regions[id] = Region{ID: id, Pixels: make([]image.Point, 0, counts[id])}
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			id := l.IDs[y*l.Width+x]
			regions[id].Pixels = append(regions[id].Pixels, image.Pt(x, y))
		}
	}
	return &Index{Width: l.Width, Height: l.Height, labels: l.IDs, regions: regions}
}

// Len returns the number of regions.
func (ix *Index) Len() int { return len(ix.regions) }

// Region returns the region with the given ID.
func (ix *Index) Region(id int) Region { return ix.regions[id] }

// Regions returns all regions ordered by ID.
func (ix *Index) Regions() []Region { return ix.regions }

// Contains reports whether (x, y) lies inside region id.
func (ix *Index) Contains(id, x, y int) bool {
	if x < 0 || y < 0 || x >= ix.Width || y >= ix.Height {
		return false
	}
	return ix.labels[y*ix.Width+x] == id
}
