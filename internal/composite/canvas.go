package composite

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// Canvas is the output image. Strokes may be prepared concurrently but
// every write goes through the canvas lock, since alpha blending is not
// commutative.
type Canvas struct {
	mu  sync.Mutex
	img *image.RGBA
}

// NewCanvas returns a canvas initialised with a copy of bg.
func NewCanvas(bg image.Image) *Canvas {
	b := bg.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), bg, b.Min, draw.Src)
	return &Canvas{img: img}
}

// Paste composites patch over the canvas with its top-left corner at at.
// Parts that fall outside the canvas are clipped.
func (c *Canvas) Paste(patch image.Image, at image.Point) {
	pb := patch.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(pb.Size())}
	c.mu.Lock()
	defer c.mu.Unlock()
	draw.Draw(c.img, r, patch, pb.Min, draw.Over)
}

// Place pastes p so that its anchor lands on at.
func (c *Canvas) Place(p Placed, at image.Point) {
	c.Paste(p.Patch, at.Sub(p.Anchor))
}

// Fill sets every point in pts to col without blending.
func (c *Canvas) Fill(pts []image.Point, col color.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range pts {
		c.img.Set(p.X, p.Y, col)
	}
}

// Image returns the canvas pixels. Callers must not paste concurrently
// with reading the result.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}
