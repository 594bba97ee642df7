package region

import "image"

// MaxContrast is the largest value Contrast can return: three channels,
// four corners, 255 each.
const MaxContrast = 3 * 4 * 255

// Contrast sums the absolute RGB differences between the color at rep and
// the colors at the four corners of box. The corners stand in for the
// neighbouring regions.
func Contrast(img *image.NRGBA, rep image.Point, box BBox) int {
	b := img.Bounds()
	clamp := func(x, y int) image.Point {
		return image.Pt(
			min(max(x, b.Min.X), b.Max.X-1),
			min(max(y, b.Min.Y), b.Max.Y-1),
		)
	}
	c := img.NRGBAAt(rep.X, rep.Y)
	sum := 0
	for _, p := range []image.Point{
		clamp(box.MinX, box.MinY),
		clamp(box.MaxX, box.MinY),
		clamp(box.MinX, box.MaxY),
		clamp(box.MaxX, box.MaxY),
	} {
		n := img.NRGBAAt(p.X, p.Y)
		sum += absDiff(c.R, n.R) + absDiff(c.G, n.G) + absDiff(c.B, n.B)
	}
	return sum
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
