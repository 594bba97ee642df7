//go:build ignore

// gen_fixtures creates small test photographs for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "series"), 0o755)

	// Landscape (JPEG, 320x200)
	write(filepath.Join(dir, "landscape.jpg"), landscape(320, 200), func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	})

	// A series of sunsets (PNG, 160x120 each)
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("sunset-%d.png", i)
		write(filepath.Join(dir, "series", name), sunset(160, 120, i), png.Encode)
	}

	// Stripes with thin lines (BMP) and a still life (QOI)
	write(filepath.Join(dir, "stripes.bmp"), stripes(120, 120), bmp.Encode)
	write(filepath.Join(dir, "still.qoi"), stillLife(128, 96), qoi.Encode)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

// landscape draws a sky gradient, a sun and rolling green hills.
func landscape(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: uint8(90 + y*80/h), G: uint8(150 + y*60/h), B: 235, A: 255}
			dx, dy := x-w*3/4, y-h/4
			if dx*dx+dy*dy < (h/8)*(h/8) {
				c = color.NRGBA{R: 250, G: 210, B: 60, A: 255}
			}
			hill := float64(h)*0.65 + 12*math.Sin(float64(x)/25)
			if float64(y) > hill {
				c = color.NRGBA{R: 50, G: uint8(120 + (x*3+y)%50), B: 40, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func sunset(w, h, i int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: uint8(200 + y*50/h), G: uint8(80 + i*30 + y*40/h), B: uint8(120 - y*60/h), A: 255}
			if y > h*2/3 {
				c = color.NRGBA{R: 20, G: 30, B: uint8(60 + i*20), A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// stripes has bands one to four pixels wide, which end up as single strokes
// and hairlines.
func stripes(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	palette := []color.NRGBA{
		{R: 230, G: 40, B: 40, A: 255},
		{R: 250, G: 250, B: 240, A: 255},
		{R: 30, G: 60, B: 200, A: 255},
	}
	x, band := 0, 0
	for x < w {
		width := band%4 + 1
		for i := 0; i < width && x < w; i, x = i+1, x+1 {
			for y := 0; y < h; y++ {
				img.SetNRGBA(x, y, palette[band%len(palette)])
			}
		}
		band++
	}
	return img
}

func stillLife(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 120, G: 90, B: 70, A: 255}
			if y > h*3/5 {
				c = color.NRGBA{R: 180, G: 150, B: 110, A: 255}
			}
			for j, cx := range []int{w / 4, w / 2, w * 3 / 4} {
				dx, dy := x-cx, y-h/2
				if dx*dx+dy*dy < 150 {
					c = color.NRGBA{R: uint8(200 - j*60), G: uint8(60 + j*70), B: 40, A: 255}
				}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func write(path string, img image.Image, encode func(io.Writer, image.Image) error) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		panic(err)
	}
}
