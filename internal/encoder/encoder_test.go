package encoder

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 28), 120, 255})
		}
	}
	return img
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry()
	src := sample()
	for _, f := range r.Available() {
		t.Run(f, func(t *testing.T) {
			enc := r.Get(f)
			data, err := enc.Encode(src, 0)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			img, format, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if img.Bounds().Size() != src.Bounds().Size() {
				t.Errorf("size %v, want %v", img.Bounds().Size(), src.Bounds().Size())
			}
			if format != f {
				t.Errorf("decoded as %q", format)
			}
			if f == "jpeg" {
				return
			}
			r0, g0, b0, _ := img.At(5, 3).RGBA()
			r1, g1, b1, _ := src.At(5, 3).RGBA()
			if r0 != r1 || g0 != g1 || b0 != b1 {
				t.Errorf("lossless format changed a pixel")
			}
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	if enc, err := r.Resolve(""); err != nil || enc.Format() != "png" {
		t.Errorf("default = %v, %v", enc, err)
	}
	if enc, err := r.Resolve(".JPG"); err != nil || enc.Format() != "jpeg" {
		t.Errorf("alias = %v, %v", enc, err)
	}
	if _, err := r.Resolve("avif"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
