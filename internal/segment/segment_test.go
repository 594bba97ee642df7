package segment

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFelzenszwalb_SolidIsOneRegion(t *testing.T) {
	l, err := Felzenszwalb{}.Segment(solid(10, 10, color.NRGBA{90, 140, 30, 255}), DefaultParams())
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if l.Count != 1 {
		t.Fatalf("regions: got %d, want 1", l.Count)
	}
	for i, id := range l.IDs {
		if id != 0 {
			t.Fatalf("pixel %d has label %d", i, id)
		}
	}
}

func TestFelzenszwalb_TwoHalves(t *testing.T) {
	img := solid(20, 10, color.NRGBA{250, 250, 250, 255})
	for y := 0; y < 10; y++ {
		for x := 10; x < 20; x++ {
			img.SetNRGBA(x, y, color.NRGBA{10, 20, 200, 255})
		}
	}
	l, err := Felzenszwalb{}.Segment(img, Params{Scale: 50, Sigma: 0, MinSize: 5})
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if l.Count != 2 {
		t.Fatalf("regions: got %d, want 2", l.Count)
	}
	if l.At(0, 0) != 0 || l.At(19, 9) != 1 {
		t.Errorf("labels not dense in raster order: %d, %d", l.At(0, 0), l.At(19, 9))
	}
}

func TestFelzenszwalb_Empty(t *testing.T) {
	_, err := Felzenszwalb{}.Segment(image.NewNRGBA(image.Rect(0, 0, 0, 0)), DefaultParams())
	if err != ErrEmptyImage {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}

func TestFelzenszwalb_MinSizeMerges(t *testing.T) {
	img := solid(12, 12, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(5, 5, color.NRGBA{255, 255, 255, 255})
	l, err := Felzenszwalb{}.Segment(img, Params{Scale: 1, Sigma: 0, MinSize: 4})
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if l.Count != 1 {
		t.Errorf("single pixel should merge away, got %d regions", l.Count)
	}
}

func TestLabelsDump(t *testing.T) {
	l := &Labels{Width: 3, Height: 2, IDs: []int{0, 0, 1, 2, 1, 1}, Count: 3}
	var buf bytes.Buffer
	if err := WriteLabels(&buf, l); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadLabels(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Width != 3 || got.Height != 2 || got.Count != 3 {
		t.Fatalf("header: %+v", got)
	}
	for i := range l.IDs {
		if got.IDs[i] != l.IDs[i] {
			t.Errorf("label %d: got %d, want %d", i, got.IDs[i], l.IDs[i])
		}
	}
}

func TestReadLabels_BadMagic(t *testing.T) {
	_, err := ReadLabels(bytes.NewReader([]byte("NOPE00000000")))
	if err != ErrInvalidMagic {
		t.Errorf("err = %v, want ErrInvalidMagic", err)
	}
}

func TestReadLabels_OversizedHeader(t *testing.T) {
	hdr := []byte(labelsMagic)
	hdr = binary.BigEndian.AppendUint32(hdr, 65536)
	hdr = binary.BigEndian.AppendUint32(hdr, 65536)
	if _, err := ReadLabels(bytes.NewReader(hdr)); !errors.Is(err, ErrInvalidLabels) {
		t.Errorf("err = %v, want ErrInvalidLabels", err)
	}
}

func TestReadLabels_Truncated(t *testing.T) {
	l := &Labels{Width: 3, Height: 2, IDs: []int{0, 0, 1, 2, 1, 1}, Count: 3}
	var buf bytes.Buffer
	if err := WriteLabels(&buf, l); err != nil {
		t.Fatalf("write: %v", err)
	}
	data := buf.Bytes()
	// Claim a 1000×1000 grid while only six labels follow.
	binary.BigEndian.PutUint32(data[4:8], 1000)
	binary.BigEndian.PutUint32(data[8:12], 1000)
	if _, err := ReadLabels(bytes.NewReader(data)); err == nil {
		t.Error("expected an error for a header larger than the data")
	}
}

func TestLabelsValidate(t *testing.T) {
	tests := []struct {
		name string
		l    Labels
		ok   bool
	}{
		{"dense", Labels{Width: 2, Height: 1, IDs: []int{0, 1}, Count: 2}, true},
		{"gap", Labels{Width: 2, Height: 1, IDs: []int{0, 2}, Count: 3}, true},
		{"above count", Labels{Width: 2, Height: 1, IDs: []int{0, 2}, Count: 2}, false},
		{"negative", Labels{Width: 2, Height: 1, IDs: []int{-1, 0}, Count: 1}, false},
		{"short grid", Labels{Width: 2, Height: 2, IDs: []int{0, 0}, Count: 1}, false},
	}
	for _, tt := range tests {
		err := tt.l.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidLabels) {
			t.Errorf("%s: err = %v, want ErrInvalidLabels", tt.name, err)
		}
	}
}
