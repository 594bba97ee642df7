package encoder

import (
	"bytes"
	"image"

	"github.com/xfmoulet/qoi"
)

// QOIEncoder writes the Quite OK Image format: lossless, and much faster
// to encode than PNG for large paintings.
type QOIEncoder struct{}

func (e *QOIEncoder) Format() string    { return "qoi" }
func (e *QOIEncoder) Extension() string { return "qoi" }

func (e *QOIEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	var buf bytes.Buffer
	if err := qoi.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
