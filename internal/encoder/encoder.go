// Package encoder writes finished paintings in the supported raster
// formats. Every encoder is pure Go, so all formats are always available.
package encoder

import (
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the format name (e.g. "png", "jpeg", "qoi").
	Format() string

	// Encode converts the image to bytes. quality (1-100) only affects
	// lossy formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
