package encoder

import (
	"fmt"
	"strings"
)

// Registry maps format names and common aliases to encoders.
type Registry struct {
	encoders map[string]Encoder
	order    []string
}

// NewRegistry creates a registry holding every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&QOIEncoder{},
		&TIFFEncoder{},
		&BMPEncoder{},
	} {
		r.encoders[enc.Format()] = enc
		r.order = append(r.order, enc.Format())
	}
	r.encoders["jpg"] = r.encoders["jpeg"]
	r.encoders["tif"] = r.encoders["tiff"]
	return r
}

// Get returns the encoder for format, or nil if there is none.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// Resolve returns the encoder for format. An empty format selects PNG.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if format == "" {
		return r.encoders["png"], nil
	}
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown output format %q (available: %s)", format, strings.Join(r.order, ", "))
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	return append([]string(nil), r.order...)
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.order, ", "))
}
