package segment

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

const labelsMagic = "IMPL"

// ErrInvalidMagic is returned by ReadLabels for foreign data.
var ErrInvalidMagic = errors.New("segment: invalid label dump magic")

// MaxLabelPixels bounds the grid ReadLabels accepts, about 16k×16k.
const MaxLabelPixels = 1 << 28

// WriteLabels writes l as a small header followed by a zstd frame of
// little-endian uint32 labels.
func WriteLabels(w io.Writer, l *Labels) error {
	hdr := make([]byte, 0, 12)
	hdr = append(hdr, labelsMagic...)
	hdr = binary.BigEndian.AppendUint32(hdr, uint32(l.Width))
	hdr = binary.BigEndian.AppendUint32(hdr, uint32(l.Height))
	if _, err := w.Write(hdr); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)
	var buf [4]byte
	for _, id := range l.IDs {
		binary.LittleEndian.PutUint32(buf[:], uint32(id))
		if _, err := bw.Write(buf[:]); err != nil {
			enc.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadLabels decodes data produced by WriteLabels.
func ReadLabels(r io.Reader) (*Labels, error) {
	hdr := make([]byte, 12)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(hdr[:4]) != labelsMagic {
		return nil, ErrInvalidMagic
	}
	w := int(binary.BigEndian.Uint32(hdr[4:8]))
	h := int(binary.BigEndian.Uint32(hdr[8:12]))
	if w == 0 || h == 0 || w > MaxLabelPixels/h {
		return nil, fmt.Errorf("%w: %dx%d label grid", ErrInvalidLabels, w, h)
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	// Grow with the data actually present so a lying header cannot force a
	// huge allocation.
	n := w * h
	br := bufio.NewReader(dec)
	l := &Labels{Width: w, Height: h, IDs: make([]int, 0, min(n, 1<<20))}
	var buf [4]byte
	for len(l.IDs) < n {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, fmt.Errorf("read labels: %w", err)
		}
		id := int(binary.LittleEndian.Uint32(buf[:]))
		l.IDs = append(l.IDs, id)
		if id+1 > l.Count {
			l.Count = id + 1
		}
	}
	return l, nil
}
