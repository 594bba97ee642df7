package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	_ "github.com/xfmoulet/qoi"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/AnyUserName/impasto-cli/internal/hasher"
	"github.com/AnyUserName/impasto-cli/internal/manifest"
	"github.com/AnyUserName/impasto-cli/internal/painter"
	"github.com/AnyUserName/impasto-cli/internal/segment"
)

// hashLen is the number of hex chars of xxhash64 kept in the manifest.
const hashLen = 16

// processResult holds the result of painting a single source image.
type processResult struct {
	key      string
	painting manifest.Painting
	err      error
}

// processImage handles a single source image: decode, paint, encode,
// write, and optionally move the source out of the way.
func (p *Pipeline) processImage(src Source) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	seed := hasher.ImageSeed(p.cfg.Seed, src.Key)
	opts := p.cfg.Options
	opts.Seed = seed
	res, err := p.painter.Paint(img, opts)
	if err != nil {
		result.err = fmt.Errorf("paint %s: %w", src.RelPath, err)
		return result
	}

	// Mirror the input tree in the output directory.
	keyDir := filepath.Dir(src.Key)
	dir := filepath.Join(p.cfg.OutputDir, keyDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.err = fmt.Errorf("create %s: %w", dir, err)
		return result
	}
	base := p.names.claim(dir, filepath.Base(src.Key), p.enc.Extension())

	out, err := p.writeImage(keyDir, base, "painting", res.Image)
	if err != nil {
		result.err = err
		return result
	}

	b := img.Bounds()
	result.painting = manifest.Painting{
		Source: manifest.SourceInfo{
			Path:   src.RelPath,
			Width:  b.Dx(),
			Height: b.Dy(),
			Format: src.Format,
			Size:   src.Size,
			Hash:   hasher.ContentHash(data, hashLen),
		},
		Output:  out,
		Seed:    seed,
		Strokes: strokesFrom(res.Stats),
	}

	if d := res.Diagnostics; d != nil {
		extras, err := p.writeDiagnostics(keyDir, base, d)
		if err != nil {
			result.err = err
			return result
		}
		result.painting.Extras = extras
	}

	if p.cfg.DoneDir != "" {
		moved, err := moveDone(src, p.cfg.DoneDir)
		if err != nil {
			p.log.Warn("could not move source", "key", src.Key, "err", err)
		} else {
			result.painting.Moved = moved
		}
	}
	return result
}

func (p *Pipeline) writeDiagnostics(keyDir, base string, d *painter.Diagnostics) ([]manifest.File, error) {
	var files []manifest.File
	for _, e := range []struct {
		kind string
		img  image.Image
	}{
		{"saturated", d.Saturated},
		{"clustered", d.Clustered},
		{"clustered_randomColor", d.RandomColor},
		{"regLines", d.RegLines},
	} {
		f, err := p.writeImage(keyDir, base+"_"+e.kind, e.kind, e.img)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	var buf bytes.Buffer
	if err := segment.WriteLabels(&buf, d.Labels); err != nil {
		return nil, fmt.Errorf("encode labels %s: %w", base, err)
	}
	f, err := p.writeFile(keyDir, base+"_labels.zst", buf.Bytes())
	if err != nil {
		return nil, err
	}
	f.Kind, f.Format = "labels", "zst"
	f.Width, f.Height = d.Labels.Width, d.Labels.Height
	return append(files, f), nil
}

// writeImage encodes img in the output format and writes it as
// keyDir/name.<ext>.
func (p *Pipeline) writeImage(keyDir, name, kind string, img image.Image) (manifest.File, error) {
	data, err := p.enc.Encode(img, p.cfg.Quality)
	if err != nil {
		return manifest.File{}, fmt.Errorf("encode %s as %s: %w", name, p.enc.Format(), err)
	}
	f, err := p.writeFile(keyDir, name+"."+p.enc.Extension(), data)
	if err != nil {
		return manifest.File{}, err
	}
	f.Kind = kind
	f.Format = p.enc.Format()
	f.Width, f.Height = img.Bounds().Dx(), img.Bounds().Dy()
	return f, nil
}

func (p *Pipeline) writeFile(keyDir, fileName string, data []byte) (manifest.File, error) {
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))
	if err := os.WriteFile(filepath.Join(p.cfg.OutputDir, relPath), data, 0o644); err != nil {
		return manifest.File{}, fmt.Errorf("write %s: %w", relPath, err)
	}
	return manifest.File{
		Size: int64(len(data)),
		Hash: hasher.ContentHash(data, hashLen),
		Path: relPath,
	}, nil
}

// moveDone moves a painted source into doneDir, keeping its relative path.
func moveDone(src Source, doneDir string) (string, error) {
	target := filepath.Join(doneDir, filepath.FromSlash(src.RelPath))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	if err := os.Rename(src.AbsPath, target); err != nil {
		return "", err
	}
	return filepath.ToSlash(target), nil
}

func strokesFrom(s painter.Stats) manifest.Strokes {
	return manifest.Strokes{
		Regions:      s.Regions,
		Fitted:       s.Fitted,
		Simple:       s.SimpleStrokes,
		Complex:      s.ComplexStrokes,
		Hairlines:    s.Hairlines,
		Skipped:      s.Skipped,
		Muted:        s.Muted,
		Tracked:      s.Tracked,
		Fallbacks:    s.Fallbacks,
		StrokeWidth:  s.Sizes.Width,
		StrokeHeight: s.Sizes.Height,
		Density:      s.Sizes.Density,
		SmallMax:     s.Thresholds.SmallMax,
		LargeMin:     s.Thresholds.LargeMin,
		ElapsedMS:    s.Elapsed.Milliseconds(),
	}
}

// nameRegistry hands out output names. A name is free when no file has it
// and no other image of this run claimed it; taken names get OutSuffix
// appended until they are free.
type nameRegistry struct {
	mu    sync.Mutex
	taken map[string]bool
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{taken: make(map[string]bool)}
}

// claim returns the base name (without extension) for stem in dir.
func (n *nameRegistry) claim(dir, stem, ext string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	name := stem + OutSuffix
	for {
		path := filepath.Join(dir, name+"."+ext)
		if !n.taken[path] {
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				n.taken[path] = true
				return name
			}
		}
		name += OutSuffix
	}
}
