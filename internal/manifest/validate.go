package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/impasto-cli/internal/hasher"
)

// Validate checks m for internal consistency and verifies that every file
// it references exists under baseDir with the recorded size and hash.
// It returns one message per problem.
func Validate(m *Manifest, baseDir string) []string {
	var errs []string

	if m.Version != SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]string{}
	checkFile := func(key, label string, f File) {
		if f.Format == "" {
			errs = append(errs, fmt.Sprintf("painting %q %s: empty format", key, label))
		}
		if f.Hash == "" {
			errs = append(errs, fmt.Sprintf("painting %q %s: missing hash", key, label))
		}
		if f.Path == "" {
			errs = append(errs, fmt.Sprintf("painting %q %s: missing path", key, label))
			return
		}
		if other, dup := seenPaths[f.Path]; dup {
			errs = append(errs, fmt.Sprintf("painting %q %s: path %q already used by %q", key, label, f.Path, other))
		}
		seenPaths[f.Path] = key

		fullPath := filepath.Join(baseDir, filepath.FromSlash(f.Path))
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("painting %q %s: file not found: %s", key, label, f.Path))
			return
		}
		if info.Size() != f.Size {
			errs = append(errs, fmt.Sprintf("painting %q %s: size mismatch: manifest=%d, disk=%d",
				key, label, f.Size, info.Size()))
		}
		if f.Hash == "" {
			return
		}
		h, err := hashFile(fullPath, len(f.Hash))
		if err != nil {
			errs = append(errs, fmt.Sprintf("painting %q %s: read %s: %v", key, label, f.Path, err))
		} else if h != f.Hash {
			errs = append(errs, fmt.Sprintf("painting %q %s: hash mismatch: manifest=%s, disk=%s",
				key, label, f.Hash, h))
		}
	}

	for key, p := range m.Paintings {
		if p.Source.Width <= 0 || p.Source.Height <= 0 {
			errs = append(errs, fmt.Sprintf("painting %q: invalid source dimensions %dx%d",
				key, p.Source.Width, p.Source.Height))
		}
		if p.Output.Width != p.Source.Width || p.Output.Height != p.Source.Height {
			errs = append(errs, fmt.Sprintf("painting %q: output is %dx%d, source is %dx%d",
				key, p.Output.Width, p.Output.Height, p.Source.Width, p.Source.Height))
		}
		checkFile(key, "output", p.Output)
		for i, e := range p.Extras {
			checkFile(key, fmt.Sprintf("extra[%d]", i), e)
		}
	}

	// Verify stats consistency.
	strokes, extras := 0, 0
	for _, p := range m.Paintings {
		strokes += p.Strokes.Simple + p.Strokes.Complex
		extras += len(p.Extras)
	}
	if m.Stats.TotalPaintings != len(m.Paintings) {
		errs = append(errs, fmt.Sprintf("stats.total_paintings mismatch: %d != %d", m.Stats.TotalPaintings, len(m.Paintings)))
	}
	if m.Stats.TotalStrokes != strokes {
		errs = append(errs, fmt.Sprintf("stats.total_strokes mismatch: %d != %d", m.Stats.TotalStrokes, strokes))
	}
	if m.Stats.TotalExtras != extras {
		errs = append(errs, fmt.Sprintf("stats.total_extras mismatch: %d != %d", m.Stats.TotalExtras, extras))
	}
	return errs
}

func hashFile(path string, hexLen int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return hasher.ContentHashReader(f, hexLen)
}
