package pipeline

import (
	"os"
	"path/filepath"
	"strings"
)

// OutSuffix marks painted files. Inputs carrying it are skipped so a rerun
// over the same directory does not paint its own output.
const OutSuffix = "__out"

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input root.
	RelPath string
	// Key names the painting in the manifest: relpath without extension,
	// or with it when two inputs would otherwise collide.
	Key string
	// Format is the source format (png, jpeg, gif, bmp, tiff, webp, qoi).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".qoi":  true,
}

// ScanImages returns the image sources under input. input may be a single
// file or a directory, which is walked recursively. Hidden directories,
// directories listed in skip and previously painted files are ignored.
func ScanImages(input string, skip ...string) ([]Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		root := filepath.Dir(input)
		src, ok := newSource(root, input, info)
		if !ok {
			return nil, nil
		}
		return []Source{src}, nil
	}

	skipDirs := map[string]bool{}
	for _, s := range skip {
		if s == "" {
			continue
		}
		if abs, err := filepath.Abs(s); err == nil {
			skipDirs[abs] = true
		}
	}

	var sources []Source
	keys := map[string]bool{}
	err = filepath.Walk(input, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && path != input {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && skipDirs[abs] && path != input {
				return filepath.SkipDir
			}
			return nil
		}

		src, ok := newSource(input, path, info)
		if !ok {
			return nil
		}
		if keys[src.Key] {
			src.Key = src.RelPath
		}
		keys[src.Key] = true
		sources = append(sources, src)
		return nil
	})

	return sources, err
}

func newSource(root, path string, info os.FileInfo) (Source, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return Source{}, false
	}
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return Source{}, false
	}

	// Key: relative path without extension, using forward slashes.
	key := filepath.ToSlash(strings.TrimSuffix(relPath, filepath.Ext(relPath)))
	if strings.Contains(filepath.Base(key), OutSuffix) {
		return Source{}, false
	}

	// Normalize format name.
	format := strings.TrimPrefix(ext, ".")
	if format == "jpg" {
		format = "jpeg"
	}
	if format == "tif" {
		format = "tiff"
	}

	return Source{
		AbsPath: path,
		RelPath: filepath.ToSlash(relPath),
		Key:     key,
		Format:  format,
		Size:    info.Size(),
	}, true
}
