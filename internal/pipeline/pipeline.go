// Package pipeline paints a batch of images: it discovers inputs, runs the
// painter on each of them in parallel, writes the results and collects a
// manifest.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/AnyUserName/impasto-cli/internal/encoder"
	"github.com/AnyUserName/impasto-cli/internal/manifest"
	"github.com/AnyUserName/impasto-cli/internal/painter"
)

// Config holds all parameters for a paint run.
type Config struct {
	Input     string // image file or directory
	OutputDir string
	DoneDir   string // processed inputs are moved here when set
	Style     string
	Options   painter.Options
	Seed      uint64 // run seed, mixed with each image key
	Format    string // output format, "" = png
	Quality   int    // lossy output quality 1-100
	Workers   int    // images painted at once
	Logger    *slog.Logger
}

// Pipeline orchestrates a paint run.
type Pipeline struct {
	cfg     Config
	log     *slog.Logger
	enc     encoder.Encoder
	painter *painter.Painter
	names   *nameRegistry
}

// New creates a configured pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = painter.NopLogger()
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	enc, err := encoder.NewRegistry().Resolve(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:     cfg,
		log:     cfg.Logger,
		enc:     enc,
		painter: painter.New(nil, cfg.Logger),
		names:   newNameRegistry(),
	}, nil
}

// Run paints every discovered image and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	p.log.Debug("output", "format", p.enc.Format(), "dir", p.cfg.OutputDir)

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.Input, p.cfg.OutputDir, p.cfg.DoneDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.Input)
	}
	p.log.Info("found images", "count", len(sources))

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// Step 2: Paint images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.log.Debug("painting", "key", s.Key)
			results[idx] = p.processImage(s)
			if r := results[idx]; r.err == nil {
				p.log.Debug("done", "key", s.Key,
					"simple", r.painting.Strokes.Simple, "complex", r.painting.Strokes.Complex)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Style, p.cfg.Seed)
	m.BasePath = "./"

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Paintings[r.key] = r.painting
	}

	// Report errors but don't fail the entire run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			p.log.Error("paint failed", "err", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to paint", len(errs))
		}
		p.log.Warn("some images had errors", "failed", len(errs), "total", len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers: p.cfg.Workers,
		Format:  p.enc.Format(),
	}
	m.Stats.Failed = len(errs)
	m.ComputeStats()
	return m, nil
}

// ManifestPath is where Run's manifest belongs.
func (p *Pipeline) ManifestPath() string {
	return filepath.Join(p.cfg.OutputDir, manifest.FileName)
}
