package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// New creates an empty manifest with defaults.
func New(styleName string, seed uint64) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Style:       styleName,
		Seed:        seed,
		BasePath:    "./",
		Paintings:   make(map[string]Painting),
	}
}

// ComputeStats recalculates aggregate statistics from paintings. The
// failure count is kept.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalPaintings = len(m.Paintings)
	for _, p := range m.Paintings {
		s.TotalInputBytes += p.Source.Size
		s.TotalOutputBytes += p.Output.Size
		s.TotalStrokes += p.Strokes.Simple + p.Strokes.Complex
		s.TotalRegions += p.Strokes.Regions
		s.TotalExtras += len(p.Extras)
		for _, e := range p.Extras {
			s.TotalOutputBytes += e.Size
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read loads a manifest from path. A directory is searched for FileName.
// It returns the manifest and the directory its paths are relative to.
func Read(path string) (*Manifest, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", fmt.Errorf("parse manifest: %w", err)
	}
	if m.Paintings == nil {
		m.Paintings = make(map[string]Painting)
	}
	return &m, filepath.Join(filepath.Dir(path), m.BasePath), nil
}
