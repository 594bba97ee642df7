package manifest

// Manifest is the top-level record of an impasto paint run.
type Manifest struct {
	Version     int                 `json:"version"`
	GeneratedAt string              `json:"generated_at"`
	Style       string              `json:"style"`
	Seed        uint64              `json:"seed"`
	BasePath    string              `json:"base_path"`
	BuildInfo   *BuildInfo          `json:"build_info,omitempty"`
	Paintings   map[string]Painting `json:"paintings"`
	Stats       Stats               `json:"stats"`
}

// BuildInfo captures run-time parameters for diagnostics.
type BuildInfo struct {
	Workers int    `json:"workers"`
	Format  string `json:"format"`
}

// Painting describes one source image and what was painted from it.
type Painting struct {
	Source  SourceInfo `json:"source"`
	Output  File       `json:"output"`
	Extras  []File     `json:"extras,omitempty"` // diagnostic side outputs
	Seed    uint64     `json:"seed"`             // per-image generator seed
	Strokes Strokes    `json:"strokes"`
	Moved   string     `json:"moved_to,omitempty"` // where the source went after painting
}

// SourceInfo holds metadata about the input image.
type SourceInfo struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
}

// File is one written artifact.
type File struct {
	Kind   string `json:"kind"` // "painting", "saturated", "clustered", ...
	Format string `json:"format"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Strokes summarises the painting of one image.
type Strokes struct {
	Regions   int `json:"regions"`
	Fitted    int `json:"fitted"`
	Simple    int `json:"simple"`
	Complex   int `json:"complex"`
	Hairlines int `json:"hairlines"`
	Skipped   int `json:"skipped"`
	Muted     int `json:"muted"`
	Tracked   int `json:"tracked"`
	Fallbacks int `json:"fallbacks"`

	StrokeWidth  int   `json:"stroke_width"`
	StrokeHeight int   `json:"stroke_height"`
	Density      int   `json:"density"`
	SmallMax     int   `json:"small_max"`
	LargeMin     int   `json:"large_min"`
	ElapsedMS    int64 `json:"elapsed_ms"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalPaintings   int   `json:"total_paintings"`
	TotalStrokes     int   `json:"total_strokes"`
	TotalRegions     int   `json:"total_regions"`
	TotalExtras      int   `json:"total_extras"`
	Failed           int   `json:"failed,omitempty"` // images that could not be painted
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside the output directory.
const FileName = "impasto.manifest.json"
