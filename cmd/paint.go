package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/impasto-cli/internal/brush"
	"github.com/AnyUserName/impasto-cli/internal/encoder"
	"github.com/AnyUserName/impasto-cli/internal/manifest"
	"github.com/AnyUserName/impasto-cli/internal/painter"
	"github.com/AnyUserName/impasto-cli/internal/pipeline"
	"github.com/AnyUserName/impasto-cli/internal/planner"
	"github.com/AnyUserName/impasto-cli/internal/style"
)

var (
	paintOutDir     string
	paintDoneDir    string
	paintStyle      string
	paintFormat     string
	paintQuality    int
	paintWorkers    int
	paintSeed       uint64
	paintBackground string
	paintSaturation float64
	paintWidth      int
	paintHeight     int
	paintDensity    int
	paintRandSizes  int
	paintLong       bool
	paintDirected   bool
	paintSegBound   int
	paintSmallMax   int
	paintLargeMin   int
	paintColDiff    int
	paintGround     bool
	paintNoHair     bool
	paintNoMargins  bool
	paintHighlight  bool
	paintColorify   int
	paintArc        string
	paintOtherFiles bool
	paintFelzScale  float64
	paintFelzSigma  float64
	paintFelzMin    int
)

var paintCmd = &cobra.Command{
	Use:   "paint <input>",
	Short: "Paint images and write a manifest",
	Long: `Paints an image file, or every image under a directory (png, jpg, jpeg,
gif, bmp, tiff, webp, qoi). Hidden directories and files whose name
contains "__out" are skipped.

Paintings are written as <name>__out.<ext>; "__out" is appended again
until the name is free. The style picks defaults for every option and
explicit flags override them.`,
	Args: cobra.ExactArgs(1),
	RunE: runPaint,
}

func init() {
	f := paintCmd.Flags()
	f.StringVarP(&paintOutDir, "out", "o", "./impasto_out", "output directory")
	f.StringVar(&paintDoneDir, "done-dir", "", "move painted inputs into this directory")
	f.StringVarP(&paintStyle, "style", "s", style.Default, "painting style ("+strings.Join(style.Names(), ", ")+")")
	f.StringVarP(&paintFormat, "format", "f", "png", "output format ("+strings.Join(encoder.NewRegistry().Available(), ", ")+")")
	f.IntVarP(&paintQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = encoder default)")
	f.IntVarP(&paintWorkers, "workers", "w", 0, "images painted at once (0 = NumCPU)")
	f.Uint64Var(&paintSeed, "seed", 1, "random seed")

	f.StringVar(&paintBackground, "background", "", "canvas background: blur, cluster or none")
	f.Float64Var(&paintSaturation, "saturation", 0, "saturation factor applied before segmentation")
	f.IntVar(&paintWidth, "width", planner.Auto, "stroke width in pixels (-1 = auto)")
	f.IntVar(&paintHeight, "height", planner.Auto, "stroke height in pixels (-1 = auto)")
	f.IntVar(&paintDensity, "density", planner.Auto, "grid step between strokes (-1 = auto)")
	f.IntVar(&paintRandSizes, "rand-sizes", 0, "lower bound in percent for random per-region stroke scaling (100 = off)")
	f.BoolVar(&paintLong, "long-strokes", false, "taller, narrower strokes")
	f.BoolVar(&paintDirected, "directed", false, "orient strokes along each region")
	f.IntVar(&paintSegBound, "seg-bound", planner.Auto, "region size separating simple from complex strokes (-1 = auto)")
	f.IntVar(&paintSmallMax, "small-max", planner.Auto, "largest region painted with a single stroke (-1 = seg-bound)")
	f.IntVar(&paintLargeMin, "large-min", planner.Auto, "regions above this get a grid of strokes (-1 = seg-bound)")
	f.IntVar(&paintColDiff, "col-diff", 0, "minimum neighbour contrast for single strokes (0-3060)")
	f.BoolVar(&paintGround, "ground", false, "paint regions touching the bottom with flat, denser strokes")
	f.BoolVar(&paintNoHair, "no-hairlines", false, "do not fill regions too thin for a stroke")
	f.BoolVar(&paintNoMargins, "no-margins", false, "do not whiten stroke edges")
	f.BoolVar(&paintHighlight, "highlight", false, "push every fifth stroke towards vivid colors")
	f.IntVar(&paintColorify, "colorify", 0, "random per-stroke color shift (0-255)")
	f.StringVar(&paintArc, "arc", "", "stroke silhouette: log or cos")
	f.BoolVar(&paintOtherFiles, "otherfiles", false, "also write saturated, clustered, region-line images and the label grid")
	f.Float64Var(&paintFelzScale, "felz-scale", 0, "segmentation scale")
	f.Float64Var(&paintFelzSigma, "felz-sigma", 0, "segmentation pre-smoothing sigma")
	f.IntVar(&paintFelzMin, "felz-minsize", 0, "smallest segmentation region")
	rootCmd.AddCommand(paintCmd)
}

func runPaint(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(paintOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	var absDone string
	if paintDoneDir != "" {
		if absDone, err = filepath.Abs(paintDoneDir); err != nil {
			return fmt.Errorf("resolve done dir: %w", err)
		}
	}

	st := style.Get(paintStyle)
	if !style.Known(paintStyle) {
		fmt.Fprintf(os.Stderr, "unknown style %q, using %s defaults\n", paintStyle, style.Default)
	}
	opts, err := paintOptions(cmd, st.Options())
	if err != nil {
		return err
	}

	log := newLogger()
	log.Debug("paint", "input", absInput, "output", absOutput, "style", st.Name, "seed", paintSeed)

	p, err := pipeline.New(pipeline.Config{
		Input:     absInput,
		OutputDir: absOutput,
		DoneDir:   absDone,
		Style:     st.Name,
		Options:   opts,
		Seed:      paintSeed,
		Format:    paintFormat,
		Quality:   paintQuality,
		Workers:   paintWorkers,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := manifest.WriteJSON(m, p.ManifestPath()); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printPaintReport(m, time.Since(start))
	return nil
}

// paintOptions applies the flags the user set on top of the style's options.
func paintOptions(cmd *cobra.Command, o painter.Options) (painter.Options, error) {
	set := cmd.Flags().Changed

	if set("background") {
		bg, err := painter.ParseBackground(paintBackground)
		if err != nil {
			return o, err
		}
		o.Background = bg
	}
	if set("arc") {
		arc, err := brush.ParseArc(paintArc)
		if err != nil {
			return o, fmt.Errorf("%w: %q (want log or cos)", painter.ErrInvalidArc, paintArc)
		}
		o.Arc = arc
	}
	if set("saturation") {
		o.Saturation = paintSaturation
	}
	if set("width") {
		o.Width = paintWidth
	}
	if set("height") {
		o.Height = paintHeight
	}
	if set("density") {
		o.Density = paintDensity
	}
	if set("rand-sizes") {
		o.RandSizes = paintRandSizes
	}
	if set("long-strokes") {
		o.LongStrokes = paintLong
	}
	if set("directed") {
		o.Directed = paintDirected
	}
	if set("seg-bound") {
		o.SegBound = paintSegBound
	}
	if set("small-max") {
		o.SmallMax = paintSmallMax
	}
	if set("large-min") {
		o.LargeMin = paintLargeMin
	}
	if set("col-diff") {
		o.ColDiff = paintColDiff
	}
	if set("ground") {
		o.Ground = paintGround
	}
	if set("highlight") {
		o.Highlight = paintHighlight
	}
	if set("colorify") {
		o.Colorify = paintColorify
	}
	if set("felz-scale") {
		o.Segment.Scale = paintFelzScale
	}
	if set("felz-sigma") {
		o.Segment.Sigma = paintFelzSigma
	}
	if set("felz-minsize") {
		o.Segment.MinSize = paintFelzMin
	}
	o.NoHairlines = paintNoHair
	o.NoMargins = paintNoMargins
	o.Diagnostics = paintOtherFiles

	return o, o.Validate()
}

func printPaintReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  impasto paint complete")
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Paintings:   %d\n", s.TotalPaintings)
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", s.Failed)
	}
	fmt.Printf("  Regions:     %d\n", s.TotalRegions)
	fmt.Printf("  Strokes:     %d\n", s.TotalStrokes)
	if s.TotalExtras > 0 {
		fmt.Printf("  Extras:      %d\n", s.TotalExtras)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d  (format %s)\n", m.BuildInfo.Workers, m.BuildInfo.Format)
	}
	fmt.Println()

	// Top 10 busiest paintings.
	if len(m.Paintings) > 0 {
		type item struct {
			key     string
			strokes int
			elapsed int64
		}
		var items []item
		for key, p := range m.Paintings {
			items = append(items, item{key, p.Strokes.Simple + p.Strokes.Complex, p.Strokes.ElapsedMS})
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].strokes != items[j].strokes {
				return items[i].strokes > items[j].strokes
			}
			return items[i].key < items[j].key
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d by strokes:\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %7d strokes  %6d ms\n", truncKey(it.key, 40), it.strokes, it.elapsed)
		}
		fmt.Println()
	}

	fmt.Printf("  Manifest:    %s\n", manifest.FileName)
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
