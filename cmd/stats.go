package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/impasto-cli/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a paint run",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	m, _, err := manifest.Read(args[0])
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Style:            %s\n", m.Style)
	fmt.Printf("  Seed:             %d\n", m.Seed)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Format:           %s\n", m.BuildInfo.Format)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total paintings:  %d\n", s.TotalPaintings)
	if s.Failed > 0 {
		fmt.Printf("  Failed:           %d\n", s.Failed)
	}
	fmt.Printf("  Total regions:    %d\n", s.TotalRegions)
	fmt.Printf("  Total strokes:    %d\n", s.TotalStrokes)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Println()

	// Stroke breakdown.
	var t manifest.Strokes
	for _, p := range m.Paintings {
		t.Simple += p.Strokes.Simple
		t.Complex += p.Strokes.Complex
		t.Hairlines += p.Strokes.Hairlines
		t.Skipped += p.Strokes.Skipped
		t.Muted += p.Strokes.Muted
		t.Tracked += p.Strokes.Tracked
		t.Fallbacks += p.Strokes.Fallbacks
		t.Regions += p.Strokes.Regions
		t.Fitted += p.Strokes.Fitted
	}
	fmt.Println("  Stroke breakdown:")
	fmt.Printf("    %-10s %8d\n", "simple", t.Simple)
	fmt.Printf("    %-10s %8d\n", "complex", t.Complex)
	fmt.Printf("    %-10s %8d\n", "hairline", t.Hairlines)
	fmt.Printf("    %-10s %8d\n", "skipped", t.Skipped)
	fmt.Printf("    %-10s %8d\n", "muted", t.Muted)
	if t.Simple > 0 {
		fmt.Printf("  Marker tracking:  %d tracked, %d fallback\n", t.Tracked, t.Fallbacks)
	}
	fmt.Println()

	// Per-format breakdown of every written file.
	type formatStat struct {
		count int
		bytes int64
	}
	formats := map[string]formatStat{}
	add := func(f manifest.File) {
		fs := formats[f.Format]
		fs.count++
		fs.bytes += f.Size
		formats[f.Format] = fs
	}
	for _, p := range m.Paintings {
		add(p.Output)
		for _, e := range p.Extras {
			add(e)
		}
	}
	var names []string
	for f := range formats {
		names = append(names, f)
	}
	sort.Strings(names)
	fmt.Println("  Format breakdown:")
	for _, f := range names {
		fs := formats[f]
		fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
	}

	// Warnings.
	var warnings []string
	for key, p := range m.Paintings {
		if p.Strokes.Simple+p.Strokes.Complex == 0 {
			warnings = append(warnings, fmt.Sprintf("painting %q has no strokes", key))
		}
		if p.Strokes.Regions > 0 && p.Strokes.Fitted == 0 {
			warnings = append(warnings, fmt.Sprintf("painting %q: no region could be fitted", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
