// Package style holds named painting presets. A style fills in every
// painting option; command-line flags then override single fields.
package style

import (
	"sort"

	"github.com/AnyUserName/impasto-cli/internal/brush"
	"github.com/AnyUserName/impasto-cli/internal/painter"
	"github.com/AnyUserName/impasto-cli/internal/segment"
)

// Default is the style used when none is requested.
const Default = "classic"

// Style defines the look of a painting.
type Style struct {
	Name        string
	Background  painter.Background
	Saturation  float64
	RandSizes   int  // percent, 100 = uniform stroke size
	LongStrokes bool // taller, narrower strokes
	Directed    bool // strokes follow region orientation
	Ground      bool
	Highlight   bool
	Colorify    int
	ColDiff     int
	Arc         brush.ArcStyle
	Segment     segment.Params
}

// Built-in styles.
var styles = map[string]Style{
	"classic": {
		Name:       "classic",
		Background: painter.BackgroundCluster,
		Saturation: 2.5,
		RandSizes:  100,
		ColDiff:    500,
		Arc:        brush.ArcLog,
		Segment:    segment.Params{Scale: 50, Sigma: 4.5, MinSize: 10},
	},
	"expressive": {
		Name:       "expressive",
		Background: painter.BackgroundCluster,
		Saturation: 2.8,
		RandSizes:  30,
		Directed:   true,
		Ground:     true,
		Highlight:  true,
		Colorify:   20,
		ColDiff:    500,
		Arc:        brush.ArcLog,
		Segment:    segment.Params{Scale: 50, Sigma: 4.5, MinSize: 10},
	},
	"long": {
		Name:        "long",
		Background:  painter.BackgroundBlur,
		Saturation:  2.5,
		RandSizes:   100,
		LongStrokes: true,
		Directed:    true,
		ColDiff:     500,
		Arc:         brush.ArcCos,
		Segment:     segment.Params{Scale: 60, Sigma: 4.5, MinSize: 15},
	},
	"fine": {
		Name:       "fine",
		Background: painter.BackgroundCluster,
		Saturation: 2.0,
		RandSizes:  60,
		ColDiff:    300,
		Arc:        brush.ArcLog,
		Segment:    segment.Params{Scale: 25, Sigma: 2.5, MinSize: 5},
	},
}

// Get returns a style by name. Falls back to classic if unknown.
func Get(name string) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	s := styles[Default]
	s.Name = name // preserve requested name
	return s
}

// Known reports whether name is a built-in style.
func Known(name string) bool {
	_, ok := styles[name]
	return ok
}

// Names lists the built-in styles alphabetically.
func Names() []string {
	names := make([]string, 0, len(styles))
	for n := range styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Options returns painter options for s. Stroke sizes and region
// thresholds stay automatic.
func (s Style) Options() painter.Options {
	o := painter.DefaultOptions()
	o.Background = s.Background
	o.Saturation = s.Saturation
	o.RandSizes = s.RandSizes
	o.LongStrokes = s.LongStrokes
	o.Directed = s.Directed
	o.Ground = s.Ground
	o.Highlight = s.Highlight
	o.Colorify = s.Colorify
	o.ColDiff = s.ColDiff
	o.Arc = s.Arc
	o.Segment = s.Segment
	return o
}
