package trace

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/timescale/internal/timescale"
)

// Plot draws the current and target time scale over the run.
func Plot(samples []Sample, width, height int) string {
	if len(samples) == 0 {
		return ""
	}
	current := make([]float64, len(samples))
	target := make([]float64, len(samples))
	for i, s := range samples {
		current[i] = s.TimeScale
		target[i] = s.Target
	}
	return asciigraph.PlotMany([][]float64{target, current},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(timescale.MinTimeScale),
		asciigraph.UpperBound(timescale.MaxTimeScale),
		asciigraph.SeriesColors(asciigraph.DarkGray, asciigraph.Cyan),
		asciigraph.Caption("time scale (cyan) vs target"))
}
