// Package plotting renders per-series PNG plots annotated with each series'
// most active interval.
package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pulsedb/pulsecluster"
)

// SeriesPNG renders x as a line plot and saves it to path. When iv is
// non-nil the interval [iv.L, iv.R) is drawn as a shaded span and the title
// carries the activity score.
func SeriesPNG(path, id string, x []float64, iv *pulsecluster.ActivityInterval) error {
	if len(x) == 0 {
		return fmt.Errorf("plotting: series %q is empty", id)
	}

	p := plot.New()
	p.Title.Text = id
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "z-scored value"

	if iv != nil {
		p.Title.Text = fmt.Sprintf("%s | max-activity [%d,%d) score=%.3f", id, iv.L, iv.R, iv.Score)

		yMin, yMax := floats.Min(x), floats.Max(x)
		if yMin == yMax {
			yMin, yMax = yMin-1, yMax+1
		}
		span, err := plotter.NewPolygon(plotter.XYs{
			{X: float64(iv.L), Y: yMin},
			{X: float64(iv.R), Y: yMin},
			{X: float64(iv.R), Y: yMax},
			{X: float64(iv.L), Y: yMax},
		})
		if err != nil {
			return fmt.Errorf("plotting: series %q span: %w", id, err)
		}
		span.Color = color.NRGBA{R: 255, G: 165, B: 0, A: 50}
		span.LineStyle.Width = 0
		p.Add(span)
	}

	pts := make(plotter.XYs, len(x))
	for i, v := range x {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plotting: series %q line: %w", id, err)
	}
	p.Add(line)

	return p.Save(8*vg.Inch, 3*vg.Inch, path)
}

// RenderDir renders up to limit series (sorted by id; limit <= 0 means all)
// as PNG files named <id>.png under dir, using workers goroutines. Returns
// the number of plots written.
func RenderDir(dir string, series map[string][]float64, activity map[string]pulsecluster.ActivityInterval, limit, workers int) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("plotting: creating %s: %w", dir, err)
	}

	ids := make([]string, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			var iv *pulsecluster.ActivityInterval
			if entry, ok := activity[id]; ok {
				iv = &entry
			}
			return SeriesPNG(filepath.Join(dir, id+".png"), id, series[id], iv)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(ids), nil
}
