// Package monitor renders trajectory grids for visual inspection:
// static PNG heatmaps for quick before/after augmentation comparisons
// and a self-contained HTML report for interactive browsing.
package monitor

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/quentto/person-counting/internal/traj"
)

// gridXYZ adapts a trajectory grid to the plotter.GridXYZ interface.
// Plot rows run bottom-up, so time step 0 sits at the bottom edge.
type gridXYZ struct {
	g *traj.Grid
}

func (d gridXYZ) Dims() (c, r int)   { return d.g.Cols, d.g.Rows }
func (d gridXYZ) Z(c, r int) float64 { return d.g.At(r, c) }
func (d gridXYZ) X(c int) float64    { return float64(c) }
func (d gridXYZ) Y(r int) float64    { return float64(r) }

// SaveHeatmapPNG renders g as a heatmap PNG at path, creating parent
// directories as needed.
func SaveHeatmapPNG(g *traj.Grid, title, path string) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", traj.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Spatial bin"
	p.Y.Label.Text = "Time step"

	hm := plotter.NewHeatMap(gridXYZ{g: g}, palette.Heat(12, 1))
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving heatmap %s: %w", path, err)
	}
	return nil
}

// SaveBeforeAfter writes heatmaps of a grid before and after
// augmentation into dir, named <stem>_before.png and <stem>_after.png.
func SaveBeforeAfter(before, after *traj.Grid, dir, stem string) (beforePath, afterPath string, err error) {
	beforePath = filepath.Join(dir, stem+"_before.png")
	afterPath = filepath.Join(dir, stem+"_after.png")

	if err := SaveHeatmapPNG(before, stem+" (original)", beforePath); err != nil {
		return "", "", err
	}
	if err := SaveHeatmapPNG(after, stem+" (augmented)", afterPath); err != nil {
		return "", "", err
	}
	return beforePath, afterPath, nil
}
