package monitor

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/quentto/person-counting/internal/traj"
)

// viridis mirrors the colour ramp used across the project dashboards.
var viridis = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// RenderHeatmapHTML writes a self-contained interactive heatmap of g to
// w. Useful for eyeballing augmentation output without a plotting
// environment.
func RenderHeatmapHTML(g *traj.Grid, title string, w io.Writer) error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", traj.ErrInvalidInput)
	}

	xAxis := make([]string, g.Cols)
	for c := range xAxis {
		xAxis[c] = strconv.Itoa(c)
	}
	yAxis := make([]string, g.Rows)
	for r := range yAxis {
		yAxis[r] = strconv.Itoa(r)
	}

	data := make([]opts.HeatMapData, 0, g.Rows*g.Cols)
	maxVal := 0.0
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			v := g.At(r, c)
			if v > maxVal {
				maxVal = v
			}
			data = append(data, opts.HeatMapData{Value: []interface{}{c, r, v}})
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d time steps x %d spatial bins", g.Rows, g.Cols)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "spatial bin", Data: xAxis}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "time step", Data: yAxis}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxVal),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)

	hm.AddSeries("intensity", data)

	if err := hm.Render(w); err != nil {
		return fmt.Errorf("rendering heatmap: %w", err)
	}
	return nil
}
