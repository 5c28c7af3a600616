package traj

import (
	"errors"
	"fmt"
)

// DetectionThreshold is the intensity above which a cell counts as a
// detection. Cells at or below the threshold are treated as empty space.
const DetectionThreshold = 0.1

// ErrInvalidInput is returned when a grid has a zero dimension or an
// augmentation factor is negative.
var ErrInvalidInput = errors.New("traj: invalid input")

// Coord addresses a single grid cell by (time step, spatial bin).
type Coord struct {
	Row int
	Col int
}

// Grid is a dense 2D array of detection intensities, stored row-major.
// Rows index time steps, columns index spatial bins.
type Grid struct {
	Rows  int
	Cols  int
	Cells []float64 // len = Rows * Cols
}

// NewGrid creates a zeroed grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d", ErrInvalidInput, rows, cols)
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]float64, rows*cols),
	}, nil
}

// GridFromRows creates a grid from per-row slices. All rows must have
// the same length.
func GridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty row data", ErrInvalidInput)
	}
	cols := len(rows[0])
	g, err := NewGrid(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidInput, r, len(row), cols)
		}
		copy(g.Cells[r*cols:(r+1)*cols], row)
	}
	return g, nil
}

// index converts (row, col) to the flat cell index. Callers are
// responsible for bounds.
func (g *Grid) index(row, col int) int {
	return row*g.Cols + col
}

// At returns the value at (row, col).
func (g *Grid) At(row, col int) float64 {
	return g.Cells[g.index(row, col)]
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.Cells[g.index(row, col)] = v
}

// InBounds reports whether (row, col) is a valid cell index. The upper
// bound is exclusive: valid coordinates are [0, Rows-1] x [0, Cols-1].
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Sum returns the total intensity over all cells.
func (g *Grid) Sum() float64 {
	var total float64
	for _, v := range g.Cells {
		total += v
	}
	return total
}

// Detections returns the coordinates of all cells above the detection
// threshold, scanning in row-major order.
func (g *Grid) Detections() []Coord {
	var out []Coord
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.At(r, c) > DetectionThreshold {
				out = append(out, Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

// DetectionCount returns the number of cells above the detection
// threshold.
func (g *Grid) DetectionCount() int {
	count := 0
	for _, v := range g.Cells {
		if v > DetectionThreshold {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		Rows:  g.Rows,
		Cols:  g.Cols,
		Cells: make([]float64, len(g.Cells)),
	}
	copy(out.Cells, g.Cells)
	return out
}

// Row returns a copy of the values in the given row.
func (g *Grid) Row(row int) []float64 {
	out := make([]float64, g.Cols)
	copy(out, g.Cells[row*g.Cols:(row+1)*g.Cols])
	return out
}
