package dataset

import (
	"fmt"

	"github.com/quentto/person-counting/internal/traj"
)

// TrimColumns removes leading and trailing spatial columns, which are
// sparse in door-mounted recordings. It returns a new grid.
func TrimColumns(g *traj.Grid, leading, trailing int) (*traj.Grid, error) {
	if leading < 0 || trailing < 0 {
		return nil, fmt.Errorf("%w: negative trim counts %d/%d", traj.ErrInvalidInput, leading, trailing)
	}
	keep := g.Cols - leading - trailing
	if keep < 1 {
		return nil, fmt.Errorf("%w: trimming %d+%d columns from %d leaves nothing",
			traj.ErrInvalidInput, leading, trailing, g.Cols)
	}
	out, err := traj.NewGrid(g.Rows, keep)
	if err != nil {
		return nil, err
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < keep; c++ {
			out.Set(r, c, g.At(r, c+leading))
		}
	}
	return out, nil
}

// SubsampleRows keeps every factor-th row starting with row 0, matching
// the subsampling used to stretch training data over longer videos. A
// factor below 2 returns the grid unchanged.
func SubsampleRows(g *traj.Grid, factor int) *traj.Grid {
	if factor < 2 {
		return g
	}
	rows := g.Rows / factor
	if g.Rows%factor != 0 {
		rows++
	}
	out := &traj.Grid{Rows: rows, Cols: g.Cols, Cells: make([]float64, 0, rows*g.Cols)}
	for r := 0; r < g.Rows; r += factor {
		out.Cells = append(out.Cells, g.Cells[r*g.Cols:(r+1)*g.Cols]...)
	}
	return out
}

// FilteredShape computes the grid shape produced by SubsampleRows and
// TrimColumns for the given raw shape.
func FilteredShape(rows, cols, rowFactor, filterCols int) (lengthT, lengthY int) {
	lengthT = rows
	if rowFactor > 1 {
		lengthT = rows / rowFactor
		if rows%rowFactor != 0 {
			lengthT++
		}
	}
	lengthY = cols - 2*filterCols
	return lengthT, lengthY
}
