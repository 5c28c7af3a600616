package dataset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quentto/person-counting/internal/traj"
)

func TestTrimColumns(t *testing.T) {
	g, err := traj.GridFromRows([][]float64{
		{1, 2, 3, 4, 5},
		{6, 7, 8, 9, 10},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := TrimColumns(g, 1, 2)
	if err != nil {
		t.Fatalf("TrimColumns: %v", err)
	}
	want, _ := traj.GridFromRows([][]float64{
		{2, 3},
		{7, 8},
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trimmed grid mismatch (-want +got):\n%s", diff)
	}

	// Original grid untouched.
	if g.Cols != 5 {
		t.Errorf("input grid mutated: cols = %d", g.Cols)
	}
}

func TestTrimColumnsTooMany(t *testing.T) {
	g, _ := traj.GridFromRows([][]float64{{1, 2, 3}})
	if _, err := TrimColumns(g, 2, 1); !errors.Is(err, traj.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
	if _, err := TrimColumns(g, -1, 0); !errors.Is(err, traj.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestSubsampleRows(t *testing.T) {
	g, err := traj.GridFromRows([][]float64{
		{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := SubsampleRows(g, 2)
	want, _ := traj.GridFromRows([][]float64{
		{0, 0}, {2, 2}, {4, 4},
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subsampled grid mismatch (-want +got):\n%s", diff)
	}

	if got := SubsampleRows(g, 1); got != g {
		t.Errorf("factor 1 must return the input grid unchanged")
	}
}

func TestFilteredShape(t *testing.T) {
	tests := []struct {
		name                 string
		rows, cols           int
		rowFactor, trimCols  int
		wantT, wantY         int
	}{
		{"no filtering", 100, 40, 1, 0, 100, 40},
		{"even division", 100, 40, 4, 5, 25, 30},
		{"remainder rounds up", 101, 40, 4, 5, 26, 30},
		{"factor two", 5, 6, 2, 1, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, gotY := FilteredShape(tt.rows, tt.cols, tt.rowFactor, tt.trimCols)
			if gotT != tt.wantT || gotY != tt.wantY {
				t.Errorf("FilteredShape = (%d, %d), want (%d, %d)", gotT, gotY, tt.wantT, tt.wantY)
			}
		})
	}
}

func TestSubsampleMatchesFilteredShape(t *testing.T) {
	for rows := 1; rows <= 12; rows++ {
		for factor := 1; factor <= 5; factor++ {
			g, err := traj.NewGrid(rows, 3)
			if err != nil {
				t.Fatal(err)
			}
			got := SubsampleRows(g, factor)
			wantT, _ := FilteredShape(rows, 3, factor, 0)
			if got.Rows != wantT {
				t.Errorf("rows=%d factor=%d: subsampled to %d rows, FilteredShape says %d",
					rows, factor, got.Rows, wantT)
			}
		}
	}
}
