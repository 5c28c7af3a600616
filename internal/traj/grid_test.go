package traj

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewGridValidation(t *testing.T) {
	tests := []struct {
		name string
		rows int
		cols int
		ok   bool
	}{
		{"1x1", 1, 1, true},
		{"rect", 3, 7, true},
		{"zero rows", 0, 5, false},
		{"zero cols", 5, 0, false},
		{"negative", -1, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.rows, tt.cols)
			if tt.ok {
				if err != nil {
					t.Fatalf("NewGrid: %v", err)
				}
				if len(g.Cells) != tt.rows*tt.cols {
					t.Errorf("len(Cells) = %d, want %d", len(g.Cells), tt.rows*tt.cols)
				}
				return
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestGridFromRowsRagged(t *testing.T) {
	_, err := GridFromRows([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestGridAccessors(t *testing.T) {
	g, err := GridFromRows([][]float64{
		{0.0, 0.5},
		{0.09, 0.11},
		{1.2, 0.1},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := g.At(1, 1); got != 0.11 {
		t.Errorf("At(1,1) = %v, want 0.11", got)
	}
	g.Set(0, 0, 2.0)
	if got := g.At(0, 0); got != 2.0 {
		t.Errorf("At(0,0) after Set = %v, want 2.0", got)
	}

	// Threshold is strict: 0.1 itself is not a detection.
	want := []Coord{{0, 0}, {0, 1}, {1, 1}, {2, 0}}
	if diff := cmp.Diff(want, g.Detections()); diff != "" {
		t.Errorf("Detections() mismatch (-want +got):\n%s", diff)
	}
	if got := g.DetectionCount(); got != 4 {
		t.Errorf("DetectionCount() = %d, want 4", got)
	}
}

func TestGridInBounds(t *testing.T) {
	g := &Grid{Rows: 2, Cols: 3, Cells: make([]float64, 6)}
	tests := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{1, 2, true},
		{2, 0, false}, // row == Rows is out of range
		{0, 3, false}, // col == Cols is out of range
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tt := range tests {
		if got := g.InBounds(tt.row, tt.col); got != tt.want {
			t.Errorf("InBounds(%d, %d) = %v, want %v", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestGridCloneIndependent(t *testing.T) {
	g, err := GridFromRows([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	c := g.Clone()
	c.Set(0, 0, 99)
	if g.At(0, 0) != 1 {
		t.Errorf("mutating clone changed original: %v", g.At(0, 0))
	}
}

func TestGridRowCopy(t *testing.T) {
	g, err := GridFromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	row := g.Row(1)
	if diff := cmp.Diff([]float64{4, 5, 6}, row); diff != "" {
		t.Errorf("Row(1) mismatch (-want +got):\n%s", diff)
	}
	row[0] = 99
	if g.At(1, 0) != 4 {
		t.Errorf("mutating returned row changed grid")
	}
}
