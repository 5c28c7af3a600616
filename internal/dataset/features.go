package dataset

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quentto/person-counting/internal/traj"
)

// LoadFeatures reads one sample CSV into a grid. Some exports carry a
// leading index column (row number as the first field); it is detected
// per file and stripped.
func LoadFeatures(path string) (*traj.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feature file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing feature file %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("feature file %s is empty", path)
	}

	rows := make([][]float64, len(records))
	for i, rec := range records {
		rows[i] = make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("feature file %s row %d col %d: %w", path, i, j, err)
			}
			rows[i][j] = v
		}
	}

	if hasIndexColumn(rows) {
		for i := range rows {
			rows[i] = rows[i][1:]
		}
	}

	g, err := traj.GridFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("feature file %s: %w", path, err)
	}
	return g, nil
}

// hasIndexColumn reports whether the first column holds the row number
// for every row. Requires at least two columns so stripping never
// empties the grid.
func hasIndexColumn(rows [][]float64) bool {
	if len(rows) < 2 || len(rows[0]) < 2 {
		return false
	}
	for i, row := range rows {
		if row[0] != float64(i) {
			return false
		}
	}
	return true
}

// FilteredLengths walks topPath for the first sample CSV and returns
// the grid shape after row subsampling and column trimming. All sample
// files in one dataset share a shape, so one probe is enough.
func FilteredLengths(topPath string, rowFactor, filterCols int) (lengthT, lengthY int, err error) {
	var probe *traj.Grid
	walkErr := filepath.WalkDir(topPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".csv") || strings.Contains(filepath.Base(path), "label") {
			return nil
		}
		g, err := LoadFeatures(path)
		if err != nil {
			return err
		}
		probe = g
		return fs.SkipAll
	})
	if walkErr != nil {
		return 0, 0, fmt.Errorf("probing dataset shape: %w", walkErr)
	}
	if probe == nil {
		return 0, 0, fmt.Errorf("no sample CSV files under %s", topPath)
	}
	lengthT, lengthY = FilteredShape(probe.Rows, probe.Cols, rowFactor, filterCols)
	return lengthT, lengthY, nil
}
