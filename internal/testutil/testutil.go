// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code
// duplication across test files and improve test maintainability.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quentto/person-counting/internal/traj"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// MustGrid builds a grid from row data, failing the test on error.
func MustGrid(t *testing.T, rows [][]float64) *traj.Grid {
	t.Helper()
	g, err := traj.GridFromRows(rows)
	if err != nil {
		t.Fatalf("building grid fixture: %v", err)
	}
	return g
}

// WriteSampleCSV writes a feature CSV fixture at path, creating parent
// directories as needed.
func WriteSampleCSV(t *testing.T, path string, rows [][]float64) {
	t.Helper()
	var b strings.Builder
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = fmt.Sprintf("%g", v)
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("writing csv fixture: %v", err)
	}
}

// WriteLabelCSV writes a label CSV fixture at path with the given raw
// content.
func WriteLabelCSV(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing label fixture: %v", err)
	}
}

// NewTestGridWithDetections builds a rows x cols grid with detections
// at the given coordinates, all set to intensity 1.0.
func NewTestGridWithDetections(t *testing.T, rows, cols int, detections []traj.Coord) *traj.Grid {
	t.Helper()
	g, err := traj.NewGrid(rows, cols)
	if err != nil {
		t.Fatalf("building grid fixture: %v", err)
	}
	for _, c := range detections {
		g.Set(c.Row, c.Col, 1.0)
	}
	return g
}
