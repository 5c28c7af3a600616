// Package scale provides min-max and standard scaling for feature grids
// and labels. Scalers are fitted once over the training files and then
// applied to every split, so validation and test data are normalised
// with training statistics only.
package scale

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/quentto/person-counting/internal/traj"
)

// ErrNoData is returned when a scaler is requested before any values
// were observed.
var ErrNoData = errors.New("scale: no values observed")

// MinMax maps values from [Min, Max] to [0, 1].
type MinMax struct {
	Min float64
	Max float64
}

// Transform maps v into [0, 1]. A degenerate range maps everything to 0.
func (m MinMax) Transform(v float64) float64 {
	span := m.Max - m.Min
	if span == 0 {
		return 0
	}
	return (v - m.Min) / span
}

// Inverse maps a scaled value back to the original range.
func (m MinMax) Inverse(v float64) float64 {
	return v*(m.Max-m.Min) + m.Min
}

// TransformGrid scales every cell of g in place.
func (m MinMax) TransformGrid(g *traj.Grid) {
	for i, v := range g.Cells {
		g.Cells[i] = m.Transform(v)
	}
}

// Standard centres values on Mean and divides by Std.
type Standard struct {
	Mean float64
	Std  float64
}

// Transform standardises v. A zero standard deviation only centres.
func (s Standard) Transform(v float64) float64 {
	if s.Std == 0 {
		return v - s.Mean
	}
	return (v - s.Mean) / s.Std
}

// Inverse maps a standardised value back to the original scale.
func (s Standard) Inverse(v float64) float64 {
	if s.Std == 0 {
		return v + s.Mean
	}
	return v*s.Std + s.Mean
}

// TransformGrid standardises every cell of g in place.
func (s Standard) TransformGrid(g *traj.Grid) {
	for i, v := range g.Cells {
		g.Cells[i] = s.Transform(v)
	}
}

// MinMaxFitter accumulates the observed value range incrementally, so
// fitting over a large dataset does not require holding it in memory.
type MinMaxFitter struct {
	min float64
	max float64
	n   int
}

// Observe folds values into the running range.
func (f *MinMaxFitter) Observe(values ...float64) {
	for _, v := range values {
		if f.n == 0 {
			f.min, f.max = v, v
		} else {
			f.min = math.Min(f.min, v)
			f.max = math.Max(f.max, v)
		}
		f.n++
	}
}

// ObserveGrid folds all cells of g into the running range.
func (f *MinMaxFitter) ObserveGrid(g *traj.Grid) {
	f.Observe(g.Cells...)
}

// Scaler returns the fitted MinMax scaler.
func (f *MinMaxFitter) Scaler() (MinMax, error) {
	if f.n == 0 {
		return MinMax{}, fmt.Errorf("%w: min-max fit", ErrNoData)
	}
	return MinMax{Min: f.min, Max: f.max}, nil
}

// StandardFitter collects observed values for moment estimation.
type StandardFitter struct {
	values []float64
}

// Observe appends values to the fit population.
func (f *StandardFitter) Observe(values ...float64) {
	f.values = append(f.values, values...)
}

// ObserveGrid appends all cells of g to the fit population.
func (f *StandardFitter) ObserveGrid(g *traj.Grid) {
	f.Observe(g.Cells...)
}

// Scaler returns the fitted Standard scaler.
func (f *StandardFitter) Scaler() (Standard, error) {
	if len(f.values) == 0 {
		return Standard{}, fmt.Errorf("%w: standard fit", ErrNoData)
	}
	mean, std := stat.MeanStdDev(f.values, nil)
	if math.IsNaN(std) {
		// A single observation has no sample deviation.
		std = 0
	}
	return Standard{Mean: mean, Std: std}, nil
}
