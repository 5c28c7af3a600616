// Package traj owns the trajectory grid model and its augmentation.
//
// A Grid holds detection intensities over (time x space): rows are
// discrete time steps, columns are spatial bins. Cells above the
// detection threshold are treated as detections. The Augmenter
// relocates a random subset of detections to neighbouring empty cells,
// simulating small positional jitter, while preserving the total
// intensity and the detection count of the grid.
//
// No file, network or database code is allowed in this package; the
// augmenter is a pure in-memory transform consumed by the dataset
// pipeline.
package traj
