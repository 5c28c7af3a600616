// Package dataset turns a folder of person-counting CSV files into
// training batches.
//
// Each sample is one CSV file holding a detection-intensity grid (rows
// are video frames, columns are spatial bins); a label file maps sample
// names to entering/exiting person counts. The pipeline per sample is:
// load, trim sparse edge columns, subsample rows, augment (training
// split only), scale. Splitting, filtering and scaler fitting are
// deterministic given a seed so runs are reproducible.
package dataset
