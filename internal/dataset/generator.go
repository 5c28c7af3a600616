package dataset

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/quentto/person-counting/internal/scale"
	"github.com/quentto/person-counting/internal/traj"
)

// Batch holds the features and labels for one training step.
type Batch struct {
	Features []*traj.Grid
	Labels   []float64
}

// BatchSource produces batches of (features, label) pairs for a fixed
// set of sample files. Implementations load and transform samples on
// demand so a training loop can iterate without holding the dataset in
// memory.
type BatchSource interface {
	Batches() int
	Batch(i int) (Batch, error)
	Files() []string
}

// Config holds the per-generator pipeline settings.
type Config struct {
	TopPath            string  // directory containing the sample CSVs
	LengthT            int     // expected rows after subsampling
	LengthY            int     // expected columns after trimming
	FilterCols         int     // columns trimmed at each spatial edge
	FilterRowsFactor   int     // row subsampling factor
	BatchSize          int
	AugmentationFactor float64 // 0 disables augmentation
	Seed               int64   // seeds the augmenter's random stream
}

// Validate checks the config for values the pipeline cannot work with.
func (c Config) Validate() error {
	if c.TopPath == "" {
		return fmt.Errorf("%w: empty top path", traj.ErrInvalidInput)
	}
	if c.LengthT < 1 || c.LengthY < 1 {
		return fmt.Errorf("%w: expected shape %dx%d", traj.ErrInvalidInput, c.LengthT, c.LengthY)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: batch size %d", traj.ErrInvalidInput, c.BatchSize)
	}
	if c.FilterRowsFactor < 1 {
		return fmt.Errorf("%w: filter rows factor %d", traj.ErrInvalidInput, c.FilterRowsFactor)
	}
	if c.FilterCols < 0 {
		return fmt.Errorf("%w: filter cols %d", traj.ErrInvalidInput, c.FilterCols)
	}
	if c.AugmentationFactor < 0 {
		return fmt.Errorf("%w: augmentation factor %v", traj.ErrInvalidInput, c.AugmentationFactor)
	}
	return nil
}

// Generator is a BatchSource over one dataset split. The augmenter is
// only present for training generators; validation and test data pass
// through unaugmented.
type Generator struct {
	cfg      Config
	files    []string
	labels   *LabelTable
	features scale.MinMax
	label    scale.MinMax
	aug      *traj.Augmenter
}

// NewGenerator creates a generator over the given files. featScaler and
// labelScaler must already be fitted (see FitScalers).
func NewGenerator(cfg Config, files []string, labels *LabelTable, featScaler, labelScaler scale.MinMax) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if labels == nil || labels.Len() == 0 {
		return nil, fmt.Errorf("%w: empty label table", traj.ErrInvalidInput)
	}
	g := &Generator{
		cfg:      cfg,
		files:    files,
		labels:   labels,
		features: featScaler,
		label:    labelScaler,
	}
	if cfg.AugmentationFactor > 0 {
		g.aug = traj.NewSeededAugmenter(cfg.Seed)
	}
	return g, nil
}

// Files returns the sample files this generator draws from.
func (g *Generator) Files() []string {
	out := make([]string, len(g.files))
	copy(out, g.files)
	return out
}

// Batches returns the number of batches one pass over the files yields.
func (g *Generator) Batches() int {
	return (len(g.files) + g.cfg.BatchSize - 1) / g.cfg.BatchSize
}

// Batch loads, transforms and assembles the i-th batch.
func (g *Generator) Batch(i int) (Batch, error) {
	if i < 0 || i >= g.Batches() {
		return Batch{}, fmt.Errorf("%w: batch index %d of %d", traj.ErrInvalidInput, i, g.Batches())
	}
	lo := i * g.cfg.BatchSize
	hi := lo + g.cfg.BatchSize
	if hi > len(g.files) {
		hi = len(g.files)
	}

	batch := Batch{
		Features: make([]*traj.Grid, 0, hi-lo),
		Labels:   make([]float64, 0, hi-lo),
	}
	for _, name := range g.files[lo:hi] {
		grid, label, err := g.sample(name)
		if err != nil {
			return Batch{}, err
		}
		batch.Features = append(batch.Features, grid)
		batch.Labels = append(batch.Labels, label)
	}
	return batch, nil
}

// sample runs the per-sample pipeline: load, trim, subsample, augment,
// scale.
func (g *Generator) sample(name string) (*traj.Grid, float64, error) {
	path := filepath.Join(g.cfg.TopPath, CSVName(name))
	grid, err := LoadFeatures(path)
	if err != nil {
		return nil, 0, err
	}

	grid, err = TrimColumns(grid, g.cfg.FilterCols, g.cfg.FilterCols)
	if err != nil {
		return nil, 0, fmt.Errorf("sample %s: %w", name, err)
	}
	grid = SubsampleRows(grid, g.cfg.FilterRowsFactor)

	if grid.Rows != g.cfg.LengthT || grid.Cols != g.cfg.LengthY {
		return nil, 0, fmt.Errorf("sample %s: shape %dx%d after filtering, want %dx%d",
			name, grid.Rows, grid.Cols, g.cfg.LengthT, g.cfg.LengthY)
	}

	if g.aug != nil {
		if grid, err = g.aug.Augment(grid, g.cfg.AugmentationFactor); err != nil {
			return nil, 0, fmt.Errorf("sample %s: %w", name, err)
		}
	}

	g.features.TransformGrid(grid)

	label, err := g.labels.Entering(name)
	if err != nil {
		return nil, 0, err
	}
	return grid, g.label.Transform(label), nil
}

// FitScalers fits the feature and label scalers over the given files.
// Features are observed after trimming and subsampling but before
// augmentation, so augmented and clean values share one scale.
func FitScalers(cfg Config, files []string, labels *LabelTable) (scale.MinMax, scale.MinMax, error) {
	var features scale.MinMaxFitter
	var labelFit scale.MinMaxFitter

	for _, name := range files {
		grid, err := LoadFeatures(filepath.Join(cfg.TopPath, CSVName(name)))
		if err != nil {
			return scale.MinMax{}, scale.MinMax{}, err
		}
		grid, err = TrimColumns(grid, cfg.FilterCols, cfg.FilterCols)
		if err != nil {
			return scale.MinMax{}, scale.MinMax{}, fmt.Errorf("sample %s: %w", name, err)
		}
		features.ObserveGrid(SubsampleRows(grid, cfg.FilterRowsFactor))

		label, err := labels.Entering(name)
		if err != nil {
			return scale.MinMax{}, scale.MinMax{}, err
		}
		labelFit.Observe(label)
	}

	featScaler, err := features.Scaler()
	if err != nil {
		return scale.MinMax{}, scale.MinMax{}, fmt.Errorf("fitting feature scaler: %w", err)
	}
	labelScaler, err := labelFit.Scaler()
	if err != nil {
		return scale.MinMax{}, scale.MinMax{}, fmt.Errorf("fitting label scaler: %w", err)
	}
	return featScaler, labelScaler, nil
}

// SplitOptions control how SplitGenerators partitions and filters the
// labelled samples.
type SplitOptions struct {
	ValFraction         float64
	TestFraction        float64
	FilterHourAbove     int  // 24 keeps everything
	FilterCategoryNoisy bool // drop noisy-category videos
}

// SplitGenerators builds the train, validation and test generators for
// a dataset. Augmentation applies to the training generator only; the
// scalers are fitted once over every split so all three share a scale.
func SplitGenerators(cfg Config, labelFile string, opts SplitOptions) (train, val, test *Generator, err error) {
	labels, err := LoadLabels(labelFile)
	if err != nil {
		return nil, nil, nil, err
	}

	names := FilterNoisy(FilterByHour(labels.Files(), opts.FilterHourAbove), opts.FilterCategoryNoisy)
	trainNames, valNames, testNames, err := SplitSamples(names, opts.ValFraction, opts.TestFraction, cfg.Seed)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Printf("dataset contains: %d training files, %d validation files, %d testing files",
		len(trainNames), len(valNames), len(testNames))

	featScaler, labelScaler, err := FitScalers(cfg, names, labels)
	if err != nil {
		return nil, nil, nil, err
	}

	if train, err = NewGenerator(cfg, trainNames, labels, featScaler, labelScaler); err != nil {
		return nil, nil, nil, err
	}

	// No augmentation for held-out data.
	evalCfg := cfg
	evalCfg.AugmentationFactor = 0
	if val, err = NewGenerator(evalCfg, valNames, labels, featScaler, labelScaler); err != nil {
		return nil, nil, nil, err
	}
	if test, err = NewGenerator(evalCfg, testNames, labels, featScaler, labelScaler); err != nil {
		return nil, nil, nil, err
	}
	return train, val, test, nil
}
