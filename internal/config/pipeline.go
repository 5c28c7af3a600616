// Package config loads the JSON pipeline configuration.
//
// Fields are pointer-typed so partial config files are safe: anything
// omitted from the JSON falls back to a default via the Get* accessors.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults used when a field is absent from the config file.
const (
	DefaultFilterRowsFactor   = 4
	DefaultFilterCols         = 5
	DefaultBatchSize          = 16
	DefaultAugmentationFactor = 0.3
	DefaultFilterHourAbove    = 24
	DefaultValFraction        = 0.15
	DefaultTestFraction       = 0.25
	DefaultSeed               = 42
	DefaultLabelFile          = "pcds_dataset_labels_united.csv"
)

// PipelineConfig holds the data-preparation settings for one run.
// The schema matches the CLI flag surface so the same JSON can be used
// for batch tooling and programmatic runs.
type PipelineConfig struct {
	FilterRowsFactor    *int     `json:"filter_rows_factor,omitempty"`
	FilterCols          *int     `json:"filter_cols,omitempty"`
	BatchSize           *int     `json:"batch_size,omitempty"`
	AugmentationFactor  *float64 `json:"augmentation_factor,omitempty"`
	FilterHourAbove     *int     `json:"filter_hour_above,omitempty"`
	FilterCategoryNoisy *bool    `json:"filter_category_noisy,omitempty"`
	ValFraction         *float64 `json:"val_fraction,omitempty"`
	TestFraction        *float64 `json:"test_fraction,omitempty"`
	Seed                *int64   `json:"seed,omitempty"`
	LabelFile           *string  `json:"label_file,omitempty"`
}

// EmptyPipelineConfig returns a PipelineConfig with all fields unset.
func EmptyPipelineConfig() *PipelineConfig {
	return &PipelineConfig{}
}

// LoadPipelineConfig loads a PipelineConfig from a JSON file. The path
// must have a .json extension and stay under the max file size. Fields
// omitted from the file keep their defaults, so partial configs are
// safe.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPipelineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with. Unset fields
// are always valid because their defaults are.
func (c *PipelineConfig) Validate() error {
	if c.FilterRowsFactor != nil && *c.FilterRowsFactor < 1 {
		return fmt.Errorf("filter_rows_factor must be >= 1, got %d", *c.FilterRowsFactor)
	}
	if c.FilterCols != nil && *c.FilterCols < 0 {
		return fmt.Errorf("filter_cols must be >= 0, got %d", *c.FilterCols)
	}
	if c.BatchSize != nil && *c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1, got %d", *c.BatchSize)
	}
	if c.AugmentationFactor != nil && *c.AugmentationFactor < 0 {
		return fmt.Errorf("augmentation_factor must be >= 0, got %v", *c.AugmentationFactor)
	}
	if c.FilterHourAbove != nil && (*c.FilterHourAbove < 0 || *c.FilterHourAbove > 24) {
		return fmt.Errorf("filter_hour_above must be in [0, 24], got %d", *c.FilterHourAbove)
	}
	if c.ValFraction != nil && (*c.ValFraction < 0 || *c.ValFraction >= 1) {
		return fmt.Errorf("val_fraction must be in [0, 1), got %v", *c.ValFraction)
	}
	if c.TestFraction != nil && (*c.TestFraction < 0 || *c.TestFraction >= 1) {
		return fmt.Errorf("test_fraction must be in [0, 1), got %v", *c.TestFraction)
	}
	if c.ValFraction != nil && c.TestFraction != nil && *c.ValFraction+*c.TestFraction >= 1 {
		return fmt.Errorf("val_fraction + test_fraction must be < 1, got %v",
			*c.ValFraction+*c.TestFraction)
	}
	if c.LabelFile != nil && *c.LabelFile == "" {
		return fmt.Errorf("label_file must not be empty when set")
	}
	return nil
}

// GetFilterRowsFactor returns the row subsampling factor.
func (c *PipelineConfig) GetFilterRowsFactor() int {
	if c.FilterRowsFactor != nil {
		return *c.FilterRowsFactor
	}
	return DefaultFilterRowsFactor
}

// GetFilterCols returns the per-edge column trim count.
func (c *PipelineConfig) GetFilterCols() int {
	if c.FilterCols != nil {
		return *c.FilterCols
	}
	return DefaultFilterCols
}

// GetBatchSize returns the training batch size.
func (c *PipelineConfig) GetBatchSize() int {
	if c.BatchSize != nil {
		return *c.BatchSize
	}
	return DefaultBatchSize
}

// GetAugmentationFactor returns the trajectory augmentation factor.
func (c *PipelineConfig) GetAugmentationFactor() float64 {
	if c.AugmentationFactor != nil {
		return *c.AugmentationFactor
	}
	return DefaultAugmentationFactor
}

// GetFilterHourAbove returns the latest recording hour kept.
func (c *PipelineConfig) GetFilterHourAbove() int {
	if c.FilterHourAbove != nil {
		return *c.FilterHourAbove
	}
	return DefaultFilterHourAbove
}

// GetFilterCategoryNoisy reports whether noisy-category videos are dropped.
func (c *PipelineConfig) GetFilterCategoryNoisy() bool {
	if c.FilterCategoryNoisy != nil {
		return *c.FilterCategoryNoisy
	}
	return false
}

// GetValFraction returns the validation split fraction.
func (c *PipelineConfig) GetValFraction() float64 {
	if c.ValFraction != nil {
		return *c.ValFraction
	}
	return DefaultValFraction
}

// GetTestFraction returns the test split fraction.
func (c *PipelineConfig) GetTestFraction() float64 {
	if c.TestFraction != nil {
		return *c.TestFraction
	}
	return DefaultTestFraction
}

// GetSeed returns the random seed used for splitting and augmentation.
func (c *PipelineConfig) GetSeed() int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return DefaultSeed
}

// GetLabelFile returns the label file name relative to the dataset root.
func (c *PipelineConfig) GetLabelFile() string {
	if c.LabelFile != nil {
		return *c.LabelFile
	}
	return DefaultLabelFile
}
