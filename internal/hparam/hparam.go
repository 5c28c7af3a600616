// Package hparam provides hyperparameter sampling for random search
// and the logging glue around one training run. Model construction and
// the training loop itself live with the external training framework.
package hparam

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/quentto/person-counting/internal/traj"
)

// Params is one sampled hyperparameter configuration.
type Params struct {
	LearningRate       float64 `json:"learning_rate"`
	BatchSize          int     `json:"batch_size"`
	Optimizer          string  `json:"optimizer"`
	ScheduleStep       int     `json:"schedule_step"`
	AugmentationFactor float64 `json:"augmentation_factor"`
	FilterRowsFactor   int     `json:"filter_rows_factor"`
	FilterCols         int     `json:"filter_cols"`
}

// Space describes the search ranges for random search. Learning rate
// is drawn log-uniformly between its bounds; the remaining fields are
// uniform choices.
type Space struct {
	LearningRateMin     float64
	LearningRateMax     float64
	BatchSizes          []int
	Optimizers          []string
	ScheduleSteps       []int
	AugmentationFactors []float64
	FilterRowsFactors   []int
	FilterColsChoices   []int
}

// DefaultSpace returns the search space used for CNN tuning runs.
func DefaultSpace() Space {
	return Space{
		LearningRateMin:     1e-5,
		LearningRateMax:     1e-3,
		BatchSizes:          []int{8, 16, 32},
		Optimizers:          []string{"Adam", "RMSProp", "SGD", "AdaGrad", "Nadam"},
		ScheduleSteps:       []int{0, 4, 8},
		AugmentationFactors: []float64{0, 0.1, 0.3, 0.5},
		FilterRowsFactors:   []int{2, 4, 8},
		FilterColsChoices:   []int{3, 5, 8},
	}
}

// Validate checks the space can be sampled from.
func (s Space) Validate() error {
	if s.LearningRateMin <= 0 || s.LearningRateMax < s.LearningRateMin {
		return fmt.Errorf("%w: learning rate range [%v, %v]",
			traj.ErrInvalidInput, s.LearningRateMin, s.LearningRateMax)
	}
	for name, n := range map[string]int{
		"batch sizes":          len(s.BatchSizes),
		"optimizers":           len(s.Optimizers),
		"schedule steps":       len(s.ScheduleSteps),
		"augmentation factors": len(s.AugmentationFactors),
		"filter rows factors":  len(s.FilterRowsFactors),
		"filter cols choices":  len(s.FilterColsChoices),
	} {
		if n == 0 {
			return fmt.Errorf("%w: empty choice list for %s", traj.ErrInvalidInput, name)
		}
	}
	return nil
}

// Sample draws one configuration from the space. Sampling with the
// same random source state is reproducible.
func (s Space) Sample(rng *rand.Rand) (Params, error) {
	if err := s.Validate(); err != nil {
		return Params{}, err
	}
	logMin := math.Log(s.LearningRateMin)
	logMax := math.Log(s.LearningRateMax)
	return Params{
		LearningRate:       math.Exp(logMin + rng.Float64()*(logMax-logMin)),
		BatchSize:          s.BatchSizes[rng.Intn(len(s.BatchSizes))],
		Optimizer:          s.Optimizers[rng.Intn(len(s.Optimizers))],
		ScheduleStep:       s.ScheduleSteps[rng.Intn(len(s.ScheduleSteps))],
		AugmentationFactor: s.AugmentationFactors[rng.Intn(len(s.AugmentationFactors))],
		FilterRowsFactor:   s.FilterRowsFactors[rng.Intn(len(s.FilterRowsFactors))],
		FilterCols:         s.FilterColsChoices[rng.Intn(len(s.FilterColsChoices))],
	}, nil
}

// RunSettings are the fixed (non-sampled) settings of a run that are
// worth logging next to the sampled hyperparameters.
type RunSettings struct {
	ScheduleStep        int
	BatchSize           int
	FilterHourAbove     int
	FilterCategoryNoisy bool
	WarmStartPath       string
}

// StaticParams flattens the run settings into a logging map. The date
// is recorded as an MMDDHH integer so runs sort chronologically within
// a year.
func StaticParams(s RunSettings, now time.Time) map[string]interface{} {
	date, _ := strconv.Atoi(now.Format("010215"))
	return map[string]interface{}{
		"schedule_step":         s.ScheduleStep,
		"batch_size":            s.BatchSize,
		"filter_hour_above":     s.FilterHourAbove,
		"filter_category_noisy": s.FilterCategoryNoisy,
		"warm_start":            s.WarmStartPath != "",
		"date":                  date,
	}
}

// StepDecay returns a learning-rate schedule that halves the rate
// every step epochs. A step of 0 disables decay. Epoch 0 never decays.
func StepDecay(step int) func(epoch int, lr float64) float64 {
	const decayRate = 0.5
	return func(epoch int, lr float64) float64 {
		if step <= 0 || epoch == 0 || epoch%step != 0 {
			return lr
		}
		return lr * decayRate
	}
}
