package dataset

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/quentto/person-counting/internal/traj"
)

// timeSegment matches the HH-MM-SS segment of PCDS-style sample names,
// e.g. "2019_04_12_17-30-01_front_normal.avi".
var timeSegment = regexp.MustCompile(`^(\d{1,2})-\d{2}-\d{2}$`)

// HourFromName extracts the recording hour from a sample file name.
// Returns -1 when the name carries no recognisable time segment.
func HourFromName(name string) int {
	for _, seg := range strings.Split(sampleStem(name), "_") {
		m := timeSegment.FindStringSubmatch(seg)
		if m == nil {
			continue
		}
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour > 23 {
			continue
		}
		return hour
	}
	return -1
}

// FilterByHour drops samples recorded after maxHour. Samples whose name
// has no parseable hour are kept; filtering is best-effort.
func FilterByHour(names []string, maxHour int) []string {
	if maxHour >= 24 {
		return names
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if h := HourFromName(name); h > maxHour {
			continue
		}
		out = append(out, name)
	}
	return out
}

// IsNoisy reports whether a sample belongs to the noisy video category.
func IsNoisy(name string) bool {
	return strings.Contains(strings.ToLower(sampleStem(name)), "noisy")
}

// FilterNoisy drops noisy-category samples when drop is true.
func FilterNoisy(names []string, drop bool) []string {
	if !drop {
		return names
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if IsNoisy(name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// SplitSamples shuffles names with the given seed and partitions them
// into train, validation and test sets. The same seed and input order
// always yield the same split.
func SplitSamples(names []string, valFraction, testFraction float64, seed int64) (train, val, test []string, err error) {
	if valFraction < 0 || testFraction < 0 || valFraction+testFraction >= 1 {
		return nil, nil, nil, fmt.Errorf("%w: split fractions val=%v test=%v",
			traj.ErrInvalidInput, valFraction, testFraction)
	}
	shuffled := make([]string, len(names))
	copy(shuffled, names)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(float64(len(shuffled)) * testFraction)
	nVal := int(float64(len(shuffled)) * valFraction)
	test = shuffled[:nTest]
	val = shuffled[nTest : nTest+nVal]
	train = shuffled[nTest+nVal:]
	return train, val, test, nil
}
