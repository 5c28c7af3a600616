package traj

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// directions are the four axis-aligned neighbour offsets tried when
// relocating a detection: left, right, down, up.
var directions = [4]Coord{
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
}

// TimingHook receives the elapsed wall time of one Augment call. Hooks
// are optional and sit outside the algorithm's control flow.
type TimingHook func(elapsed time.Duration)

// Augmenter relocates a random subset of a grid's detections to
// neighbouring empty cells. It carries its own random source so that
// concurrent callers can each hold an independent, reproducible stream;
// a single Augmenter must not be shared across goroutines.
type Augmenter struct {
	rng    *rand.Rand
	timing TimingHook
}

// NewAugmenter creates an Augmenter drawing from the given random
// source. The source must not be nil.
func NewAugmenter(rng *rand.Rand) *Augmenter {
	return &Augmenter{rng: rng}
}

// NewSeededAugmenter creates an Augmenter with its own random source
// seeded from seed. Two augmenters with the same seed produce identical
// relocation sequences for identical inputs.
func NewSeededAugmenter(seed int64) *Augmenter {
	return NewAugmenter(rand.New(rand.NewSource(seed)))
}

// OnTiming installs a hook invoked with the elapsed duration of each
// Augment call. A nil hook disables timing.
func (a *Augmenter) OnTiming(hook TimingHook) {
	a.timing = hook
}

// Augment relocates ceil(detections * factor) randomly chosen detection
// cells, each to a uniformly chosen in-bounds axis neighbour that was
// empty when the call started. The grid is mutated in place and
// returned; total intensity and detection count are preserved.
//
// factor must be non-negative; values above 1 are clamped so that at
// most every detection moves once. A grid without detections is
// returned unchanged.
//
// Destination occupancy is tested against the detection set captured at
// the start of the call, so a cell vacated earlier in the same call
// still counts as occupied and cannot be reused as a destination until
// the next call. Cells filled by earlier moves in the same call are
// likewise rejected, so two relocations never collide on one
// destination.
func (a *Augmenter) Augment(g *Grid, factor float64) (*Grid, error) {
	if a.timing != nil {
		start := time.Now()
		defer func() { a.timing(time.Since(start)) }()
	}

	if g == nil || g.Rows < 1 || g.Cols < 1 {
		return nil, fmt.Errorf("%w: nil or zero-dimension grid", ErrInvalidInput)
	}
	if factor < 0 {
		return nil, fmt.Errorf("%w: negative augmentation factor %v", ErrInvalidInput, factor)
	}
	if factor > 1 {
		factor = 1
	}

	detections := g.Detections()
	if len(detections) == 0 {
		return g, nil
	}

	k := int(math.Ceil(float64(len(detections)) * factor))
	if k == 0 {
		return g, nil
	}
	// Sampling without replacement cannot exceed the population.
	if k > len(detections) {
		k = len(detections)
	}

	occupied := make(map[Coord]struct{}, len(detections))
	for _, c := range detections {
		occupied[c] = struct{}{}
	}

	// A random permutation prefix is a uniform sample without
	// replacement, already in uniform random processing order.
	order := a.rng.Perm(len(detections))
	for _, idx := range order[:k] {
		src := detections[idx]
		dest := a.destination(g, src, occupied)
		if dest == src {
			continue
		}
		g.Set(dest.Row, dest.Col, g.At(src.Row, src.Col))
		g.Set(src.Row, src.Col, 0)
	}

	return g, nil
}

// destination picks the first valid neighbour of src in a random
// direction order, or src itself when every direction is blocked. A
// neighbour is valid when it is in bounds, was not a detection at the
// start of the call, and has not been filled by an earlier move.
func (a *Augmenter) destination(g *Grid, src Coord, occupied map[Coord]struct{}) Coord {
	for _, di := range a.rng.Perm(len(directions)) {
		d := directions[di]
		cand := Coord{Row: src.Row + d.Row, Col: src.Col + d.Col}
		if !g.InBounds(cand.Row, cand.Col) {
			continue
		}
		if _, taken := occupied[cand]; taken {
			continue
		}
		if g.At(cand.Row, cand.Col) > DetectionThreshold {
			continue
		}
		return cand
	}
	return src
}
