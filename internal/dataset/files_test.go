package dataset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quentto/person-counting/internal/traj"
)

func TestHourFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"2019_04_12_17-30-01_front_normal.avi", 17},
		{"2019_04_12_9-05-59_back_noisy.csv", 9},
		{"2019_04_12_0-00-00_front_normal.avi", 0},
		{"no_time_here.avi", -1},
		{"2019_04_12_99-00-00_front.avi", -1}, // not a valid hour
		{"", -1},
	}
	for _, tt := range tests {
		if got := HourFromName(tt.name); got != tt.want {
			t.Errorf("HourFromName(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestFilterByHour(t *testing.T) {
	names := []string{
		"2019_04_12_08-00-00_front_normal.avi",
		"2019_04_12_17-30-01_front_normal.avi",
		"2019_04_12_22-10-00_back_normal.avi",
		"unparseable.avi",
	}

	got := FilterByHour(names, 18)
	want := []string{
		"2019_04_12_08-00-00_front_normal.avi",
		"2019_04_12_17-30-01_front_normal.avi",
		"unparseable.avi",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FilterByHour mismatch (-want +got):\n%s", diff)
	}

	// 24 disables the filter.
	if diff := cmp.Diff(names, FilterByHour(names, 24)); diff != "" {
		t.Errorf("FilterByHour(24) must keep everything:\n%s", diff)
	}
}

func TestFilterNoisy(t *testing.T) {
	names := []string{
		"2019_04_12_08-00-00_front_normal.avi",
		"2019_04_12_09-00-00_back_noisy.avi",
	}

	got := FilterNoisy(names, true)
	if len(got) != 1 || got[0] != names[0] {
		t.Errorf("FilterNoisy(drop) = %v, want only the normal sample", got)
	}
	if diff := cmp.Diff(names, FilterNoisy(names, false)); diff != "" {
		t.Errorf("FilterNoisy(keep) mismatch:\n%s", diff)
	}
}

func TestSplitSamplesDeterministic(t *testing.T) {
	names := make([]string, 40)
	for i := range names {
		names[i] = fmt.Sprintf("video_%04d.csv", i)
	}

	trainA, valA, testA, err := SplitSamples(names, 0.15, 0.25, 42)
	if err != nil {
		t.Fatal(err)
	}
	trainB, valB, testB, err := SplitSamples(names, 0.15, 0.25, 42)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(trainA, trainB); diff != "" {
		t.Errorf("train split not deterministic:\n%s", diff)
	}
	if diff := cmp.Diff(valA, valB); diff != "" {
		t.Errorf("val split not deterministic:\n%s", diff)
	}
	if diff := cmp.Diff(testA, testB); diff != "" {
		t.Errorf("test split not deterministic:\n%s", diff)
	}

	if len(testA) != 10 { // 40 * 0.25
		t.Errorf("test size = %d, want 10", len(testA))
	}
	if len(valA) != 6 { // 40 * 0.15
		t.Errorf("val size = %d, want 6", len(valA))
	}
	if len(trainA)+len(valA)+len(testA) != len(names) {
		t.Errorf("splits do not cover the input: %d+%d+%d != %d",
			len(trainA), len(valA), len(testA), len(names))
	}

	// Splits are disjoint.
	seen := map[string]int{}
	for _, s := range trainA {
		seen[s]++
	}
	for _, s := range valA {
		seen[s]++
	}
	for _, s := range testA {
		seen[s]++
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("sample %q appears in %d splits", name, n)
		}
	}
}

func TestSplitSamplesBadFractions(t *testing.T) {
	names := []string{"a.csv", "b.csv"}
	cases := [][2]float64{
		{-0.1, 0.2},
		{0.2, -0.1},
		{0.5, 0.5},
		{0.9, 0.2},
	}
	for _, c := range cases {
		if _, _, _, err := SplitSamples(names, c[0], c[1], 1); !errors.Is(err, traj.ErrInvalidInput) {
			t.Errorf("SplitSamples(val=%v, test=%v) error = %v, want ErrInvalidInput", c[0], c[1], err)
		}
	}
}
