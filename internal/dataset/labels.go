package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Label columns in the label CSV, in order. The file carries no header
// row.
var labelColumns = []string{"file_name", "entering", "exiting", "video_type"}

// ErrNoLabel is returned when a sample file has no matching label row.
var ErrNoLabel = errors.New("dataset: no label for sample")

// Label is one row of the label file.
type Label struct {
	FileName  string
	Entering  float64
	Exiting   float64
	VideoType string
}

// LabelTable holds all labels keyed by sample stem (file name without
// directory or extension), so lookups work for both the original video
// name and the derived CSV name.
type LabelTable struct {
	byStem map[string]Label
	order  []string
}

// LoadLabels reads a header-less label CSV with columns
// file_name, entering, exiting, video_type.
func LoadLabels(path string) (*LabelTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening label file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(labelColumns)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing label file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("label file %s is empty", path)
	}

	t := &LabelTable{byStem: make(map[string]Label, len(records))}
	for i, rec := range records {
		entering, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("label row %d: bad entering count %q: %w", i, rec[1], err)
		}
		exiting, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("label row %d: bad exiting count %q: %w", i, rec[2], err)
		}
		l := Label{
			FileName:  strings.TrimSpace(rec[0]),
			Entering:  entering,
			Exiting:   exiting,
			VideoType: strings.TrimSpace(rec[3]),
		}
		stem := sampleStem(l.FileName)
		if _, dup := t.byStem[stem]; !dup {
			t.order = append(t.order, l.FileName)
		}
		t.byStem[stem] = l
	}
	return t, nil
}

// Files returns the labelled sample file names in file order.
func (t *LabelTable) Files() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of labelled samples.
func (t *LabelTable) Len() int {
	return len(t.byStem)
}

// Lookup returns the label for a sample file name (video or CSV).
func (t *LabelTable) Lookup(fileName string) (Label, error) {
	l, ok := t.byStem[sampleStem(fileName)]
	if !ok {
		return Label{}, fmt.Errorf("%w: %s", ErrNoLabel, fileName)
	}
	return l, nil
}

// Entering returns the entering-person count for a sample file.
func (t *LabelTable) Entering(fileName string) (float64, error) {
	l, err := t.Lookup(fileName)
	if err != nil {
		return 0, err
	}
	return l.Entering, nil
}

// Exiting returns the exiting-person count for a sample file.
func (t *LabelTable) Exiting(fileName string) (float64, error) {
	l, err := t.Lookup(fileName)
	if err != nil {
		return 0, err
	}
	return l.Exiting, nil
}

// sampleStem strips the directory and extension from a sample name, so
// "a/b/video_0001.avi" and "video_0001.csv" address the same sample.
func sampleStem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CSVName converts a sample file name (typically a video name from the
// label file) into the corresponding feature CSV name.
func CSVName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".csv"
}
