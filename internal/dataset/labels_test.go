package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeLabelFile(t *testing.T, dir string, rows string) string {
	t.Helper()
	path := filepath.Join(dir, "label.csv")
	if err := os.WriteFile(path, []byte(rows), 0644); err != nil {
		t.Fatalf("writing label fixture: %v", err)
	}
	return path
}

func TestLoadLabels(t *testing.T) {
	path := writeLabelFile(t, t.TempDir(),
		"video_0001.avi,3,1,front_normal\n"+
			"video_0002.avi,0,2,back_noisy\n")

	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels: %v", err)
	}
	if labels.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", labels.Len())
	}

	entering, err := labels.Entering("video_0001.avi")
	if err != nil {
		t.Fatalf("Entering: %v", err)
	}
	if entering != 3 {
		t.Errorf("Entering = %v, want 3", entering)
	}

	// The derived CSV name resolves to the same sample.
	entering, err = labels.Entering("video_0001.csv")
	if err != nil {
		t.Fatalf("Entering by csv name: %v", err)
	}
	if entering != 3 {
		t.Errorf("Entering by csv name = %v, want 3", entering)
	}

	exiting, err := labels.Exiting("video_0002.avi")
	if err != nil {
		t.Fatalf("Exiting: %v", err)
	}
	if exiting != 2 {
		t.Errorf("Exiting = %v, want 2", exiting)
	}

	l, err := labels.Lookup("video_0002.avi")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if l.VideoType != "back_noisy" {
		t.Errorf("VideoType = %q, want back_noisy", l.VideoType)
	}
}

func TestLoadLabelsMissingSample(t *testing.T) {
	path := writeLabelFile(t, t.TempDir(), "video_0001.avi,3,1,front_normal\n")
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := labels.Entering("missing.avi"); !errors.Is(err, ErrNoLabel) {
		t.Errorf("error = %v, want ErrNoLabel", err)
	}
}

func TestLoadLabelsBadCount(t *testing.T) {
	path := writeLabelFile(t, t.TempDir(), "video_0001.avi,three,1,front_normal\n")
	if _, err := LoadLabels(path); err == nil {
		t.Error("expected parse error for non-numeric entering count")
	}
}

func TestLoadLabelsEmpty(t *testing.T) {
	path := writeLabelFile(t, t.TempDir(), "")
	if _, err := LoadLabels(path); err == nil {
		t.Error("expected error for empty label file")
	}
}

func TestCSVName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"video_0001.avi", "video_0001.csv"},
		{"video_0001.csv", "video_0001.csv"},
		{"noext", "noext.csv"},
	}
	for _, tt := range tests {
		if got := CSVName(tt.in); got != tt.want {
			t.Errorf("CSVName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
