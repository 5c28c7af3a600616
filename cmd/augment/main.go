package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/quentto/person-counting/internal/dataset"
	"github.com/quentto/person-counting/internal/monitor"
	"github.com/quentto/person-counting/internal/traj"
)

func main() {
	input := flag.String("input", "", "Input trajectory CSV file")
	output := flag.String("output", "", "Output CSV filename (defaults to <input>-augmented.csv)")
	factor := flag.Float64("factor", 0.3, "Fraction of detections to relocate (values above 1 are clamped)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed (defaults to current time)")
	repeat := flag.Int("repeat", 1, "Number of augmented copies to write")
	plotDir := flag.String("plot", "", "Directory for before/after heatmap PNGs (empty disables)")
	htmlFile := flag.String("html", "", "Filename for an interactive heatmap report (empty disables)")
	flag.Parse()

	if *input == "" {
		log.Fatalf("No input file given (use -input)")
	}
	if *repeat < 1 {
		log.Fatalf("Invalid repeat count %d", *repeat)
	}

	grid, err := dataset.LoadFeatures(*input)
	if err != nil {
		log.Fatalf("Could not load %s: %v", *input, err)
	}
	log.Printf("Loaded %s: %dx%d grid, %d detections, sum %.4f",
		*input, grid.Rows, grid.Cols, grid.DetectionCount(), grid.Sum())

	aug := traj.NewSeededAugmenter(*seed)
	aug.OnTiming(func(d time.Duration) {
		log.Printf("Augmentation took %v", d)
	})

	stem := strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input))
	filename := *output
	if filename == "" {
		filename = strings.TrimSuffix(*input, filepath.Ext(*input)) + "-augmented.csv"
	}

	// Augment mutates in place, so each copy starts from a fresh clone
	// and the original stays available for the before heatmap.
	var last *traj.Grid
	for i := 0; i < *repeat; i++ {
		out, err := aug.Augment(grid.Clone(), *factor)
		if err != nil {
			log.Fatalf("Augmentation failed: %v", err)
		}
		last = out

		name := filename
		if *repeat > 1 {
			name = strings.TrimSuffix(filename, ".csv") + fmt.Sprintf("-%03d.csv", i+1)
		}
		if err := writeGridCSV(out, name); err != nil {
			log.Fatalf("Could not write %s: %v", name, err)
		}
		log.Printf("Wrote %s (%d detections, sum %.4f)", name, out.DetectionCount(), out.Sum())
	}

	if *plotDir != "" {
		beforePath, afterPath, err := monitor.SaveBeforeAfter(grid, last, *plotDir, stem)
		if err != nil {
			log.Printf("WARNING: Could not save heatmaps: %v", err)
		} else {
			log.Printf("Heatmaps: %s, %s", beforePath, afterPath)
		}
	}

	if *htmlFile != "" {
		f, err := os.Create(*htmlFile)
		if err != nil {
			log.Fatalf("Could not create %s: %v", *htmlFile, err)
		}
		err = monitor.RenderHeatmapHTML(last, stem+" (augmented)", f)
		f.Close()
		if err != nil {
			log.Fatalf("Could not render heatmap report: %v", err)
		}
		log.Printf("Report: %s", *htmlFile)
	}
}

func writeGridCSV(g *traj.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	record := make([]string, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			record[c] = strconv.FormatFloat(g.At(r, c), 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
