package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/quentto/person-counting/internal/config"
	"github.com/quentto/person-counting/internal/dataset"
)

func main() {
	dataPath := flag.String("data", ".", "Top-level directory containing the sample CSVs")
	configFile := flag.String("config", "", "Pipeline config JSON (empty uses defaults)")
	output := flag.String("output", "", "Output CSV filename (defaults to dataset-stats-<timestamp>.csv)")
	flag.Parse()

	cfg := config.EmptyPipelineConfig()
	if *configFile != "" {
		loaded, err := config.LoadPipelineConfig(*configFile)
		if err != nil {
			log.Fatalf("Could not load config %s: %v", *configFile, err)
		}
		cfg = loaded
	}

	lengthT, lengthY, err := dataset.FilteredLengths(*dataPath, cfg.GetFilterRowsFactor(), cfg.GetFilterCols())
	if err != nil {
		log.Fatalf("Could not probe sample shape: %v", err)
	}
	log.Printf("Filtered sample shape: %dx%d (rows factor %d, cols trimmed %d)",
		lengthT, lengthY, cfg.GetFilterRowsFactor(), cfg.GetFilterCols())

	pipeCfg := dataset.Config{
		TopPath:            *dataPath,
		LengthT:            lengthT,
		LengthY:            lengthY,
		FilterCols:         cfg.GetFilterCols(),
		FilterRowsFactor:   cfg.GetFilterRowsFactor(),
		BatchSize:          cfg.GetBatchSize(),
		AugmentationFactor: cfg.GetAugmentationFactor(),
		Seed:               cfg.GetSeed(),
	}
	opts := dataset.SplitOptions{
		ValFraction:         cfg.GetValFraction(),
		TestFraction:        cfg.GetTestFraction(),
		FilterHourAbove:     cfg.GetFilterHourAbove(),
		FilterCategoryNoisy: cfg.GetFilterCategoryNoisy(),
	}

	labelFile := filepath.Join(*dataPath, cfg.GetLabelFile())
	train, val, test, err := dataset.SplitGenerators(pipeCfg, labelFile, opts)
	if err != nil {
		log.Fatalf("Could not build generators: %v", err)
	}

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("dataset-stats-%s.csv", time.Now().Format("20060102-150405"))
	}
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Could not create output file %s: %v", filename, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{
		"split", "samples", "batches",
		"label_mean", "label_stddev",
		"detections_mean", "detections_stddev",
		"density_mean", "density_stddev",
	})

	for _, split := range []struct {
		name string
		src  dataset.BatchSource
	}{
		{"train", train},
		{"val", val},
		{"test", test},
	} {
		row, err := summarize(split.name, split.src, lengthT*lengthY)
		if err != nil {
			log.Fatalf("Could not summarize %s split: %v", split.name, err)
		}
		w.Write(row)
		w.Flush()
	}

	log.Printf("Summary: %s", filename)
}

// summarize walks every batch of one split and aggregates label and
// detection statistics into a single CSV row.
func summarize(name string, src dataset.BatchSource, cells int) ([]string, error) {
	var labels, detections, densities []float64

	for i := 0; i < src.Batches(); i++ {
		batch, err := src.Batch(i)
		if err != nil {
			return nil, err
		}
		labels = append(labels, batch.Labels...)
		for _, g := range batch.Features {
			n := float64(g.DetectionCount())
			detections = append(detections, n)
			densities = append(densities, n/float64(cells))
		}
	}

	labelMean, labelStd := stat.MeanStdDev(labels, nil)
	detMean, detStd := stat.MeanStdDev(detections, nil)
	densMean, densStd := stat.MeanStdDev(densities, nil)

	log.Printf("%s: %d samples, labels %.2f±%.2f, detections %.1f±%.1f",
		name, len(labels), labelMean, labelStd, detMean, detStd)

	return []string{
		name,
		fmt.Sprintf("%d", len(labels)),
		fmt.Sprintf("%d", src.Batches()),
		fmt.Sprintf("%.6f", labelMean),
		fmt.Sprintf("%.6f", labelStd),
		fmt.Sprintf("%.6f", detMean),
		fmt.Sprintf("%.6f", detStd),
		fmt.Sprintf("%.6f", densMean),
		fmt.Sprintf("%.6f", densStd),
	}, nil
}
