// Command omrscan grades bubble-sheet images from the command line.
//
// Grade a single sheet:
//
//	omrscan -key answers.json -image sheet_042.jpg
//
// Grade a directory of sheets and write a CSV table:
//
//	omrscan -key answers.json -batch ./scans -output results.csv
//
// Flags override values from an optional config file (-config) and
// OMRSCAN_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/tsawler/omrscan"
	"github.com/tsawler/omrscan/answerkey"
	"github.com/tsawler/omrscan/batch"
	"github.com/tsawler/omrscan/config"
)

func main() {
	var (
		imagePath  = flag.String("image", "", "path to a single sheet image")
		batchDir   = flag.String("batch", "", "directory containing sheet images")
		keyFile    = flag.String("key", "", "path to the answer key file (.json or .csv)")
		configFile = flag.String("config", "", "path to a config file")
		rows       = flag.Int("rows", 0, "number of question rows (overrides config)")
		cols       = flag.Int("cols", 0, "number of option columns (overrides config)")
		policyName = flag.String("policy", "", "credit policy: strict, flexible, or penalty")
		output     = flag.String("output", "", "output CSV file for batch results")
		workers    = flag.Int("workers", 0, "concurrent sheets in batch mode")
		sampleKey  = flag.Bool("create-sample-key", false, "write a random sample answer key and exit")
	)
	flag.Parse()

	log.SetFlags(log.LstdFlags)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("omrscan: %v", err)
	}

	// Flags override file/env configuration.
	if *rows > 0 {
		cfg.Grid.Rows = *rows
	}
	if *cols > 0 {
		cfg.Grid.Cols = *cols
	}
	if *keyFile != "" {
		cfg.Scoring.KeyFile = *keyFile
	}
	if *policyName != "" {
		cfg.Scoring.Policy = *policyName
	}
	if *output != "" {
		cfg.Batch.Output = *output
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("omrscan: %v", err)
	}

	if *sampleKey {
		writeSampleKey(cfg)
		return
	}

	if cfg.Scoring.KeyFile == "" {
		log.Fatal("omrscan: an answer key is required (-key)")
	}

	p := omrscan.New(cfg.Scoring.KeyFile).
		Rows(cfg.Grid.Rows).
		Cols(cfg.Grid.Cols).
		Policy(cfg.PolicyValue())
	if cfg.Extractor.FillThreshold >= 0 {
		p = p.FillThreshold(cfg.Extractor.FillThreshold)
	}
	if cfg.Extractor.InsetRatio >= 0 {
		p = p.InsetRatio(cfg.Extractor.InsetRatio)
	}
	if cfg.Extractor.MinCircularity >= 0 {
		p = p.Circularity(cfg.Extractor.MinCircularity)
	}

	if err := p.Validate(); err != nil {
		log.Fatalf("omrscan: %v", err)
	}

	switch {
	case *imagePath != "":
		gradeSingle(p, *imagePath)
	case *batchDir != "":
		gradeBatch(p, cfg, *batchDir)
	default:
		log.Fatal("omrscan: provide either -image or -batch")
	}
}

func gradeSingle(p *omrscan.Pipeline, path string) {
	report, err := p.GradeFile(path)
	if err != nil {
		log.Fatalf("omrscan: %v", err)
	}

	fmt.Printf("Sheet ID:    %s\n", report.SheetID)
	fmt.Printf("Total score: %s / %d (%.1f%%)\n",
		formatScore(report.TotalScore), report.MaxPossibleScore, report.Percentage)
	for col := 1; col <= report.TotalSubjects; col++ {
		fmt.Printf("  %s: %s\n", answerkey.OptionLabel(col), formatScore(report.SubjectScore(col)))
	}
	if report.UnansweredQuestions > 0 {
		fmt.Printf("Unanswered questions: %d\n", report.UnansweredQuestions)
	}
	if report.MultipleSelections > 0 {
		fmt.Printf("Multiple selections:  %d\n", report.MultipleSelections)
	}
}

func gradeBatch(p *omrscan.Pipeline, cfg *config.Config, dir string) {
	res, err := p.GradeDir(context.Background(), dir, cfg.Batch.Workers)
	if err != nil {
		log.Fatalf("omrscan: %v", err)
	}

	if err := batch.WriteFile(cfg.Batch.Output, res, cfg.Grid.Cols); err != nil {
		log.Fatalf("omrscan: %v", err)
	}
	log.Printf("results saved to %s", cfg.Batch.Output)

	s := res.Summary
	fmt.Printf("Processed %d sheets (%d failed)\n", s.Count, s.Failed)
	fmt.Printf("Scores: mean %.2f, min %s, max %s\n", s.Mean, formatScore(s.Min), formatScore(s.Max))
	fmt.Printf("Bands: excellent %d, good %d, average %d, poor %d\n",
		s.Excellent, s.Good, s.Average, s.Poor)
}

func writeSampleKey(cfg *config.Config) {
	const path = "sample_answer_key.json"
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	key := answerkey.Sample(cfg.Grid.Rows, cfg.Grid.Cols, rng)
	if err := key.Save(path); err != nil {
		log.Fatalf("omrscan: %v", err)
	}
	fmt.Printf("Sample answer key created: %s\n", path)
	os.Exit(0)
}

func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
