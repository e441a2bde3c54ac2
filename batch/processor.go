package batch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/tsawler/omrscan/scoring"
)

// GradeFunc grades a single sheet image and must always return a report;
// processing failures are represented as error-marked reports, not nil.
type GradeFunc func(path string) *scoring.Report

// Result is the outcome of one batch run.
type Result struct {
	// RunID uniquely identifies this batch run in downstream tables.
	RunID string

	// Reports holds exactly one report per input path, in input order.
	Reports []*scoring.Report

	// Summary is the fold over Reports.
	Summary scoring.Summary
}

// Process grades every path with up to workers concurrent tasks. Workers
// below 1 defaults to the number of CPUs. The context bounds the whole
// run: once canceled, unstarted sheets are recorded as error reports so
// the result still carries one report per input.
func Process(ctx context.Context, paths []string, workers int, grade GradeFunc) *Result {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	res := &Result{
		RunID:   uuid.New().String(),
		Reports: make([]*scoring.Report, len(paths)),
	}

	log.Printf("batch: run %s started (%d sheets, %d workers)", res.RunID, len(paths), workers)

	sem := semaphore.NewWeighted(int64(workers))
	for i, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context canceled; record the remaining sheets as failed.
			for j := i; j < len(paths); j++ {
				res.Reports[j] = canceledReport(paths[j], err)
			}
			break
		}
		go func(i int, path string) {
			defer sem.Release(1)
			res.Reports[i] = grade(path)
		}(i, path)
	}

	// Wait for all in-flight tasks to finish.
	if err := sem.Acquire(context.Background(), int64(workers)); err != nil {
		log.Printf("batch: wait failed: %v", err)
	}

	res.Summary = scoring.Summarize(res.Reports)
	log.Printf("batch: run %s finished (mean %.1f, failed %d/%d)",
		res.RunID, res.Summary.Mean, res.Summary.Failed, res.Summary.Count)
	return res
}

// ListImages returns the image files in dir with common photographic
// extensions, sorted by name for stable batch ordering.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// SheetID derives the respondent identifier from an image path: the
// filename without its extension.
func SheetID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func canceledReport(path string, err error) *scoring.Report {
	return scoring.NewErrorReport(SheetID(path), path, 0, 0, scoring.Strict, err)
}
