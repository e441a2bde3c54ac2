// Package omrscan provides a fluent API for grading optical-mark
// (bubble-sheet) answer sheets: it rectifies a photographed sheet,
// extracts the marked bubbles from a fixed rows x columns grid, and
// scores them against an answer key.
//
// Basic usage:
//
//	p := omrscan.New("answer_key.json").Rows(20).Cols(5)
//	report, err := p.GradeFile("sheet_042.jpg")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(report.TotalScore)
//
// Batches run concurrently, with per-sheet failures recorded as
// error-marked reports instead of aborting:
//
//	result := p.GradeBatch(context.Background(), paths, 4)
//
// For advanced use the lower-level sheet, marks, answerkey, and scoring
// packages are also available.
package omrscan

import (
	"context"
	"fmt"
	"image"

	"github.com/tsawler/omrscan/answerkey"
	"github.com/tsawler/omrscan/batch"
	"github.com/tsawler/omrscan/marks"
	"github.com/tsawler/omrscan/scoring"
	"github.com/tsawler/omrscan/sheet"
)

// Pipeline grades sheets against one answer key. Each configuration
// method returns a new Pipeline instance, making it safe to branch a
// configured pipeline and safe for concurrent use once validated.
type Pipeline struct {
	// Key source: a path loaded lazily, or an already-loaded key.
	keyPath string
	key     *answerkey.Key

	options pipelineOptions

	// Accumulated error (fail-fast).
	err error
}

// New creates a Pipeline that loads its answer key from the given file
// (JSON or CSV record form) on first use.
func New(keyPath string) *Pipeline {
	return &Pipeline{
		keyPath: keyPath,
		options: defaultOptions(),
	}
}

// FromKey creates a Pipeline from an already-loaded answer key.
func FromKey(key *answerkey.Key) *Pipeline {
	return &Pipeline{
		key:     key,
		options: defaultOptions(),
	}
}

// clone creates a copy of the Pipeline with copied options, so chain
// methods never mutate the receiver.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		keyPath: p.keyPath,
		key:     p.key,
		options: p.options.clone(),
		err:     p.err,
	}
}

// Rows sets the number of question rows on the sheet.
func (p *Pipeline) Rows(rows int) *Pipeline {
	np := p.clone()
	np.options.rows = rows
	return np
}

// Cols sets the number of option/subject columns on the sheet.
func (p *Pipeline) Cols(cols int) *Pipeline {
	np := p.clone()
	np.options.cols = cols
	return np
}

// Policy sets the credit policy applied during scoring.
func (p *Pipeline) Policy(policy scoring.Policy) *Pipeline {
	np := p.clone()
	np.options.policy = int(policy)
	return np
}

// FillThreshold overrides the extractor's mark-detection fill ratio.
func (p *Pipeline) FillThreshold(t float64) *Pipeline {
	np := p.clone()
	np.options.fillThreshold = t
	return np
}

// InsetRatio overrides the extractor's cell sampling inset.
func (p *Pipeline) InsetRatio(r float64) *Pipeline {
	np := p.clone()
	np.options.insetRatio = r
	return np
}

// Circularity enables the extractor's shape-confidence gate with the
// given minimum roundness.
func (p *Pipeline) Circularity(min float64) *Pipeline {
	np := p.clone()
	np.options.minCircularity = min
	return np
}

// Contrast overrides the normalizer's contrast-enhancement clip limit.
// Zero disables enhancement.
func (p *Pipeline) Contrast(clip float64) *Pipeline {
	np := p.clone()
	np.options.contrastClip = clip
	return np
}

// Denoise enables morphological cleanup during sheet normalization.
func (p *Pipeline) Denoise() *Pipeline {
	np := p.clone()
	np.options.denoise = true
	return np
}

// Key returns the pipeline's answer key, loading it if necessary.
func (p *Pipeline) Key() (*answerkey.Key, error) {
	if err := p.ensureKey(); err != nil {
		return nil, err
	}
	return p.key, nil
}

// Validate loads the answer key if needed and confirms it is consistent
// with the configured grid dimensions. It must pass before a batch
// starts; a dimension mismatch would fail every sheet identically.
func (p *Pipeline) Validate() error {
	if err := p.ensureKey(); err != nil {
		return err
	}
	return p.key.Validate(p.options.rows, p.options.cols)
}

// ensureKey loads the key from keyPath if it is not loaded yet.
func (p *Pipeline) ensureKey() error {
	if p.err != nil {
		return p.err
	}
	if p.key != nil {
		return nil
	}
	if p.keyPath == "" {
		p.err = fmt.Errorf("omrscan: no answer key specified")
		return p.err
	}

	key, err := answerkey.Load(p.keyPath)
	if err != nil {
		p.err = err
		return err
	}
	p.key = key
	return nil
}

// Grade runs the normalize, extract, and score stages on a decoded image.
// It returns an error only for configuration problems; image-content
// difficulties degrade gracefully inside the stages.
func (p *Pipeline) Grade(img image.Image, sheetID string) (*scoring.Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rect := p.normalizer().Normalize(img)
	matrix, err := p.extractor().Extract(rect, p.options.rows, p.options.cols)
	if err != nil {
		return nil, err
	}

	report := scoring.Score(matrix, p.key, scoring.Policy(p.options.policy))
	report.SheetID = sheetID
	return report, nil
}

// GradeFile decodes and grades the sheet image at path. The sheet ID is
// the filename stem. Decode failures are returned as errors; use
// GradeBatch to have them converted to error-marked reports.
func (p *Pipeline) GradeFile(path string) (*scoring.Report, error) {
	img, err := sheet.DecodeFile(path)
	if err != nil {
		// Config errors still take precedence over the decode error.
		if verr := p.Validate(); verr != nil {
			return nil, verr
		}
		return nil, err
	}

	report, err := p.Grade(img, batch.SheetID(path))
	if err != nil {
		return nil, err
	}
	report.SheetPath = path
	return report, nil
}

// GradeBatch grades many sheet images concurrently with up to workers
// tasks (pass 0 for one per CPU). Configuration is validated once up
// front; after that the batch always completes with exactly one report
// per input path, failures included as error-marked zero-score reports.
func (p *Pipeline) GradeBatch(ctx context.Context, paths []string, workers int) (*batch.Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	policy := scoring.Policy(p.options.policy)
	res := batch.Process(ctx, paths, workers, func(path string) *scoring.Report {
		report, err := p.GradeFile(path)
		if err != nil {
			return scoring.NewErrorReport(batch.SheetID(path), path,
				p.options.rows, p.options.cols, policy, err)
		}
		return report
	})
	return res, nil
}

// GradeDir grades every image file in a directory.
func (p *Pipeline) GradeDir(ctx context.Context, dir string, workers int) (*batch.Result, error) {
	paths, err := batch.ListImages(dir)
	if err != nil {
		return nil, fmt.Errorf("omrscan: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("omrscan: no image files found in %s", dir)
	}
	return p.GradeBatch(ctx, paths, workers)
}

// normalizer builds the sheet normalizer for this pipeline's options.
func (p *Pipeline) normalizer() *sheet.Normalizer {
	n := sheet.NewNormalizer()
	if p.options.contrastClip >= 0 {
		n.ContrastClip = p.options.contrastClip
	}
	n.Denoise = p.options.denoise
	return n
}

// extractor builds the mark extractor for this pipeline's options.
func (p *Pipeline) extractor() *marks.Extractor {
	e := marks.NewExtractor()
	if p.options.fillThreshold >= 0 {
		e.FillThreshold = p.options.fillThreshold
	}
	if p.options.insetRatio >= 0 {
		e.InsetRatio = p.options.insetRatio
	}
	if p.options.minCircularity >= 0 {
		e.MinCircularity = p.options.minCircularity
	}
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	report := omrscan.Must(p.GradeFile("sheet.jpg"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
