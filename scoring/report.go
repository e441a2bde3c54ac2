package scoring

import (
	"time"

	"github.com/tsawler/omrscan/answerkey"
)

// Report is the graded result for one sheet. It is created once by Score
// (or NewErrorReport) and never mutated; batch aggregation copies values
// out of it.
type Report struct {
	// SheetID identifies the respondent, typically the image filename
	// stem.
	SheetID string `json:"sheet_id"`

	// SheetPath is the source image path, empty when grading an
	// in-memory matrix.
	SheetPath string `json:"sheet_path,omitempty"`

	// SubjectScores maps option labels ("Subject_1", ...) to the summed
	// credit for that column.
	SubjectScores map[string]float64 `json:"subject_scores"`

	TotalScore       float64 `json:"total_score"`
	MaxPossibleScore int     `json:"max_possible_score"`
	Percentage       float64 `json:"percentage"`

	TotalQuestions int `json:"total_questions"`
	TotalSubjects  int `json:"total_subjects"`

	// MultipleSelections counts rows with more than one mark and
	// UnansweredQuestions counts rows with none. Both are informational:
	// such rows are still scored by the per-cell credit rule.
	MultipleSelections  int `json:"multiple_selections"`
	UnansweredQuestions int `json:"unanswered_questions"`

	Policy    string    `json:"policy"`
	Timestamp time.Time `json:"timestamp"`

	// Err carries the failure description for sheets that could not be
	// processed. Empty for successfully graded sheets.
	Err string `json:"error,omitempty"`
}

// Failed reports whether this sheet failed processing.
func (r *Report) Failed() bool {
	return r.Err != ""
}

// SubjectScore returns the score for the 1-indexed option column.
func (r *Report) SubjectScore(col int) float64 {
	return r.SubjectScores[answerkey.OptionLabel(col)]
}

// NewErrorReport builds the degraded report recorded for a sheet that
// failed normalization or extraction, so a batch always yields one report
// per input.
func NewErrorReport(sheetID, sheetPath string, rows, cols int, policy Policy, err error) *Report {
	r := &Report{
		SheetID:          sheetID,
		SheetPath:        sheetPath,
		SubjectScores:    map[string]float64{},
		MaxPossibleScore: rows * cols,
		TotalQuestions:   rows,
		TotalSubjects:    cols,
		Policy:           policy.String(),
		Timestamp:        time.Now(),
	}
	if err != nil {
		r.Err = err.Error()
	}
	for col := 1; col <= cols; col++ {
		r.SubjectScores[answerkey.OptionLabel(col)] = 0
	}
	return r
}
