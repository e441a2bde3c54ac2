package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/tsawler/omrscan/answerkey"
	"github.com/tsawler/omrscan/scoring"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var bom = []byte{0xEF, 0xBB, 0xBF}

// fixedColumns is the leading CSV header; one "Subject_<m>" column per
// option follows it.
var fixedColumns = []string{
	"Sheet ID",
	"Image Path",
	"Total Score",
	"Max Possible Score",
	"Percentage",
	"Multiple Selections",
	"Unanswered Questions",
	"Policy",
	"Timestamp",
	"Error",
}

// Writer exports reports as a flat CSV table, one row per sheet.
type Writer struct {
	csv      *csv.Writer
	subjects int
	wroteHdr bool
}

// NewWriter creates a Writer emitting subjects per-column score fields.
func NewWriter(w io.Writer, subjects int) *Writer {
	return &Writer{csv: csv.NewWriter(w), subjects: subjects}
}

// WriteHeader writes the BOM-free header row. It is called automatically
// by the first Write.
func (w *Writer) WriteHeader() error {
	if w.wroteHdr {
		return nil
	}
	w.wroteHdr = true

	header := append([]string{}, fixedColumns...)
	for col := 1; col <= w.subjects; col++ {
		header = append(header, answerkey.OptionLabel(col))
	}
	return w.csv.Write(header)
}

// Write appends one report row.
func (w *Writer) Write(r *scoring.Report) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}

	row := []string{
		r.SheetID,
		r.SheetPath,
		formatScore(r.TotalScore),
		strconv.Itoa(r.MaxPossibleScore),
		strconv.FormatFloat(r.Percentage, 'f', 1, 64),
		strconv.Itoa(r.MultipleSelections),
		strconv.Itoa(r.UnansweredQuestions),
		r.Policy,
		r.Timestamp.Format(time.RFC3339),
		r.Err,
	}
	for col := 1; col <= w.subjects; col++ {
		row = append(row, formatScore(r.SubjectScore(col)))
	}
	return w.csv.Write(row)
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// WriteFile saves a batch result to a CSV file, prefixed with a UTF-8
// BOM so spreadsheet applications detect the encoding.
func WriteFile(path string, res *Result, subjects int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(bom); err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	w := NewWriter(f, subjects)
	for _, r := range res.Reports {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	return f.Close()
}

func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
