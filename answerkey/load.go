package answerkey

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// QuestionLabel and OptionLabel format the record labels used in key
// files. Both use 1-based indices.
func QuestionLabel(q int) string { return fmt.Sprintf("Q%d", q) }

// OptionLabel formats the record label for an option column.
func OptionLabel(col int) string { return fmt.Sprintf("Subject_%d", col) }

// Load reads an answer key file, dispatching on extension: ".json" for
// the JSON record form, ".csv" for the tabular form.
func Load(path string) (*Key, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("answerkey: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(f)
	case ".csv":
		return LoadCSV(f)
	default:
		return nil, fmt.Errorf("answerkey: unsupported key format %q (use .json or .csv)", filepath.Ext(path))
	}
}

// LoadJSON parses the JSON record form:
//
//	{"Q1": {"Subject_1": 1, "Subject_2": 0}, "Q2": {...}}
//
// Indicator values other than 1 are treated as not-correct.
func LoadJSON(r io.Reader) (*Key, error) {
	var records map[string]map[string]int
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("answerkey: invalid JSON key: %w", err)
	}

	correct := make(map[int][]int, len(records))
	for qLabel, options := range records {
		q, err := parseQuestionLabel(qLabel)
		if err != nil {
			return nil, err
		}
		var cols []int
		for oLabel, indicator := range options {
			col, err := parseOptionLabel(oLabel)
			if err != nil {
				return nil, err
			}
			if indicator == 1 {
				cols = append(cols, col)
			}
		}
		correct[q] = cols
	}
	return New(correct), nil
}

// LoadCSV parses the tabular form: a header row of "Question" followed by
// option labels, then one row per question with 0/1 indicators.
func LoadCSV(r io.Reader) (*Key, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("answerkey: invalid CSV key: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("answerkey: CSV key needs a header and at least one question row")
	}

	header := rows[0]
	correct := make(map[int][]int, len(rows)-1)

	for _, row := range rows[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		q, err := parseQuestionLabel(row[0])
		if err != nil {
			return nil, err
		}

		var cols []int
		for i := 1; i < len(row) && i < len(header); i++ {
			col, err := parseOptionLabel(header[i])
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(row[i]) == "1" {
				cols = append(cols, col)
			}
		}
		correct[q] = cols
	}
	return New(correct), nil
}

// MarshalJSON serializes the key back to its JSON record form, emitting a
// 0/1 indicator for every option column up to the key's option count so
// the round trip preserves the correct sets exactly.
func (k *Key) MarshalJSON() ([]byte, error) {
	records := make(map[string]map[string]int, k.questions)
	for q := 1; q <= k.questions; q++ {
		options := make(map[string]int, k.options)
		for col := 1; col <= k.options; col++ {
			indicator := 0
			if k.IsCorrect(q, col) {
				indicator = 1
			}
			options[OptionLabel(col)] = indicator
		}
		records[QuestionLabel(q)] = options
	}
	return json.Marshal(records)
}

// Save writes the key to path in the JSON record form.
func (k *Key) Save(path string) error {
	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return fmt.Errorf("answerkey: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Sample generates a random rows x cols key for testing and demo use.
// Each indicator is an independent coin flip, so multi-correct and
// zero-correct questions both occur.
func Sample(rows, cols int, rng *rand.Rand) *Key {
	correct := make(map[int][]int, rows)
	for q := 1; q <= rows; q++ {
		var marked []int
		for col := 1; col <= cols; col++ {
			if rng.Intn(2) == 1 {
				marked = append(marked, col)
			}
		}
		correct[q] = marked
	}

	k := New(correct)
	// Pin the option count to the grid width even when the last column
	// never came up correct, so Validate and MarshalJSON see the full grid.
	if k.options < cols {
		k.options = cols
	}
	if k.questions < rows {
		k.questions = rows
	}
	return k
}

func parseQuestionLabel(label string) (int, error) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "Q")
	q, err := strconv.Atoi(s)
	if err != nil || q < 1 {
		return 0, fmt.Errorf("answerkey: invalid question label %q", label)
	}
	return q, nil
}

func parseOptionLabel(label string) (int, error) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "Subject_")
	col, err := strconv.Atoi(s)
	if err != nil || col < 1 {
		return 0, fmt.Errorf("answerkey: invalid option label %q", label)
	}
	return col, nil
}
