package scoring

import (
	"math"
	"time"

	"github.com/tsawler/omrscan/answerkey"
	"github.com/tsawler/omrscan/marks"
)

// Score grades a mark matrix against an answer key under the given
// policy. The matrix and key are read-only; scoring the same inputs twice
// yields identical reports apart from the timestamp.
//
// Per cell: a mark in a correct column earns 1 point; a mark in a wrong
// column earns the policy's partial credit when the question has at least
// one correct column, and nothing when it has none; unmarked cells earn
// nothing. Subject scores sum each column's credit over all rows.
func Score(m *marks.Matrix, key *answerkey.Key, policy Policy) *Report {
	subjectScores := make(map[string]float64, m.Cols)

	for col := 0; col < m.Cols; col++ {
		credit := 0.0
		for row := 0; row < m.Rows; row++ {
			if !m.Marked(row, col) {
				continue
			}
			q := row + 1
			credit += policy.credit(key.IsCorrect(q, col+1), key.HasCorrect(q))
		}
		if policy.integral() {
			credit = math.Round(credit)
		}
		subjectScores[answerkey.OptionLabel(col+1)] = credit
	}

	total := 0.0
	for _, s := range subjectScores {
		total += s
	}

	maxScore := m.Rows * m.Cols
	percentage := 0.0
	if maxScore > 0 {
		percentage = total / float64(maxScore) * 100
	}

	stats := m.Stats()

	return &Report{
		SubjectScores:       subjectScores,
		TotalScore:          total,
		MaxPossibleScore:    maxScore,
		Percentage:          percentage,
		TotalQuestions:      m.Rows,
		TotalSubjects:       m.Cols,
		MultipleSelections:  stats.MultipleSelections,
		UnansweredQuestions: stats.Unanswered,
		Policy:              policy.String(),
		Timestamp:           time.Now(),
	}
}
