package answerkey

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDimensionMismatch is returned when a key's question or option counts
// do not line up with the grid dimensions the extractor will use. It is a
// configuration error: it must surface before any sheet is processed.
var ErrDimensionMismatch = errors.New("answerkey: key dimensions do not match grid")

// Key is an immutable answer key. Build one with the loaders in this
// package or with New.
type Key struct {
	correct   map[int]map[int]bool
	questions int // highest question index present
	options   int // highest option index seen across all questions
}

// New builds a Key from a map of 1-indexed question numbers to slices of
// 1-indexed correct option columns. Questions with no correct option may
// be included with an empty slice.
func New(correct map[int][]int) *Key {
	k := &Key{correct: make(map[int]map[int]bool, len(correct))}

	for q, cols := range correct {
		if q < 1 {
			continue
		}
		if q > k.questions {
			k.questions = q
		}
		set := make(map[int]bool, len(cols))
		for _, c := range cols {
			if c < 1 {
				continue
			}
			set[c] = true
			if c > k.options {
				k.options = c
			}
		}
		k.correct[q] = set
	}
	return k
}

// Questions returns the highest question index in the key.
func (k *Key) Questions() int {
	return k.questions
}

// Options returns the highest option index marked correct anywhere in the
// key.
func (k *Key) Options() int {
	return k.options
}

// IsCorrect reports whether option col is correct for question q.
// Both indices are 1-based.
func (k *Key) IsCorrect(q, col int) bool {
	return k.correct[q][col]
}

// HasCorrect reports whether question q has at least one correct option.
func (k *Key) HasCorrect(q int) bool {
	return len(k.correct[q]) > 0
}

// Correct returns the sorted correct option columns for question q.
func (k *Key) Correct(q int) []int {
	set := k.correct[q]
	if len(set) == 0 {
		return nil
	}
	cols := make([]int, 0, len(set))
	for c := range set {
		cols = append(cols, c)
	}
	sort.Ints(cols)
	return cols
}

// Validate confirms the key is consistent with a rows x cols grid: the
// key must not reference questions beyond rows or options beyond cols,
// and must define every question the grid will produce.
func (k *Key) Validate(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: invalid grid %dx%d", ErrDimensionMismatch, rows, cols)
	}
	if k.questions > rows {
		return fmt.Errorf("%w: key has %d questions, grid has %d rows", ErrDimensionMismatch, k.questions, rows)
	}
	if k.questions < rows {
		return fmt.Errorf("%w: key covers %d questions, grid expects %d", ErrDimensionMismatch, k.questions, rows)
	}
	if k.options > cols {
		return fmt.Errorf("%w: key references option %d, grid has %d columns", ErrDimensionMismatch, k.options, cols)
	}
	return nil
}
