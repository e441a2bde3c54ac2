// Package marks partitions a rectified sheet into a fixed rows x columns
// grid and classifies every cell as marked or unmarked based on its ink
// fill ratio, with an optional circularity gate to reject grid-line
// artifacts.
//
// Ambiguous cells are never an error here: a row with zero or multiple
// marks is recorded as-is and surfaced through Matrix statistics so the
// scorer and downstream consumers can apply their own policy.
package marks
