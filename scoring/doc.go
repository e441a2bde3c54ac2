// Package scoring turns a mark matrix and an answer key into a graded
// per-sheet report, and folds completed reports into batch-level summary
// statistics.
//
// Credit rules are selected by an explicit Policy rather than by separate
// scoring entry points, so two calls with the same policy can never drift
// apart in behavior.
package scoring
