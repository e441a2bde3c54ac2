// Package batch grades many sheets concurrently and writes the results
// as a flat CSV table, one row per input sheet.
//
// Sheets are independent: each task reads only its own image and the
// shared read-only answer key, so the pool needs no synchronization
// beyond bounding concurrency. A failure in one sheet never aborts the
// batch; it becomes an error-marked report with a zero score.
package batch
