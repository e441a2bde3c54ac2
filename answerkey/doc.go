// Package answerkey loads and validates the answer key a batch of sheets
// is graded against. A key maps each 1-indexed question to the set of
// 1-indexed option columns considered correct; a question may have zero,
// one, or several correct options.
//
// The on-disk form is the record layout produced by the external
// spreadsheet converter: question labels "Q<n>" mapping option labels
// "Subject_<m>" to 0/1 indicators, either as a JSON object or as a CSV
// table with one question per row.
package answerkey
