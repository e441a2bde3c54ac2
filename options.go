package omrscan

// pipelineOptions holds the configuration consumed at pipeline
// construction: grid dimensions, credit policy, and tuning overrides for
// the normalizer and extractor.
type pipelineOptions struct {
	rows int
	cols int

	policy int // scoring.Policy value, stored as int to keep clone trivial

	// Extractor tuning overrides; negative means "use the default".
	fillThreshold  float64
	insetRatio     float64
	minCircularity float64

	// Normalizer tuning.
	contrastClip float64
	denoise      bool
}

// defaultOptions returns the default pipeline options: the original
// 20-question, 5-subject sheet layout under strict grading.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		rows:           20,
		cols:           5,
		policy:         0, // scoring.Strict
		fillThreshold:  -1,
		insetRatio:     -1,
		minCircularity: -1,
		contrastClip:   -1,
		denoise:        false,
	}
}

// clone creates a copy of the options. All fields are value types, so a
// plain copy is a deep copy; the method exists to keep the chain API's
// immutability explicit in one place.
func (o pipelineOptions) clone() pipelineOptions {
	return o
}
