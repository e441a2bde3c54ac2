package scoring

// Band boundaries for the fixed score histogram, applied to TotalScore.
const (
	ExcellentFloor = 70.0
	GoodFloor      = 60.0
	AverageFloor   = 50.0
)

// Summary aggregates a batch of reports. It is a pure fold over completed
// reports; per-sheet scoring needs no cross-sheet state, so sheets can be
// summarized in any order.
type Summary struct {
	Count  int     `json:"count"`
	Failed int     `json:"failed"`
	Mean   float64 `json:"mean_score"`
	Min    float64 `json:"min_score"`
	Max    float64 `json:"max_score"`

	// Fixed score bands: Excellent >= 70, Good 60-69, Average 50-59,
	// Poor below 50.
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Average   int `json:"average"`
	Poor      int `json:"poor"`
}

// Summarize folds a slice of reports into batch statistics. Failed sheets
// are counted and contribute their zero score like any other report, so
// the summary always covers every input sheet.
func Summarize(reports []*Report) Summary {
	s := Summary{Count: len(reports)}
	if len(reports) == 0 {
		return s
	}

	sum := 0.0
	s.Min = reports[0].TotalScore
	s.Max = reports[0].TotalScore

	for _, r := range reports {
		if r.Failed() {
			s.Failed++
		}

		score := r.TotalScore
		sum += score
		if score < s.Min {
			s.Min = score
		}
		if score > s.Max {
			s.Max = score
		}

		switch {
		case score >= ExcellentFloor:
			s.Excellent++
		case score >= GoodFloor:
			s.Good++
		case score >= AverageFloor:
			s.Average++
		default:
			s.Poor++
		}
	}

	s.Mean = sum / float64(len(reports))
	return s
}
