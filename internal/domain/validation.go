package domain

// PassThreshold is the weighted score fraction a submission must reach to
// count as a valid solution.
const PassThreshold = 0.70

// CheckResult is the outcome of a single requirement check
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	Points  int    `json:"points"`
}

// ValidationResult is produced for every submission
type ValidationResult struct {
	Score     float64       `json:"score"` // weighted fraction in [0,1]
	Valid     bool          `json:"valid"` // score >= PassThreshold
	Message   string        `json:"message"`
	Details   []CheckResult `json:"details"`
	XPAwarded int           `json:"xp_awarded"`
}

// EarnedPoints sums the weights of passed checks.
func (v ValidationResult) EarnedPoints() int {
	earned := 0
	for _, d := range v.Details {
		if d.Passed {
			earned += d.Points
		}
	}
	return earned
}

// TotalPoints sums the weights of all checks.
func (v ValidationResult) TotalPoints() int {
	total := 0
	for _, d := range v.Details {
		total += d.Points
	}
	return total
}
