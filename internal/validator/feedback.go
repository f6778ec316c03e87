package validator

import (
	"fmt"
	"strings"

	"github.com/codequest-dev/codequest/internal/domain"
)

// Feedback renders a validation result as human-readable multi-line text for
// the UI layer. It always explains why a submission failed: every missing
// requirement is listed with its failure message.
func Feedback(result domain.ValidationResult) string {
	var b strings.Builder

	earned := result.EarnedPoints()
	total := result.TotalPoints()
	pct := 100
	if total > 0 {
		pct = int(float64(earned)/float64(total)*100 + 0.5)
	}
	fmt.Fprintf(&b, "Score: %d/%d (%d%%)\n\n", earned, total, pct)

	var passed, failed []domain.CheckResult
	for _, d := range result.Details {
		if d.Passed {
			passed = append(passed, d)
		} else {
			failed = append(failed, d)
		}
	}

	if len(passed) > 0 {
		b.WriteString("Completed requirements:\n")
		for _, d := range passed {
			fmt.Fprintf(&b, "  %s\n", d.Message)
		}
		b.WriteString("\n")
	}

	if len(failed) > 0 {
		b.WriteString("Missing requirements:\n")
		for _, d := range failed {
			fmt.Fprintf(&b, "  %s\n", d.Message)
		}
		b.WriteString("\n")
	}

	switch {
	case pct == 100:
		b.WriteString("Excellent work! Challenge completed successfully!")
	case pct >= 80:
		b.WriteString("Good job! Complete the remaining requirements to finish.")
	default:
		b.WriteString("Keep working! Review the requirements and try again.")
	}

	return b.String()
}
