// Package validator scores code submissions against a challenge's
// declarative requirement list. Scoring is deterministic and total: a single
// misbehaving check (bad selector, invalid pattern, panicking parser) is
// recorded as a failed check and never aborts the validation pass.
package validator

import (
	"fmt"
	"math"

	"github.com/codequest-dev/codequest/internal/domain"
	"github.com/codequest-dev/codequest/internal/executor"
)

// Validator evaluates submissions. It is stateless apart from the executor
// used for function_execution checks.
type Validator struct {
	exec *executor.Executor
}

// New creates a validator backed by the given executor.
func New(exec *executor.Executor) *Validator {
	return &Validator{exec: exec}
}

// Validate scores a single-file submission against the challenge's
// requirements and derives score, validity and XP.
func (v *Validator) Validate(ch *domain.ChallengeDefinition, code string) domain.ValidationResult {
	var details []domain.CheckResult
	switch ch.Category {
	case domain.CategoryMarkup:
		details = v.checkAllMarkup(ch.Requirements, code)
	case domain.CategoryStylesheet:
		details = v.checkAllStylesheet(ch.Requirements, code)
	case domain.CategoryScript:
		details = v.checkAllScript(ch.Requirements, code)
	case domain.CategoryProject:
		// a project submitted as a single document is treated as its only file
		details = v.checkAllProject(ch.Requirements, map[string]string{"index.html": code})
	default:
		for _, req := range ch.Requirements {
			details = append(details, domain.CheckResult{
				Name:    req.Name,
				Passed:  false,
				Message: fmt.Sprintf("unknown category %q", ch.Category),
				Points:  req.Weight(),
			})
		}
	}
	return score(ch, details)
}

// ValidateProject scores a multi-file submission.
func (v *Validator) ValidateProject(ch *domain.ChallengeDefinition, files map[string]string) domain.ValidationResult {
	return score(ch, v.checkAllProject(ch.Requirements, files))
}

// score converts per-check results into the weighted validation result.
// Zero requirements score 1.0: this is the documented degenerate case.
func score(ch *domain.ChallengeDefinition, details []domain.CheckResult) domain.ValidationResult {
	total := 0
	earned := 0
	passed := 0
	for _, d := range details {
		total += d.Points
		if d.Passed {
			earned += d.Points
			passed++
		}
	}

	s := 1.0
	if total > 0 {
		s = float64(earned) / float64(total)
	}

	res := domain.ValidationResult{
		Score:     s,
		Valid:     s >= domain.PassThreshold,
		Details:   details,
		XPAwarded: int(math.Floor(float64(ch.XP) * s)),
	}
	res.Message = scoreMessage(s, passed, len(details))
	return res
}

func scoreMessage(s float64, passed, total int) string {
	if total == 0 {
		return "No requirements to check"
	}
	pct := int(math.Round(s * 100))
	if passed == total {
		return fmt.Sprintf("All %d checks passed (%d%%)", total, pct)
	}
	return fmt.Sprintf("Passed %d of %d checks (%d%%)", passed, total, pct)
}

// safeCheck runs a single check function, converting a panic into a failed
// check so one bad requirement cannot take down the pass.
func safeCheck(req domain.Requirement, fn func() (bool, string)) (result domain.CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.CheckResult{
				Name:    req.Name,
				Passed:  false,
				Message: fmt.Sprintf("check error: %v", r),
				Points:  req.Weight(),
			}
		}
	}()

	passed, message := fn()
	return domain.CheckResult{
		Name:    req.Name,
		Passed:  passed,
		Message: message,
		Points:  req.Weight(),
	}
}

// failMessage returns the requirement's failure explanation, falling back to
// a generic one so the caller is never left without a reason.
func failMessage(req domain.Requirement) string {
	if req.Message != "" {
		return req.Message
	}
	return fmt.Sprintf("requirement %q not met", req.Name)
}
