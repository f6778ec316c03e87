package validator

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/codequest-dev/codequest/internal/domain"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// checkAllStylesheet runs every stylesheet requirement. Stylesheet checks
// deliberately operate on raw text, not a parsed object model: property and
// selector matching is literal substring/pattern work and stays that way for
// compatibility with existing challenge data.
func (v *Validator) checkAllStylesheet(reqs []domain.Requirement, code string) []domain.CheckResult {
	normalized := strings.ToLower(whitespaceRe.ReplaceAllString(code, " "))

	results := make([]domain.CheckResult, 0, len(reqs))
	for _, req := range reqs {
		req := req
		results = append(results, safeCheck(req, func() (bool, string) {
			return checkStylesheet(req, code, normalized)
		}))
	}
	return results
}

func checkStylesheet(req domain.Requirement, code, normalized string) (bool, string) {
	switch req.Type {
	case domain.ReqPropertyExists:
		if strings.Contains(code, req.Property+":") {
			return true, fmt.Sprintf("%s property used", req.Property)
		}
		return false, fmt.Sprintf("missing %s property", req.Property)

	case domain.ReqPropertyValue:
		// literal pattern match on the declared value, not value equivalence:
		// "color: red" does not match "#ff0000"
		re := regexp.MustCompile(`(?i)` + req.Property + `\s*:\s*` + regexp.QuoteMeta(req.Expected))
		if re.MatchString(code) {
			return true, fmt.Sprintf("%s: %s", req.Property, req.Expected)
		}
		return false, failMessage(req)

	case domain.ReqSelectorExists:
		if strings.Contains(normalized, strings.ToLower(req.Selector)) {
			return true, fmt.Sprintf("selector %s found", req.Selector)
		}
		return false, fmt.Sprintf("missing selector %s", req.Selector)

	case domain.ReqContainsRule:
		if strings.Contains(normalized, strings.ToLower(req.Rule)) {
			return true, fmt.Sprintf("rule %s found", req.Rule)
		}
		return false, failMessage(req)

	case domain.ReqValidSyntax:
		if err := scanStylesheet(code); err != nil {
			return false, fmt.Sprintf("syntax error: %v", err)
		}
		return true, "valid stylesheet syntax"

	default:
		return false, fmt.Sprintf("unknown stylesheet requirement %q", req.Type)
	}
}

// scanStylesheet tokenizes the sheet end to end, the Go equivalent of
// attaching the text to a live stylesheet and seeing whether it throws.
func scanStylesheet(code string) error {
	lexer := css.NewLexer(parse.NewInputString(code))
	for {
		tt, _ := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != io.EOF {
				return err
			}
			return nil
		}
	}
}
