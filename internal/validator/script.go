package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/codequest-dev/codequest/internal/domain"
	"github.com/codequest-dev/codequest/internal/executor"
	"github.com/dop251/goja"
)

// checkAllScript runs every script requirement. Apart from syntax_valid
// (which compiles) and function_execution (which runs), script checks are
// substring/regex matches over raw source text. They can be fooled by
// comments or string literals containing the keyword; that naive behavior is
// part of the contract and must not be "fixed" with AST matching.
func (v *Validator) checkAllScript(reqs []domain.Requirement, code string) []domain.CheckResult {
	results := make([]domain.CheckResult, 0, len(reqs))
	for _, req := range reqs {
		req := req
		results = append(results, safeCheck(req, func() (bool, string) {
			return v.checkScript(req, code)
		}))
	}
	return results
}

func (v *Validator) checkScript(req domain.Requirement, code string) (bool, string) {
	switch req.Type {
	case domain.ReqSyntaxValid:
		// compile only, never execute
		if _, err := goja.Compile("submission.js", code, false); err != nil {
			return false, fmt.Sprintf("syntax error: %v", err)
		}
		return true, "valid script syntax"

	case domain.ReqContainsKeyword:
		if strings.Contains(code, req.Keyword) {
			return true, fmt.Sprintf("uses %s", req.Keyword)
		}
		return false, fmt.Sprintf("missing %s", req.Keyword)

	case domain.ReqMethodCalled:
		re := regexp.MustCompile(`\.` + regexp.QuoteMeta(req.Method) + `\s*\(`)
		if re.MatchString(code) {
			return true, fmt.Sprintf("calls %s()", req.Method)
		}
		return false, fmt.Sprintf("missing %s() call", req.Method)

	case domain.ReqVariableDeclared:
		re := regexp.MustCompile(`(var|let|const)\s+` + regexp.QuoteMeta(req.Variable) + `\s*=`)
		if re.MatchString(code) {
			return true, fmt.Sprintf("variable %s declared", req.Variable)
		}
		return false, fmt.Sprintf("missing variable %s", req.Variable)

	case domain.ReqFunctionExecution:
		combined := code + "\n" + req.TestCode
		res := v.exec.Execute(combined, executor.LanguageScript)
		if res.Success && strings.TrimSpace(res.Output) == strings.TrimSpace(req.Expected) {
			return true, "function works correctly"
		}
		if res.Error != "" {
			return false, res.Error
		}
		return false, failMessage(req)

	default:
		return false, fmt.Sprintf("unknown script requirement %q", req.Type)
	}
}
