package validator

import (
	"fmt"

	"github.com/codequest-dev/codequest/internal/domain"
)

// checkAllProject evaluates composite requirements over a filename to
// content map.
func (v *Validator) checkAllProject(reqs []domain.Requirement, files map[string]string) []domain.CheckResult {
	results := make([]domain.CheckResult, 0, len(reqs))
	for _, req := range reqs {
		req := req
		results = append(results, safeCheck(req, func() (bool, string) {
			return v.checkProject(req, files)
		}))
	}
	return results
}

func (v *Validator) checkProject(req domain.Requirement, files map[string]string) (bool, string) {
	switch req.Type {
	case domain.ReqFileExists:
		if _, ok := files[req.Filename]; ok {
			return true, fmt.Sprintf("file %s exists", req.Filename)
		}
		return false, fmt.Sprintf("missing file: %s", req.Filename)

	case domain.ReqHTMLStructure:
		content, ok := files["index.html"]
		if !ok {
			return false, "missing index.html file"
		}
		if allPassed(v.checkAllMarkup(req.Tests, content)) {
			return true, "HTML structure correct"
		}
		return false, "HTML structure incomplete"

	case domain.ReqCSSStyling:
		content, ok := firstOf(files, "style.css", "styles.css")
		if !ok {
			return false, "missing CSS file"
		}
		if allPassed(v.checkAllStylesheet(req.Tests, content)) {
			return true, "CSS styling correct"
		}
		return false, "CSS styling incomplete"

	case domain.ReqJSFunctionality:
		content, ok := firstOf(files, "script.js", "main.js")
		if !ok {
			return false, "missing JavaScript file"
		}
		if allPassed(v.checkAllScript(req.Tests, content)) {
			return true, "JavaScript functionality correct"
		}
		return false, "JavaScript functionality incomplete"

	default:
		return false, fmt.Sprintf("unknown project requirement %q", req.Type)
	}
}

func allPassed(results []domain.CheckResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func firstOf(files map[string]string, names ...string) (string, bool) {
	for _, name := range names {
		if content, ok := files[name]; ok {
			return content, true
		}
	}
	return "", false
}
