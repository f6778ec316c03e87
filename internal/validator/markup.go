package validator

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/codequest-dev/codequest/internal/domain"
)

// checkAllMarkup parses the submission once as an HTML document and runs
// every markup requirement against it by CSS selector.
func (v *Validator) checkAllMarkup(reqs []domain.Requirement, code string) []domain.CheckResult {
	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(code))

	results := make([]domain.CheckResult, 0, len(reqs))
	for _, req := range reqs {
		req := req
		results = append(results, safeCheck(req, func() (bool, string) {
			return checkMarkup(req, code, doc, parseErr)
		}))
	}
	return results
}

func checkMarkup(req domain.Requirement, code string, doc *goquery.Document, parseErr error) (bool, string) {
	// contains_text operates on raw text and survives a parse failure
	if req.Type == domain.ReqContainsText {
		if strings.Contains(strings.ToLower(code), strings.ToLower(req.Expected)) {
			return true, fmt.Sprintf("document contains %q", req.Expected)
		}
		return false, failMessage(req)
	}

	if parseErr != nil {
		return false, fmt.Sprintf("parse error: %v", parseErr)
	}

	switch req.Type {
	case domain.ReqElementExists:
		if doc.Find(req.Selector).Length() > 0 {
			return true, fmt.Sprintf("%s element found", req.Selector)
		}
		return false, failMessage(req)

	case domain.ReqElementCount:
		n := doc.Find(req.Selector).Length()
		if n == req.Count {
			return true, fmt.Sprintf("found %d %s elements", n, req.Selector)
		}
		return false, fmt.Sprintf("expected %d %s elements, found %d", req.Count, req.Selector, n)

	case domain.ReqTextContent:
		sel := doc.Find(req.Selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) == req.Expected {
			return true, "text content matches"
		}
		return false, failMessage(req)

	case domain.ReqAttributeExists:
		sel := doc.Find(req.Selector).First()
		if sel.Length() > 0 {
			if _, ok := sel.Attr(req.Attribute); ok {
				return true, fmt.Sprintf("attribute %s found", req.Attribute)
			}
		}
		return false, fmt.Sprintf("missing %s attribute", req.Attribute)

	case domain.ReqAttributeValue:
		sel := doc.Find(req.Selector).First()
		if sel.Length() > 0 {
			if val, ok := sel.Attr(req.Attribute); ok && val == req.Expected {
				return true, fmt.Sprintf("attribute %s has expected value", req.Attribute)
			}
		}
		return false, failMessage(req)

	default:
		return false, fmt.Sprintf("unknown markup requirement %q", req.Type)
	}
}
