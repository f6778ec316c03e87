package domain

import "fmt"

// Category identifies the language a challenge targets
type Category string

const (
	CategoryMarkup     Category = "markup"
	CategoryStylesheet Category = "stylesheet"
	CategoryScript     Category = "script"
	CategoryProject    Category = "project"
)

// Difficulty represents challenge difficulty level
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// RequirementType discriminates the Requirement variant
type RequirementType string

// Markup requirement types
const (
	ReqElementExists   RequirementType = "element_exists"
	ReqElementCount    RequirementType = "element_count"
	ReqTextContent     RequirementType = "text_content"
	ReqAttributeExists RequirementType = "attribute_exists"
	ReqAttributeValue  RequirementType = "attribute_value"
	ReqContainsText    RequirementType = "contains_text"
)

// Stylesheet requirement types
const (
	ReqPropertyExists RequirementType = "property_exists"
	ReqPropertyValue  RequirementType = "property_value"
	ReqSelectorExists RequirementType = "selector_exists"
	ReqContainsRule   RequirementType = "contains_rule"
	ReqValidSyntax    RequirementType = "valid_syntax"
)

// Script requirement types
const (
	ReqSyntaxValid       RequirementType = "syntax_valid"
	ReqContainsKeyword   RequirementType = "contains_keyword"
	ReqMethodCalled      RequirementType = "method_called"
	ReqVariableDeclared  RequirementType = "variable_declared"
	ReqFunctionExecution RequirementType = "function_execution"
)

// Project requirement types (composite checks over a file set)
const (
	ReqFileExists      RequirementType = "file_exists"
	ReqHTMLStructure   RequirementType = "html_structure"
	ReqCSSStyling      RequirementType = "css_styling"
	ReqJSFunctionality RequirementType = "js_functionality"
)

// DefaultPoints is the weight of a requirement that does not declare one.
// Project-level composite requirements default higher.
const (
	DefaultPoints        = 10
	DefaultProjectPoints = 20
)

// Requirement is a single declarative check against submitted code.
// Which fields are meaningful depends on Type.
type Requirement struct {
	Type    RequirementType `json:"type" yaml:"type"`
	Name    string          `json:"name" yaml:"name"`
	Message string          `json:"message" yaml:"message"`
	Points  int             `json:"points,omitempty" yaml:"points,omitempty"`

	Selector  string `json:"selector,omitempty" yaml:"selector,omitempty"`
	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Expected  string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Count     int    `json:"count,omitempty" yaml:"count,omitempty"`

	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	Rule     string `json:"rule,omitempty" yaml:"rule,omitempty"`

	Keyword  string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Method   string `json:"method,omitempty" yaml:"method,omitempty"`
	Variable string `json:"variable,omitempty" yaml:"variable,omitempty"`
	TestCode string `json:"test_code,omitempty" yaml:"test_code,omitempty"`

	Filename string        `json:"filename,omitempty" yaml:"filename,omitempty"`
	Tests    []Requirement `json:"tests,omitempty" yaml:"tests,omitempty"`
}

// Weight returns the requirement's point value, applying the default
// for requirements that do not declare one.
func (r Requirement) Weight() int {
	if r.Points > 0 {
		return r.Points
	}
	switch r.Type {
	case ReqFileExists, ReqHTMLStructure, ReqCSSStyling, ReqJSFunctionality:
		return DefaultProjectPoints
	}
	return DefaultPoints
}

// ChallengeDefinition is an immutable challenge loaded from static data
type ChallengeDefinition struct {
	ID           string            `json:"id" yaml:"id"`
	Title        string            `json:"title" yaml:"title"`
	Description  string            `json:"description" yaml:"description"`
	Category     Category          `json:"category" yaml:"category"`
	Difficulty   Difficulty        `json:"difficulty" yaml:"difficulty"`
	XP           int               `json:"xp" yaml:"xp"`
	StarterCode  string            `json:"starter_code,omitempty" yaml:"starter_code,omitempty"`
	Requirements []Requirement     `json:"requirements" yaml:"requirements"`
	Hints        []string          `json:"hints,omitempty" yaml:"hints,omitempty"`
	Solution     map[string]string `json:"solution,omitempty" yaml:"solution,omitempty"`
}

// Validate checks definition invariants. A challenge with zero requirements
// is degenerate but allowed: it always scores 1.0.
func (c *ChallengeDefinition) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: challenge id is empty", ErrInvalidInput)
	}
	switch c.Category {
	case CategoryMarkup, CategoryStylesheet, CategoryScript, CategoryProject:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c.Category)
	}
	if c.XP <= 0 {
		return fmt.Errorf("%w: challenge %s has non-positive xp", ErrInvalidInput, c.ID)
	}
	return nil
}

// Hint returns the hint at the given reveal index.
func (c *ChallengeDefinition) Hint(index int) (string, error) {
	if index < 0 || index >= len(c.Hints) {
		return "", ErrHintNotFound
	}
	return c.Hints[index], nil
}
