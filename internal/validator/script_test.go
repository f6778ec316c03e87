package validator

import (
	"testing"

	"github.com/codequest-dev/codequest/internal/domain"
)

func scriptChallenge(reqs ...domain.Requirement) *domain.ChallengeDefinition {
	return &domain.ChallengeDefinition{
		ID:           "js-test",
		Category:     domain.CategoryScript,
		XP:           100,
		Requirements: reqs,
	}
}

func TestValidate_ScriptSyntax(t *testing.T) {
	v := newTestValidator()
	ch := scriptChallenge(
		domain.Requirement{Type: domain.ReqSyntaxValid, Name: "syntax"},
	)

	if res := v.Validate(ch, `var x = 1;`); !res.Details[0].Passed {
		t.Errorf("valid script rejected: %s", res.Details[0].Message)
	}
	if res := v.Validate(ch, `function {`); res.Details[0].Passed {
		t.Error("invalid script accepted")
	}
}

func TestValidate_ScriptSyntaxDoesNotExecute(t *testing.T) {
	v := newTestValidator()
	ch := scriptChallenge(
		domain.Requirement{Type: domain.ReqSyntaxValid, Name: "syntax"},
	)

	// an infinite loop must pass instantly: the check compiles, never runs
	res := v.Validate(ch, `while (true) {}`)
	if !res.Details[0].Passed {
		t.Errorf("syntax check executed or rejected valid code: %s", res.Details[0].Message)
	}
}

func TestValidate_ScriptContainsKeyword(t *testing.T) {
	v := newTestValidator()
	ch := scriptChallenge(
		domain.Requirement{Type: domain.ReqContainsKeyword, Name: "loop", Keyword: "for"},
	)

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"real loop", `for (var i = 0; i < 3; i++) {}`, true},
		{"keyword in comment still counts", `// use a for loop here`, true},
		{"keyword inside a word still counts", `perform();`, true},
		{"absent", `while (x) {}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(ch, tt.code)
			if res.Details[0].Passed != tt.want {
				t.Errorf("Passed = %v, want %v", res.Details[0].Passed, tt.want)
			}
		})
	}
}

func TestValidate_ScriptMethodCalled(t *testing.T) {
	v := newTestValidator()
	ch := scriptChallenge(
		domain.Requirement{Type: domain.ReqMethodCalled, Name: "push", Method: "push"},
	)

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"called", `list.push(1);`, true},
		{"spaced call", `list.push (1);`, true},
		{"property access only", `var f = list.push;`, false},
		{"bare function", `push(1);`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(ch, tt.code)
			if res.Details[0].Passed != tt.want {
				t.Errorf("Passed = %v, want %v", res.Details[0].Passed, tt.want)
			}
		})
	}
}

func TestValidate_ScriptVariableDeclared(t *testing.T) {
	v := newTestValidator()
	ch := scriptChallenge(
		domain.Requirement{Type: domain.ReqVariableDeclared, Name: "total", Variable: "total"},
	)

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"var", `var total = 0;`, true},
		{"let", `let total = 0;`, true},
		{"const", `const total = 0;`, true},
		{"assignment only", `total = 0;`, false},
		{"declaration without initializer", `var total;`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(ch, tt.code)
			if res.Details[0].Passed != tt.want {
				t.Errorf("Passed = %v, want %v", res.Details[0].Passed, tt.want)
			}
		})
	}
}

func TestValidate_ScriptFunctionExecution(t *testing.T) {
	v := newTestValidator()
	ch := scriptChallenge(
		domain.Requirement{
			Type:     domain.ReqFunctionExecution,
			Name:     "double",
			TestCode: `console.log(double(21));`,
			Expected: "42",
			Message:  "double must double its input",
		},
	)

	res := v.Validate(ch, `function double(n) { return n * 2; }`)
	if !res.Details[0].Passed {
		t.Fatalf("correct function rejected: %s", res.Details[0].Message)
	}

	res = v.Validate(ch, `function double(n) { return n + 2; }`)
	if res.Details[0].Passed {
		t.Error("wrong function accepted")
	}

	res = v.Validate(ch, `var double = null;`)
	if res.Details[0].Passed {
		t.Error("runtime error accepted")
	}
	if res.Details[0].Message == "" {
		t.Error("runtime error produced no message")
	}
}
