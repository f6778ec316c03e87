package executor

import (
	"strings"
	"testing"
	"time"
)

func TestExecute_ScriptConsoleCapture(t *testing.T) {
	e := New(DefaultConfig())

	res := e.Execute(`console.log("hello", "world"); console.error("boom"); console.warn("careful");`, LanguageScript)
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Error)
	}

	want := "hello world\nERROR: boom\nWARN: careful"
	if res.Output != want {
		t.Errorf("Output = %q, want %q", res.Output, want)
	}
}

func TestExecute_ScriptReturnValue(t *testing.T) {
	e := New(DefaultConfig())

	res := e.Execute(`1 + 2`, LanguageScript)
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Error)
	}
	if res.Output != "Return value: 3" {
		t.Errorf("Output = %q, want %q", res.Output, "Return value: 3")
	}
}

func TestExecute_ScriptOutputAndReturnValue(t *testing.T) {
	e := New(DefaultConfig())

	res := e.Execute(`console.log("x"); "done"`, LanguageScript)
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Error)
	}
	if res.Output != "x\nReturn value: done" {
		t.Errorf("Output = %q", res.Output)
	}
}

func TestExecute_ScriptUndefinedResult(t *testing.T) {
	e := New(DefaultConfig())

	res := e.Execute(`var x = 1;`, LanguageScript)
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Error)
	}
	if strings.Contains(res.Output, "Return value") {
		t.Errorf("Output = %q, undefined result must not be appended", res.Output)
	}
}

func TestExecute_ScriptSyntaxError(t *testing.T) {
	e := New(DefaultConfig())

	res := e.Execute(`function {`, LanguageScript)
	if res.Success {
		t.Fatal("Execute() succeeded on invalid syntax")
	}
	if res.Error == "" {
		t.Error("Error is empty for a syntax error")
	}
}

func TestExecute_ScriptTimeout(t *testing.T) {
	e := New(Config{PoolSize: 1, Timeout: 100 * time.Millisecond, CacheThreshold: 50 * time.Millisecond})

	res := e.Execute(`while (true) {}`, LanguageScript)
	if res.Success {
		t.Fatal("Execute() succeeded on an infinite loop")
	}
	if res.Error != ErrTimeout {
		t.Errorf("Error = %q, want %q", res.Error, ErrTimeout)
	}
}

func TestExecute_PoolRecoversAfterTimeout(t *testing.T) {
	e := New(Config{PoolSize: 1, Timeout: 100 * time.Millisecond, CacheThreshold: 50 * time.Millisecond})

	_ = e.Execute(`while (true) {}`, LanguageScript)

	res := e.Execute(`console.log("alive")`, LanguageScript)
	if !res.Success {
		t.Fatalf("Execute() after timeout failed: %s", res.Error)
	}
	if res.Output != "alive" {
		t.Errorf("Output = %q, want %q", res.Output, "alive")
	}
}

func TestExecute_CachesFastResults(t *testing.T) {
	e := New(DefaultConfig())

	code := `console.log("cached")`
	first := e.Execute(code, LanguageScript)
	if !first.Success {
		t.Fatalf("Execute() failed: %s", first.Error)
	}
	if e.CacheSize() != 1 {
		t.Fatalf("CacheSize() = %d after fast success, want 1", e.CacheSize())
	}

	second := e.Execute(code, LanguageScript)
	if second.Output != first.Output {
		t.Errorf("cached Output = %q, want %q", second.Output, first.Output)
	}
	if e.CacheSize() != 1 {
		t.Errorf("CacheSize() = %d after cache hit, want 1", e.CacheSize())
	}
}

func TestExecute_FailuresNotCached(t *testing.T) {
	e := New(DefaultConfig())

	_ = e.Execute(`throw new Error("nope")`, LanguageScript)
	if e.CacheSize() != 0 {
		t.Errorf("CacheSize() = %d after failure, want 0", e.CacheSize())
	}
}

func TestExecute_CacheKeyedByLanguage(t *testing.T) {
	e := New(DefaultConfig())

	code := `a { color: red; }`
	_ = e.Execute(code, LanguageStylesheet)
	res := e.Execute(code, LanguageMarkup)

	// the markup run must not see the stylesheet result
	if res.RuleCount != 0 {
		t.Errorf("RuleCount = %d on a markup run, want 0", res.RuleCount)
	}
}

func TestExecute_Markup(t *testing.T) {
	e := New(DefaultConfig())

	res := e.Execute(`<html><body><h1>Hi</h1></body></html>`, LanguageMarkup)
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Error)
	}
	if !res.Valid {
		t.Error("Valid = false for well-formed markup")
	}
}

func TestExecute_Stylesheet(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		valid     bool
		ruleCount int
	}{
		{"two rules", `h1 { color: red; } p { margin: 0; }`, true, 2},
		{"nested blocks", `@media screen { h1 { color: red; } }`, true, 1},
		{"unbalanced open", `h1 { color: red;`, false, 0},
		{"unbalanced close", `h1 } color: red;`, false, 0},
		{"empty", ``, true, 0},
	}

	e := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Execute(tt.code, LanguageStylesheet)
			if !res.Success {
				t.Fatalf("Execute() failed: %s", res.Error)
			}
			if res.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", res.Valid, tt.valid)
			}
			if res.RuleCount != tt.ruleCount {
				t.Errorf("RuleCount = %d, want %d", res.RuleCount, tt.ruleCount)
			}
		})
	}
}

func TestExecute_UnsupportedLanguage(t *testing.T) {
	e := New(DefaultConfig())

	res := e.Execute(`whatever`, Language("cobol"))
	if res.Success {
		t.Fatal("Execute() succeeded for an unsupported language")
	}
}

func TestExecute_Deterministic(t *testing.T) {
	e := New(Config{PoolSize: 4, Timeout: time.Second, CacheThreshold: 0})

	code := `var total = 0; for (var i = 1; i <= 10; i++) { total += i; } console.log(total);`
	first := e.Execute(code, LanguageScript)
	for i := 0; i < 5; i++ {
		res := e.Execute(code, LanguageScript)
		if res.Output != first.Output || res.Success != first.Success {
			t.Fatalf("run %d diverged: %+v vs %+v", i, res, first)
		}
	}
	if first.Output != "55" {
		t.Errorf("Output = %q, want %q", first.Output, "55")
	}
}
