package executor

import (
	"errors"
	"strings"
	"time"

	"github.com/dop251/goja"
	"golang.org/x/net/html"
)

// run executes or validates code according to its language. It never panics
// out: every failure is a Result with Success=false.
func run(code string, lang Language, timeout time.Duration) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Error: panicMessage(r), Success: false}
		}
	}()

	switch lang {
	case LanguageScript:
		return runScript(code, timeout)
	case LanguageMarkup:
		return validateMarkup(code)
	case LanguageStylesheet:
		return validateStylesheet(code)
	default:
		return Result{Error: "Unsupported language", Success: false}
	}
}

// runScript executes a script in a fresh runtime with console output captured
// into an ordered buffer. The runtime is interrupted when the bound elapses;
// this is a real cancellation, not just an abandoned goroutine.
func runScript(code string, timeout time.Duration) Result {
	vm := goja.New()
	var lines []string

	capture := func(prefix string) func(call goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			lines = append(lines, prefix+strings.Join(parts, " "))
			return goja.Undefined()
		}
	}

	console := vm.NewObject()
	console.Set("log", capture(""))
	console.Set("error", capture("ERROR: "))
	console.Set("warn", capture("WARN: "))
	vm.Set("console", console)

	watchdog := time.AfterFunc(timeout, func() {
		vm.Interrupt(ErrTimeout)
	})
	defer watchdog.Stop()

	value, err := vm.RunString(code)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return Result{Error: ErrTimeout, Success: false}
		}
		return Result{Error: err.Error(), Success: false}
	}

	output := strings.Join(lines, "\n")
	if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
		if output != "" {
			output += "\n"
		}
		output += "Return value: " + value.String()
	}
	return Result{Output: output, Success: true}
}

// validateMarkup parses the code as an HTML document and reports
// parser-level errors.
func validateMarkup(code string) Result {
	_, err := html.Parse(strings.NewReader(code))
	if err != nil {
		return Result{Valid: false, ErrorCount: 1, Error: err.Error(), Success: true}
	}
	return Result{Valid: true, Success: true}
}

// validateStylesheet counts rule blocks with a brace-matching scan. It never
// fails: unbalanced braces make the sheet invalid, not an error.
func validateStylesheet(code string) Result {
	depth := 0
	rules := 0
	balanced := true
	for _, c := range code {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				balanced = false
				depth = 0
			} else if depth == 0 {
				rules++
			}
		}
	}
	return Result{Valid: balanced && depth == 0, RuleCount: rules, Success: true}
}

func panicMessage(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "execution panic"
}
