// Package executor provides isolated, time-bounded execution of user code.
// A fixed pool of execution contexts bounds concurrency; when every context
// is busy the code runs directly on the caller's goroutine instead. That
// degradation is intentional: a submission is never rejected because the pool
// is saturated.
package executor

import (
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Language selects the execution/validation mode for a piece of code.
type Language string

const (
	LanguageScript     Language = "script"
	LanguageMarkup     Language = "markup"
	LanguageStylesheet Language = "stylesheet"
)

// ErrTimeout is the error text reported for executions exceeding the bound.
const ErrTimeout = "Execution timeout"

// Result is the outcome of one execution.
type Result struct {
	// Output is the captured console output for script runs, with the return
	// value appended when the program produced one.
	Output string `json:"output,omitempty"`
	// Valid reports parser-level validity for markup and stylesheet runs.
	Valid bool `json:"valid"`
	// RuleCount is the number of rule blocks found in a stylesheet run.
	RuleCount int `json:"rule_count,omitempty"`
	// ErrorCount is the number of parser errors found in a markup run.
	ErrorCount int           `json:"error_count,omitempty"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Config holds executor tuning knobs.
type Config struct {
	PoolSize       int
	Timeout        time.Duration
	CacheThreshold time.Duration // only executions faster than this are cached
}

// DefaultConfig returns the reference configuration: four concurrent
// contexts, a five second execution bound and a 50ms cache fast-path.
func DefaultConfig() Config {
	return Config{
		PoolSize:       4,
		Timeout:        5 * time.Second,
		CacheThreshold: 50 * time.Millisecond,
	}
}

// context is one slot of the execution pool. Only the dispatcher mutates the
// busy flag, under the pool mutex.
type context struct {
	busy bool
}

// Executor dispatches code to a bounded pool of execution contexts and caches
// fast successful results for the lifetime of the process.
type Executor struct {
	cfg Config

	poolMu sync.Mutex
	pool   []*context

	cacheMu sync.RWMutex
	cache   map[string]Result
}

// New creates an executor with the given configuration.
func New(cfg Config) *Executor {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultConfig().PoolSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	pool := make([]*context, cfg.PoolSize)
	for i := range pool {
		pool[i] = &context{}
	}
	return &Executor{
		cfg:   cfg,
		pool:  pool,
		cache: make(map[string]Result),
	}
}

// Execute runs code and returns its result. Identical submissions that
// previously completed quickly are served from the cache.
func (e *Executor) Execute(code string, lang Language) Result {
	key := cacheKey(lang, code)
	if r, ok := e.cached(key); ok {
		return r
	}

	start := time.Now()
	var res Result
	if slot := e.acquire(); slot != nil {
		res = e.executePooled(slot, code, lang)
	} else {
		res = run(code, lang, e.cfg.Timeout)
	}
	res.Duration = time.Since(start)

	if res.Success && res.Duration < e.cfg.CacheThreshold {
		e.cacheMu.Lock()
		e.cache[key] = res
		e.cacheMu.Unlock()
	}
	return res
}

// executePooled runs code on a dedicated goroutine and waits for it within
// the configured bound. On timeout the caller gets a failure result and the
// context is freed for reuse; the runtime itself is interrupted, though the
// goroutine may take a moment longer to observe the interrupt and exit.
func (e *Executor) executePooled(slot *context, code string, lang Language) Result {
	done := make(chan Result, 1)
	go func() {
		done <- run(code, lang, e.cfg.Timeout)
	}()

	select {
	case r := <-done:
		e.release(slot)
		return r
	case <-time.After(e.cfg.Timeout + 100*time.Millisecond):
		e.release(slot)
		return Result{Error: ErrTimeout, Success: false}
	}
}

func (e *Executor) acquire() *context {
	e.poolMu.Lock()
	defer e.poolMu.Unlock()
	for _, slot := range e.pool {
		if !slot.busy {
			slot.busy = true
			return slot
		}
	}
	return nil
}

func (e *Executor) release(slot *context) {
	e.poolMu.Lock()
	slot.busy = false
	e.poolMu.Unlock()
}

func (e *Executor) cached(key string) (Result, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	r, ok := e.cache[key]
	return r, ok
}

// CacheSize reports the number of cached results.
func (e *Executor) CacheSize() int {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	return len(e.cache)
}

func cacheKey(lang Language, code string) string {
	return fmt.Sprintf("%s:%x", lang, xxhash.Sum64String(code))
}
