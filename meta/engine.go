package meta

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coregx/mindfa/regex"
)

// Engine answers membership queries and memoizes the most recently
// compiled pattern.
//
// The cache holds exactly one compiled pattern, keyed by the canonical
// rendering of the regex. A query for the cached pattern reuses it; a query
// for any other pattern compiles it and, on success, replaces the slot. A
// failed compilation leaves the slot unchanged.
//
// An Engine is safe for concurrent use. The slot is guarded by a mutex, so
// callers alternating between different patterns serialize on
// recompilation; callers that need several patterns hot at once should own
// an Engine each, or keep the *Prog returned by Compile.
type Engine struct {
	config Config
	logger *slog.Logger

	mu     sync.Mutex
	cached *Prog

	stats Stats
}

// Stats tracks engine activity.
type Stats struct {
	// Compilations counts pipeline runs caused by cache misses.
	Compilations uint64

	// CompileErrors counts cache misses whose compilation failed.
	CompileErrors uint64

	// CacheHits counts queries served by the cached pattern.
	CacheHits uint64

	// LiteralFastPath counts words accepted by the Aho-Corasick searcher
	// without walking the DFA.
	LiteralFastPath uint64

	// ASCIIScans counts words scanned through the dense ASCII table.
	ASCIIScans uint64
}

// NewEngine creates an engine with the given configuration.
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		config: config,
		logger: config.logger(),
	}
	e.logger.Debug("meta: engine created", slog.String("config", config.String()))
	return e, nil
}

// NewDefaultEngine creates an engine with DefaultConfig.
func NewDefaultEngine() *Engine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		// DefaultConfig always validates
		panic(err)
	}
	return e
}

// IsMatch reports whether the whole word belongs to the language of re.
//
// The pattern is compiled on the first query and reused while subsequent
// queries render to the same canonical string. Errors come from
// compilation: ErrNilRegex, nfa compile errors, or
// dfa.ErrStateLimitExceeded when Config.MaxDFAStates is set.
//
// Example:
//
//	engine := meta.NewDefaultEngine()
//	re := regex.Concat{Left: regex.Star{Sub: regex.Union{Left: regex.Char{C: 'a'}, Right: regex.Char{C: 'b'}}}, Right: regex.Char{C: 'c'}}
//	ok, err := engine.IsMatch(re, "aabbc") // true, nil
func (e *Engine) IsMatch(re regex.Regex, word string) (bool, error) {
	p, err := e.lookup(re)
	if err != nil {
		return false, err
	}

	matched, viaLiteral, viaASCII := p.scan(word)
	if viaLiteral {
		atomic.AddUint64(&e.stats.LiteralFastPath, 1)
	}
	if viaASCII {
		atomic.AddUint64(&e.stats.ASCIIScans, 1)
	}
	return matched, nil
}

// MustMatch is like IsMatch but panics if the pattern fails to compile.
func (e *Engine) MustMatch(re regex.Regex, word string) bool {
	matched, err := e.IsMatch(re, word)
	if err != nil {
		panic("meta: IsMatch: " + err.Error())
	}
	return matched
}

// Compile runs the pipeline for re without consulting or updating the
// cache.
func (e *Engine) Compile(re regex.Regex) (*Prog, error) {
	return compile(re, e.config)
}

// lookup returns the compiled pattern for re, compiling on a cache miss.
func (e *Engine) lookup(re regex.Regex) (*Prog, error) {
	if re == nil {
		return nil, ErrNilRegex
	}
	key := re.String()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cached != nil && e.cached.pattern == key {
		atomic.AddUint64(&e.stats.CacheHits, 1)
		return e.cached, nil
	}

	start := time.Now()
	p, err := compile(re, e.config)
	atomic.AddUint64(&e.stats.Compilations, 1)
	if err != nil {
		atomic.AddUint64(&e.stats.CompileErrors, 1)
		e.logger.Debug("meta: compilation failed",
			slog.String("pattern", key),
			slog.Any("error", err))
		return nil, err
	}

	attrs := []any{
		slog.String("pattern", key),
		slog.String("strategy", p.strategy.String()),
		slog.Int("nfa_states", p.nfaStates),
		slog.Int("dfa_states", p.dfaStates),
		slog.Int("min_states", p.States()),
	}
	if p.literals != nil {
		attrs = append(attrs,
			slog.Int("literals", p.literals.Len()),
			slog.Int("max_literal_len", p.literals.MaxLen()))
	}
	attrs = append(attrs, slog.Duration("elapsed", time.Since(start)))
	e.logger.Debug("meta: compiled pattern", attrs...)
	e.cached = p
	return p, nil
}

// CachedPattern returns the canonical rendering of the cached pattern.
// ok is false when nothing has been compiled yet.
func (e *Engine) CachedPattern() (pattern string, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cached == nil {
		return "", false
	}
	return e.cached.pattern, true
}

// Stats returns a snapshot of the engine statistics.
//
// Example:
//
//	stats := engine.Stats()
//	println("compilations:", stats.Compilations)
//	println("cache hits:", stats.CacheHits)
func (e *Engine) Stats() Stats {
	return Stats{
		Compilations:    atomic.LoadUint64(&e.stats.Compilations),
		CompileErrors:   atomic.LoadUint64(&e.stats.CompileErrors),
		CacheHits:       atomic.LoadUint64(&e.stats.CacheHits),
		LiteralFastPath: atomic.LoadUint64(&e.stats.LiteralFastPath),
		ASCIIScans:      atomic.LoadUint64(&e.stats.ASCIIScans),
	}
}

// ResetStats resets engine statistics to zero. The cache is kept.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Compilations, 0)
	atomic.StoreUint64(&e.stats.CompileErrors, 0)
	atomic.StoreUint64(&e.stats.CacheHits, 0)
	atomic.StoreUint64(&e.stats.LiteralFastPath, 0)
	atomic.StoreUint64(&e.stats.ASCIIScans, 0)
}
