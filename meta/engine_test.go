package meta

import (
	"bytes"
	"errors"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/mindfa/dfa"
	"github.com/coregx/mindfa/nfa"
	"github.com/coregx/mindfa/regex"
)

func TestEngine_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		re     regex.Regex
		match  []string
		reject []string
		states int // 0 means not checked
	}{
		{
			name:   "union of chars",
			re:     regex.Union{Left: ch('a'), Right: ch('b')},
			match:  []string{"a", "b"},
			reject: []string{"ab", "", "c"},
		},
		{
			name:   "star of union then char",
			re:     scenarioAB(),
			match:  []string{"aabbc", "c", "abababc"},
			reject: []string{"aabb", "", "cc", "ca"},
			states: 3,
		},
		{
			name:   "empty language",
			re:     regex.Empty{},
			reject: []string{"", "a", "λ", "∅"},
		},
		{
			name:   "lambda",
			re:     regex.Lambda{},
			match:  []string{""},
			reject: []string{"a", "λ"},
		},
		{
			name:   "plus",
			re:     regex.Plus{Sub: ch('a')},
			match:  []string{"a", "aaa"},
			reject: []string{"", "b", "aab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewDefaultEngine()
			for _, w := range tt.match {
				ok, err := engine.IsMatch(tt.re, w)
				require.NoError(t, err)
				assert.True(t, ok, "%s should match %q", tt.re, w)
			}
			for _, w := range tt.reject {
				ok, err := engine.IsMatch(tt.re, w)
				require.NoError(t, err)
				assert.False(t, ok, "%s should not match %q", tt.re, w)
			}
			if tt.states > 0 {
				p, err := engine.Compile(tt.re)
				require.NoError(t, err)
				assert.Equal(t, tt.states, p.States())
			}
		})
	}
}

// TestEngine_Oracle checks the compiled automaton against the naive
// structural matcher on random trees, for every engine configuration.
func TestEngine_Oracle(t *testing.T) {
	configs := map[string]Config{
		"default":      DefaultConfig(),
		"no literals":  DefaultConfig().WithLiteralFastPath(false),
		"no ascii":     DefaultConfig().WithASCIITable(false),
		"tiny literal": DefaultConfig().WithMaxLiterals(2),
	}
	words := allWords("abc", 4)
	words = append(words, "d", "ad", "é")

	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			engine, err := NewEngine(config)
			require.NoError(t, err)

			r := rand.New(rand.NewSource(1))
			for i := 0; i < 150; i++ {
				re := randomRegex(r, 4)
				for _, w := range words {
					got, err := engine.IsMatch(re, w)
					require.NoError(t, err)
					require.Equal(t, re.NaiveMatch(w), got, "pattern %s word %q", re, w)
				}
			}
		})
	}
}

func TestEngine_CacheCoherence(t *testing.T) {
	engine := NewDefaultEngine()
	a := regex.Union{Left: ch('a'), Right: ch('b')}
	b := scenarioAB()

	_, ok := engine.CachedPattern()
	assert.False(t, ok)

	engine.MustMatch(a, "a")
	engine.MustMatch(a, "b")
	engine.MustMatch(regex.Union{Left: ch('a'), Right: ch('b')}, "ab")
	stats := engine.Stats()
	assert.Equal(t, uint64(1), stats.Compilations)
	assert.Equal(t, uint64(2), stats.CacheHits)

	pattern, ok := engine.CachedPattern()
	require.True(t, ok)
	assert.Equal(t, "a|b", pattern)

	engine.MustMatch(b, "c")
	engine.MustMatch(a, "a")
	assert.Equal(t, uint64(3), engine.Stats().Compilations, "capacity one: alternating patterns recompile")

	engine.ResetStats()
	assert.Equal(t, Stats{}, engine.Stats())
	pattern, _ = engine.CachedPattern()
	assert.Equal(t, "a|b", pattern, "ResetStats keeps the cache")
}

func TestEngine_FailureKeepsCache(t *testing.T) {
	engine, err := NewEngine(DefaultConfig().WithMaxDFAStates(2))
	require.NoError(t, err)

	ok, err := engine.IsMatch(regex.Lambda{}, "")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = engine.IsMatch(ch('a'), "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dfa.ErrStateLimitExceeded))

	pattern, ok := engine.CachedPattern()
	require.True(t, ok)
	assert.Equal(t, "λ", pattern)

	stats := engine.Stats()
	assert.Equal(t, uint64(2), stats.Compilations)
	assert.Equal(t, uint64(1), stats.CompileErrors)

	assert.Panics(t, func() { engine.MustMatch(ch('a'), "a") })
}

func TestEngine_NilRegex(t *testing.T) {
	engine := NewDefaultEngine()

	_, err := engine.IsMatch(nil, "a")
	assert.ErrorIs(t, err, ErrNilRegex)

	_, err = engine.Compile(nil)
	assert.ErrorIs(t, err, ErrNilRegex)

	_, err = engine.IsMatch(regex.Concat{Left: ch('a')}, "a")
	assert.Error(t, err, "nil child is rejected by the compiler")
}

func TestEngine_InvalidRune(t *testing.T) {
	engine := NewDefaultEngine()

	ok, err := engine.IsMatch(ch('\uFFFD'), "\uFFFD")
	require.NoError(t, err)
	assert.True(t, ok)

	// Renders differently from U+FFFD, so it cannot hit the cached program.
	ok, err = engine.IsMatch(ch(0x110000), "\uFFFD")
	assert.ErrorIs(t, err, nfa.ErrInvalidPattern)
	assert.False(t, ok)

	ok, err = engine.IsMatch(ch(-1), "")
	assert.ErrorIs(t, err, nfa.ErrInvalidPattern)
	assert.False(t, ok)

	stats := engine.Stats()
	assert.Equal(t, uint64(3), stats.Compilations)
	assert.Equal(t, uint64(2), stats.CompileErrors)

	pattern, ok := engine.CachedPattern()
	require.True(t, ok)
	assert.Equal(t, "\uFFFD", pattern)
}

func TestEngine_LongLiteral(t *testing.T) {
	engine := NewDefaultEngine()
	word := strings.Repeat("b", 2000)
	re := regex.Literal(word)

	ok, err := engine.IsMatch(re, word)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, w := range []string{word[1:], word + "b", ""} {
		ok, err = engine.IsMatch(re, w)
		require.NoError(t, err)
		assert.False(t, ok, "length %d", len(w))
	}
	assert.Equal(t, uint64(1), engine.Stats().Compilations)
}

func TestEngine_LiteralFastPath(t *testing.T) {
	engine := NewDefaultEngine()
	keywords := regex.UnionAll(regex.Literal("if"), regex.Literal("else"), regex.Literal("for"))

	p, err := engine.Compile(keywords)
	require.NoError(t, err)
	assert.Equal(t, UseLiteral, p.Strategy())
	assert.ElementsMatch(t, []string{"if", "else", "for"}, p.Literals())

	assert.True(t, engine.MustMatch(keywords, "else"))
	assert.Equal(t, uint64(1), engine.Stats().LiteralFastPath)

	assert.False(t, engine.MustMatch(keywords, "el"))
	assert.False(t, engine.MustMatch(keywords, "elsewhere"))
	assert.False(t, engine.MustMatch(keywords, "xif"))
	assert.Equal(t, uint64(1), engine.Stats().LiteralFastPath)

	optional := regex.Optional(ch('a'))
	assert.True(t, engine.MustMatch(optional, ""))
	assert.Equal(t, uint64(2), engine.Stats().LiteralFastPath)

	p, err = engine.Compile(scenarioAB())
	require.NoError(t, err)
	assert.Equal(t, UseDFA, p.Strategy())
	assert.Nil(t, p.Literals())

	p, err = engine.Compile(regex.Empty{})
	require.NoError(t, err)
	assert.Equal(t, UseDFA, p.Strategy())
}

func TestEngine_ASCIIScans(t *testing.T) {
	engine := NewDefaultEngine()
	re := scenarioAB()

	assert.True(t, engine.MustMatch(re, "abc"))
	assert.Equal(t, uint64(1), engine.Stats().ASCIIScans)

	assert.False(t, engine.MustMatch(re, "añc"))
	assert.Equal(t, uint64(1), engine.Stats().ASCIIScans)

	unicode := regex.Plus{Sub: ch('ñ')}
	assert.True(t, engine.MustMatch(unicode, "ññ"))
	assert.False(t, engine.MustMatch(unicode, "n"))
	assert.Equal(t, uint64(1), engine.Stats().ASCIIScans, "non-ASCII alphabet has no table")
}

func TestEngine_Concurrent(t *testing.T) {
	engine := NewDefaultEngine()
	patterns := []regex.Regex{
		scenarioAB(),
		regex.Plus{Sub: ch('a')},
		regex.Union{Left: ch('a'), Right: ch('b')},
	}
	words := allWords("abc", 3)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				re := patterns[(g+i)%len(patterns)]
				for _, w := range words {
					got, err := engine.IsMatch(re, w)
					if !assert.NoError(t, err) {
						return
					}
					assert.Equal(t, re.NaiveMatch(w), got)
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	engine, err := NewEngine(DefaultConfig().WithLogger(logger))
	require.NoError(t, err)
	engine.MustMatch(scenarioAB(), "c")

	out := buf.String()
	assert.Contains(t, out, "meta: compiled pattern")
	assert.Contains(t, out, "strategy=UseDFA")
	assert.Contains(t, out, "min_states=3")
	assert.NotContains(t, out, "max_literal_len")

	buf.Reset()
	engine.MustMatch(regex.Union{Left: ch('a'), Right: regex.Literal("bcd")}, "a")
	out = buf.String()
	assert.Contains(t, out, "strategy=UseLiteral")
	assert.Contains(t, out, "literals=2")
	assert.Contains(t, out, "max_literal_len=3")
}

func TestProg(t *testing.T) {
	engine := NewDefaultEngine()
	p, err := engine.Compile(scenarioAB())
	require.NoError(t, err)

	assert.Equal(t, "(a|b)*c", p.Pattern())
	assert.Equal(t, []rune{'a', 'b', 'c'}, p.Alphabet())
	assert.True(t, p.Accepts("abc"))
	assert.False(t, p.Accepts("ab"))

	d := p.DFA()
	assert.Equal(t, 3, d.NumStates())
	assert.True(t, d.Accepts("bac"))

	_, ok := engine.CachedPattern()
	assert.False(t, ok, "Compile does not touch the cache")
	assert.Equal(t, uint64(0), engine.Stats().Compilations)
}
