package nfa

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/mindfa/regex"
)

func ch(c rune) regex.Regex { return regex.Char{C: c} }

func TestCompile(t *testing.T) {
	tests := []struct {
		name   string
		re     regex.Regex
		states int
		match  []string
		reject []string
	}{
		{"empty", regex.Empty{}, 1, nil, []string{"", "a"}},
		{"lambda", regex.Lambda{}, 1, []string{""}, []string{"a"}},
		{"char", ch('a'), 2, []string{"a"}, []string{"", "aa"}},
		{"concat", regex.Concat{Left: ch('a'), Right: ch('b')}, 4, []string{"ab"}, []string{"a", "b"}},
		{"union", regex.Union{Left: ch('a'), Right: ch('b')}, 5, []string{"a", "b"}, []string{"", "ab"}},
		{"star", regex.Star{Sub: ch('a')}, 4, []string{"", "a", "aaa"}, []string{"b"}},
		{"plus", regex.Plus{Sub: ch('a')}, 6, []string{"a", "aa"}, []string{""}},
		{"star of union then char", regex.Concat{
			Left:  regex.Star{Sub: regex.Union{Left: ch('a'), Right: ch('b')}},
			Right: ch('c'),
		}, 9, []string{"c", "aabbc"}, []string{"aabb", ""}},
		{"star of lambda", regex.Star{Sub: regex.Lambda{}}, 3, []string{""}, []string{"a"}},
		{"star of empty", regex.Star{Sub: regex.Empty{}}, 3, []string{""}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Compile(tt.re)
			require.NoError(t, err)
			assert.Equal(t, tt.states, n.NumStates())
			assert.Equal(t, StateID(0), n.InitialState(), "result is normalized")
			assert.Equal(t, StateID(n.NumStates()), n.NextID(), "ids are dense")

			for _, w := range tt.match {
				assert.True(t, n.Accepts(w), "%s should accept %q", tt.re, w)
			}
			for _, w := range tt.reject {
				assert.False(t, n.Accepts(w), "%s should reject %q", tt.re, w)
			}
		})
	}
}

// TestCompile_AgreesWithNaive compares NFA simulation with the structural
// matcher on nested trees.
func TestCompile_AgreesWithNaive(t *testing.T) {
	trees := []regex.Regex{
		regex.Star{Sub: regex.Star{Sub: ch('a')}},
		regex.Plus{Sub: regex.Optional(ch('a'))},
		regex.Concat{Left: regex.Plus{Sub: regex.Union{Left: ch('a'), Right: regex.Literal("bc")}}, Right: regex.Star{Sub: ch('c')}},
		regex.Union{Left: regex.Empty{}, Right: regex.Concat{Left: regex.Lambda{}, Right: ch('b')}},
		regex.Concat{Left: regex.Empty{}, Right: regex.Star{Sub: ch('a')}},
	}
	words := []string{"", "a", "b", "c", "aa", "ab", "bc", "abc", "bcc", "abca", "aaaa", "bcbc"}

	for _, re := range trees {
		n, err := Compile(re)
		require.NoError(t, err)
		for _, w := range words {
			assert.Equal(t, re.NaiveMatch(w), n.Accepts(w), "pattern %s word %q", re, w)
		}
	}
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	_, err = Compile(regex.Union{Left: ch('a')})
	require.Error(t, err)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "a|<nil>", cerr.Pattern)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	c := NewCompiler(CompilerConfig{MaxRecursionDepth: 3})
	_, err = c.Compile(regex.Literal("abcdef"))
	assert.ErrorIs(t, err, ErrTooComplex)

	_, err = c.Compile(ch('a'))
	assert.NoError(t, err, "compiler is reusable after a failure")

	assert.ErrorIs(t, CompilerConfig{MaxRecursionDepth: -1}.Validate(), ErrInvalidConfig)
	assert.NoError(t, CompilerConfig{}.Validate(), "zero means unlimited")
	assert.NoError(t, DefaultCompilerConfig().Validate())
}

// TestCompile_LongLiteral checks that the default compiler has no depth
// limit: left-nested concatenations are as deep as the literal is long.
func TestCompile_LongLiteral(t *testing.T) {
	word := strings.Repeat("a", 2000)
	n, err := Compile(regex.Literal(word))
	require.NoError(t, err)
	assert.Equal(t, 4000, n.NumStates())
	assert.True(t, n.Accepts(word))
	assert.False(t, n.Accepts(word[1:]))
	assert.False(t, n.Accepts(word+"a"))
}

func TestCompile_InvalidRune(t *testing.T) {
	for _, c := range []rune{-1, 0xD800, utf8.MaxRune + 1} {
		_, err := Compile(regex.Concat{Left: ch('a'), Right: regex.Char{C: c}})
		assert.ErrorIs(t, err, ErrInvalidPattern, "rune %#x", c)
	}

	n, err := Compile(ch(utf8.RuneError))
	require.NoError(t, err, "U+FFFD is a valid rune")
	assert.True(t, n.Accepts("\uFFFD"))
}

func TestCompileError_ShortPattern(t *testing.T) {
	long := regex.Concat{Left: regex.Literal(strings.Repeat("x", 500)), Right: regex.Char{C: -1}}
	_, err := Compile(long)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.True(t, strings.HasSuffix(cerr.Pattern, "..."), cerr.Pattern)
	assert.Equal(t, maxErrorPattern+3, utf8.RuneCountInString(cerr.Pattern))
	assert.Less(t, len(cerr.Error()), 200)
}
