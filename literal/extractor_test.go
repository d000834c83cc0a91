package literal

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/mindfa/regex"
)

func ch(c rune) regex.Regex { return regex.Char{C: c} }

func sorted(s *Seq) []string {
	out := s.Strings()
	sort.Strings(out)
	return out
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		re   regex.Regex
		want []string // nil means not finite
	}{
		{"empty language", regex.Empty{}, []string{}},
		{"lambda", regex.Lambda{}, []string{""}},
		{"char", ch('a'), []string{"a"}},
		{"non-ascii char", ch('ñ'), []string{"ñ"}},
		{"literal", regex.Literal("abc"), []string{"abc"}},
		{"union", regex.Union{Left: ch('a'), Right: ch('b')}, []string{"a", "b"}},
		{"union duplicates", regex.Union{Left: ch('a'), Right: ch('a')}, []string{"a"}},
		{"concat cross", regex.Concat{
			Left:  regex.Union{Left: ch('a'), Right: ch('b')},
			Right: regex.Union{Left: ch('c'), Right: ch('d')},
		}, []string{"ac", "ad", "bc", "bd"}},
		{"concat with empty", regex.Concat{Left: ch('a'), Right: regex.Empty{}}, []string{}},
		{"optional", regex.Optional(ch('a')), []string{"", "a"}},
		{"star infinite", regex.Star{Sub: ch('a')}, nil},
		{"plus infinite", regex.Plus{Sub: ch('a')}, nil},
		{"star of empty", regex.Star{Sub: regex.Empty{}}, []string{""}},
		{"star of lambda", regex.Star{Sub: regex.Lambda{}}, []string{""}},
		{"plus of empty", regex.Plus{Sub: regex.Empty{}}, []string{}},
		{"plus of lambda", regex.Plus{Sub: regex.Lambda{}}, []string{""}},
		{"nested infinite", regex.Union{Left: ch('a'), Right: regex.Star{Sub: ch('b')}}, nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, ok := Extract(tt.re)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, sorted(seq))
			for _, w := range tt.want {
				assert.True(t, seq.Contains([]byte(w)), "missing %q", w)
				assert.True(t, tt.re.NaiveMatch(w), "extracted %q not in language", w)
			}
		})
	}
}

func TestExtract_Limits(t *testing.T) {
	digits := regex.Digit()

	t.Run("too many literals", func(t *testing.T) {
		e := New(ExtractorConfig{MaxLiterals: 50})
		_, ok := e.Extract(regex.Concat{Left: digits, Right: digits})
		assert.False(t, ok, "100 words exceed the limit of 50")

		seq, ok := e.Extract(digits)
		require.True(t, ok)
		assert.Equal(t, 10, seq.Len())
	})

	t.Run("literal too long", func(t *testing.T) {
		e := New(ExtractorConfig{MaxLiteralLen: 3})
		_, ok := e.Extract(regex.Literal("abcd"))
		assert.False(t, ok)

		seq, ok := e.Extract(regex.Literal("abc"))
		require.True(t, ok)
		assert.Equal(t, 3, seq.MaxLen())
	})

	t.Run("too deep", func(t *testing.T) {
		e := New(ExtractorConfig{MaxDepth: 2})
		_, ok := e.Extract(regex.Literal("abcdef"))
		assert.False(t, ok)
	})
}

func TestSeq(t *testing.T) {
	seq := NewSeq(
		NewLiteral([]byte("a")),
		NewLiteral([]byte("abc")),
		NewLiteral([]byte("ab")),
		NewLiteral([]byte("a")),
		NewLiteral([]byte("xyz")),
	)
	require.Equal(t, 4, seq.Len())
	assert.False(t, seq.ContainsEmpty())

	seq.SortLongestFirst()
	assert.Equal(t, []string{"abc", "xyz", "ab", "a"}, seq.Strings())
	assert.Equal(t, 3, seq.MaxLen())

	clone := seq.Clone()
	clone.Get(0).Bytes[0] = 'X'
	assert.Equal(t, "abc", string(seq.Get(0).Bytes))

	var nilSeq *Seq
	assert.True(t, nilSeq.IsEmpty())
	assert.Equal(t, 0, nilSeq.Len())
	assert.False(t, nilSeq.Contains([]byte("a")))
	assert.Nil(t, nilSeq.Clone())
}

func TestLiteral(t *testing.T) {
	lit := NewLiteral([]byte("hello"))
	assert.Equal(t, 5, lit.Len())
	assert.False(t, lit.IsEmpty())
	assert.Equal(t, "literal{hello}", lit.String())
	assert.True(t, NewLiteral(nil).IsEmpty())
}
