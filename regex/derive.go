package regex

import "fmt"

// ConcatAll concatenates rs left to right. Zero operands yield Lambda.
func ConcatAll(rs ...Regex) Regex {
	if len(rs) == 0 {
		return Lambda{}
	}
	out := rs[0]
	for _, r := range rs[1:] {
		out = Concat{Left: out, Right: r}
	}
	return out
}

// UnionAll joins rs with Union, nesting to the left. Zero operands yield Empty.
func UnionAll(rs ...Regex) Regex {
	if len(rs) == 0 {
		return Empty{}
	}
	out := rs[0]
	for _, r := range rs[1:] {
		out = Union{Left: out, Right: r}
	}
	return out
}

// Literal returns the concatenation of the characters of s.
func Literal(s string) Regex {
	var rs []Regex
	for _, c := range s {
		rs = append(rs, Char{C: c})
	}
	return ConcatAll(rs...)
}

// Optional returns re?, that is re|λ.
func Optional(re Regex) Regex {
	return Union{Left: re, Right: Lambda{}}
}

// Repeat returns re{n}: n concatenated copies of re, or Lambda when n is 0.
func Repeat(re Regex, n int) Regex {
	if n <= 0 {
		return Lambda{}
	}
	rs := make([]Regex, n)
	for i := range rs {
		rs[i] = re
	}
	return ConcatAll(rs...)
}

// RepeatRange returns re{n,m}, the union of re{i} for n <= i <= m.
// Returns a SyntaxError when m < n or n is negative.
func RepeatRange(re Regex, n, m int) (Regex, error) {
	if n < 0 {
		return nil, &SyntaxError{Msg: "negative repetition count", Expr: fmt.Sprintf("{%d,%d}", n, m)}
	}
	if m < n {
		return nil, &SyntaxError{Msg: "invalid repetition range", Expr: fmt.Sprintf("{%d,%d}", n, m)}
	}
	rs := make([]Regex, 0, m-n+1)
	for i := n; i <= m; i++ {
		rs = append(rs, Repeat(re, i))
	}
	return UnionAll(rs...), nil
}

// AtLeast returns re{n,}: n copies of re followed by re*.
func AtLeast(re Regex, n int) Regex {
	if n <= 0 {
		return Star{Sub: re}
	}
	return Concat{Left: Repeat(re, n), Right: Star{Sub: re}}
}

// CharRange returns [lo-hi], the union of every character from lo to hi.
// Returns a SyntaxError when hi precedes lo.
func CharRange(lo, hi rune) (Regex, error) {
	if hi < lo {
		return nil, &SyntaxError{Msg: "invalid character range", Expr: fmt.Sprintf("%c-%c", lo, hi)}
	}
	rs := make([]Regex, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		rs = append(rs, Char{C: c})
	}
	return UnionAll(rs...), nil
}

// Digit returns \d, the union of 0-9.
func Digit() Regex {
	return mustRange('0', '9')
}

// Word returns \w, the union of _, a-z, A-Z and 0-9.
func Word() Regex {
	return UnionAll(
		Char{C: '_'},
		mustRange('a', 'z'),
		mustRange('A', 'Z'),
		mustRange('0', '9'),
	)
}

func mustRange(lo, hi rune) Regex {
	re, err := CharRange(lo, hi)
	if err != nil {
		panic(err)
	}
	return re
}
