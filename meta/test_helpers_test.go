package meta

import (
	"math/rand"

	"github.com/coregx/mindfa/regex"
)

func ch(c rune) regex.Regex { return regex.Char{C: c} }

// randomRegex builds a random tree over the alphabet {a, b, c}.
func randomRegex(r *rand.Rand, depth int) regex.Regex {
	if depth <= 0 {
		switch r.Intn(8) {
		case 0:
			return regex.Empty{}
		case 1:
			return regex.Lambda{}
		default:
			return ch(rune('a' + r.Intn(3)))
		}
	}
	switch r.Intn(6) {
	case 0:
		return regex.Concat{Left: randomRegex(r, depth-1), Right: randomRegex(r, depth-1)}
	case 1:
		return regex.Union{Left: randomRegex(r, depth-1), Right: randomRegex(r, depth-1)}
	case 2:
		return regex.Star{Sub: randomRegex(r, depth-1)}
	case 3:
		return regex.Plus{Sub: randomRegex(r, depth-1)}
	default:
		return randomRegex(r, depth-1)
	}
}

// allWords returns every word over alphabet of length at most maxLen.
func allWords(alphabet string, maxLen int) []string {
	words := []string{""}
	frontier := []string{""}
	for n := 1; n <= maxLen; n++ {
		var next []string
		for _, w := range frontier {
			for _, c := range alphabet {
				next = append(next, w+string(c))
			}
		}
		words = append(words, next...)
		frontier = next
	}
	return words
}

// scenarioAB is (a|b)*c.
func scenarioAB() regex.Regex {
	return regex.Concat{
		Left:  regex.Star{Sub: regex.Union{Left: ch('a'), Right: ch('b')}},
		Right: ch('c'),
	}
}
