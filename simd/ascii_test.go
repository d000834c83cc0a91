package simd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsASCII(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{"empty", nil, true},
		{"single_ascii", []byte{'a'}, true},
		{"single_del", []byte{0x7F}, true},
		{"single_non_ascii", []byte{0x80}, false},
		{"short_hello", []byte("hello"), true},
		{"short_utf8", []byte("héllo"), false},
		{"8_bytes_ascii", []byte("12345678"), true},
		{"8_bytes_non_ascii_last", append([]byte("1234567"), 0x80), false},
		{"9_bytes_tail", append([]byte("12345678"), 0xC3), false},
		{"32_bytes_ascii", bytes.Repeat([]byte{'a'}, 32), true},
		{"32_bytes_non_ascii_middle", append(append(bytes.Repeat([]byte{'a'}, 15), 0x80), bytes.Repeat([]byte{'b'}, 16)...), false},
		{"1000_bytes_ascii", bytes.Repeat([]byte{'z'}, 1000), true},
		{"1000_bytes_non_ascii_end", append(bytes.Repeat([]byte{'z'}, 999), 0xFF), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsASCII(tt.input))
			assert.Equal(t, tt.expected, IsASCIIString(string(tt.input)))
		})
	}
}

// TestIsASCII_PathsAgree checks the SWAR and unrolled loops against the
// byte loop for every position of a single non-ASCII byte.
func TestIsASCII_PathsAgree(t *testing.T) {
	for n := 0; n <= 70; n++ {
		data := bytes.Repeat([]byte{'x'}, n)
		assert.True(t, isASCIISWAR(data), "len %d", n)
		assert.True(t, isASCIIWide(data), "len %d", n)
		for i := 0; i < n; i++ {
			data[i] = 0x80
			assert.False(t, isASCIISWAR(data), "len %d pos %d", n, i)
			assert.False(t, isASCIIWide(data), "len %d pos %d", n, i)
			data[i] = 'x'
		}
	}
}

func BenchmarkIsASCII(b *testing.B) {
	data := bytes.Repeat([]byte("abcdefgh"), 512)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		_ = IsASCII(data)
	}
}
