// Package simd provides word-at-a-time byte checks used by the match engine
// to pick a scan strategy.
//
// The checks use SWAR (SIMD Within A Register): eight bytes are loaded into a
// uint64 and tested with one mask. On CPUs with wide vector units (AVX2 on
// x86-64, ASIMD on arm64) the loop is unrolled to 32 bytes per iteration,
// which the compiler schedules as four independent loads.
package simd

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// hasWideLoads selects the 32-byte unrolled loop.
var hasWideLoads = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// hi8 has the high bit of every byte set.
const hi8 = uint64(0x8080808080808080)

// IsASCII checks if all bytes in the slice are ASCII (< 0x80).
// An empty slice is ASCII.
//
// Example:
//
//	if simd.IsASCII([]byte("hello")) {
//	    // use the ASCII transition table
//	}
func IsASCII(data []byte) bool {
	if len(data) < 8 {
		for _, b := range data {
			if b >= 0x80 {
				return false
			}
		}
		return true
	}
	if hasWideLoads && len(data) >= 32 {
		return isASCIIWide(data)
	}
	return isASCIISWAR(data)
}

// IsASCIIString is IsASCII for strings, without copying.
func IsASCIIString(s string) bool {
	if len(s) == 0 {
		return true
	}
	return IsASCII(unsafe.Slice(unsafe.StringData(s), len(s)))
}

func isASCIISWAR(data []byte) bool {
	idx := 0
	for idx+8 <= len(data) {
		if binary.LittleEndian.Uint64(data[idx:])&hi8 != 0 {
			return false
		}
		idx += 8
	}
	return isASCIITail(data[idx:])
}

func isASCIIWide(data []byte) bool {
	idx := 0
	for idx+32 <= len(data) {
		a := binary.LittleEndian.Uint64(data[idx:])
		b := binary.LittleEndian.Uint64(data[idx+8:])
		c := binary.LittleEndian.Uint64(data[idx+16:])
		d := binary.LittleEndian.Uint64(data[idx+24:])
		if (a|b|c|d)&hi8 != 0 {
			return false
		}
		idx += 32
	}
	return isASCIISWAR(data[idx:])
}

func isASCIITail(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
