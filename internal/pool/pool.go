// Package pool holds sync.Pool instances for the short-lived buffers used
// while extracting selection text and rendering the demo grid.
package pool

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns an empty string builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	sb.Reset()
	stringBuilderPool.Put(sb)
}

var runeSlicePool = sync.Pool{
	New: func() any {
		s := make([]rune, 0, 256)
		return &s
	},
}

// GetRuneSlice returns a zero-length rune slice with spare capacity.
func GetRuneSlice() *[]rune {
	return runeSlicePool.Get().(*[]rune)
}

// PutRuneSlice truncates s and returns it to the pool.
func PutRuneSlice(s *[]rune) {
	*s = (*s)[:0]
	runeSlicePool.Put(s)
}
