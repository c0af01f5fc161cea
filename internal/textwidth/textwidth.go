// Package textwidth measures and fits strings by terminal cell width, so
// catalog names in CJK or with emoji line up in tables.
package textwidth

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Width returns the number of monospace cells s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate shortens s to at most max cells, ending in an ellipsis when
// anything was cut. Grapheme clusters are never split.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if Width(s) <= max {
		return s
	}
	budget := max - Width(ellipsis)
	var sb strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > budget {
			break
		}
		sb.WriteString(cluster)
		used += w
	}
	return sb.String() + ellipsis
}

// Pad truncates s to width cells and right-pads it with spaces.
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
