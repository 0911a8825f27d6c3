package emaillist

import (
	"strings"
	"unicode"
)

const (
	// DefaultHeaderMarker is the header line written by the contact export.
	DefaultHeaderMarker = "email;"

	// Separator terminates entries in the input list.
	Separator = ";"

	// DefaultLimit is the per-file cap of the contact import.
	DefaultLimit = 2000
)

// HeaderFunc reports whether the first entry of a list is a header line.
type HeaderFunc func(line string) bool

// HeaderMarker matches line against marker case-insensitively.
// An empty marker never matches, which turns header removal off.
func HeaderMarker(marker string) HeaderFunc {
	return func(line string) bool {
		return marker != "" && strings.EqualFold(line, marker)
	}
}

// Normalize turns raw lines into a List: whitespace is trimmed, blank lines
// are dropped, a leading header is removed when isHeader matches it, and every
// trailing separator is stripped. A nil isHeader disables header removal.
func Normalize(lines []string, isHeader HeaderFunc) List {
	var trimmed []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		trimmed = append(trimmed, line)
	}

	if len(trimmed) > 0 && isHeader != nil && isHeader(trimmed[0]) {
		trimmed = trimmed[1:]
	}

	list := make(List, 0, len(trimmed))
	for _, line := range trimmed {
		// Separators and whitespace interleave at the end ("a ;", "a; ;").
		entry := strings.TrimRightFunc(line, isTrailing)
		if entry == "" {
			continue
		}
		list = append(list, Entry(entry))
	}
	return list
}

func isTrailing(r rune) bool {
	return strings.ContainsRune(Separator, r) || unicode.IsSpace(r)
}

// Split cuts list at limit. Entries with index < limit go to First, the rest
// to Rest. Both halves share list's backing array but cannot grow into each
// other.
func Split(list List, limit int) Partition {
	if limit < 0 {
		limit = 0
	}
	n := min(limit, len(list))
	return Partition{
		First: list[:n:n],
		Rest:  list[n:],
	}
}

// Len returns the total number of entries in the partition.
func (p Partition) Len() int {
	return len(p.First) + len(p.Rest)
}
