package diskusage

import (
	"strconv"
	"strings"
)

// SizeEntry is a path and its size as reported by a provider.
type SizeEntry struct {
	// Path is the path as reported, absolute or relative.
	Path string `json:"path"`
	// Size is the size in bytes (or du blocks, depending on the provider).
	Size int64 `json:"size"`
}

// Sizes maps paths to sizes while keeping the order in which paths were
// first seen.
type Sizes struct {
	entries []SizeEntry
	index   map[string]int
}

// Set records size for path. An existing path keeps its position and takes
// the new size.
func (s *Sizes) Set(path string, size int64) {
	if s.index == nil {
		s.index = make(map[string]int)
	}

	if i, ok := s.index[path]; ok {
		s.entries[i].Size = size

		return
	}

	s.index[path] = len(s.entries)
	s.entries = append(s.entries, SizeEntry{Path: path, Size: size})
}

// Get returns the size for path.
func (s Sizes) Get(path string) (int64, bool) {
	i, ok := s.index[path]
	if !ok {
		return 0, false
	}

	return s.entries[i].Size, true
}

// Len returns the number of distinct paths.
func (s Sizes) Len() int {
	return len(s.entries)
}

// Sum returns the sum of all sizes.
func (s Sizes) Sum() int64 {
	var total int64
	for _, e := range s.entries {
		total += e.Size
	}

	return total
}

// Entries returns a copy of the entries in first-seen order.
func (s Sizes) Entries() []SizeEntry {
	out := make([]SizeEntry, len(s.entries))
	copy(out, s.entries)

	return out
}

// ParseLines converts "<size>\t<path>" lines into Sizes.
// Lines without a tab or without a non-negative integer size are skipped.
func ParseLines(lines []string) Sizes {
	var sizes Sizes

	for _, line := range lines {
		sizeStr, path, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}

		size, err := strconv.ParseInt(strings.TrimSpace(sizeStr), 10, 64)
		if err != nil || size < 0 {
			continue
		}

		sizes.Set(path, size)
	}

	return sizes
}

// SizeToken returns the size column of a raw line.
func SizeToken(line string) string {
	token, _, _ := strings.Cut(line, "\t")

	return token
}
