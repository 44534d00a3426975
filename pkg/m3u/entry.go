package m3u

import (
	"sort"
	"strings"
)

// Entry is a single playlist item: the #EXTINF line and the stream URL
// that follows it. Two entries are equal only if both fields match.
type Entry struct {
	Meta string
	URL  string
}

// EntrySet is an unordered set of entries.
type EntrySet map[Entry]struct{}

// NewEntrySet returns a set holding the given entries.
func NewEntrySet(entries ...Entry) EntrySet {
	s := make(EntrySet, len(entries))
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts e and reports whether it was not already present.
func (s EntrySet) Add(e Entry) bool {
	if _, ok := s[e]; ok {
		return false
	}
	s[e] = struct{}{}
	return true
}

// Contains reports whether e is in the set.
func (s EntrySet) Contains(e Entry) bool {
	_, ok := s[e]
	return ok
}

// Union adds every entry of other to s and returns the number added.
func (s EntrySet) Union(other EntrySet) int {
	added := 0
	for e := range other {
		if s.Add(e) {
			added++
		}
	}
	return added
}

// Len returns the number of entries.
func (s EntrySet) Len() int {
	return len(s)
}

// Sorted returns the entries ordered by case-insensitive meta text.
// Equal keys fall back to the raw meta line and then the URL so the
// order is total.
func (s EntrySet) Sorted() []Entry {
	entries := make([]Entry, 0, len(s))
	for e := range s {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		ki, kj := strings.ToLower(entries[i].Meta), strings.ToLower(entries[j].Meta)
		if ki != kj {
			return ki < kj
		}
		if entries[i].Meta != entries[j].Meta {
			return entries[i].Meta < entries[j].Meta
		}
		return entries[i].URL < entries[j].URL
	})

	return entries
}
