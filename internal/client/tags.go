package client

import (
	"sort"
	"strings"
)

// TagSet is an immutable set of unique tags, held sorted.
type TagSet struct {
	tags []string
}

// NewTagSet builds a set, dropping duplicates.
func NewTagSet(tags ...string) TagSet {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return TagSet{tags: out}
}

// Has reports whether tag is present, ignoring case.
func (s TagSet) Has(tag string) bool {
	for _, t := range s.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Values returns a sorted copy of the tags.
func (s TagSet) Values() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s TagSet) Len() int      { return len(s.tags) }
func (s TagSet) IsEmpty() bool { return len(s.tags) == 0 }

// Equal compares tags exactly.
func (s TagSet) Equal(other TagSet) bool {
	if len(s.tags) != len(other.tags) {
		return false
	}
	for i := range s.tags {
		if s.tags[i] != other.tags[i] {
			return false
		}
	}
	return true
}

func (s TagSet) String() string {
	parts := make([]string, len(s.tags))
	for i, t := range s.tags {
		parts[i] = "[" + t + "]"
	}
	return strings.Join(parts, "")
}
