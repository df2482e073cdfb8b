package vocabulary

import (
	"sort"
	"strings"
)

// Entry is a single term and its definition
type Entry struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Mapping maps a term to its definition. It carries no order.
type Mapping map[string]string

// Terms returns the terms sorted lexically
func (m Mapping) Terms() []string {
	terms := make([]string, 0, len(m))
	for term := range m {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Entries returns the mapping as entries sorted by term
func (m Mapping) Entries() []Entry {
	entries := make([]Entry, 0, len(m))
	for _, term := range m.Terms() {
		entries = append(entries, Entry{Term: term, Definition: m[term]})
	}
	return entries
}

// Lookup returns the definition for term. An exact match wins; otherwise the
// first case-insensitive match in term order is used.
func (m Mapping) Lookup(term string) (Entry, bool) {
	if definition, ok := m[term]; ok {
		return Entry{Term: term, Definition: definition}, true
	}
	for _, candidate := range m.Terms() {
		if strings.EqualFold(candidate, term) {
			return Entry{Term: candidate, Definition: m[candidate]}, true
		}
	}
	return Entry{}, false
}
