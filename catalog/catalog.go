// Package catalog holds the in-memory model shared by every file format:
// an ordered mapping from translation key to localized value.
//
// A Set keeps keys in the order they were first inserted. Setting an existing
// key replaces its value but keeps its original position, so a file with
// duplicate keys loads as "last value wins, first position kept".
package catalog

// Entry is a single key/value pair in document order.
type Entry struct {
	Key   string
	Value string
}

// Set is an ordered key → value mapping for one language.
type Set struct {
	// entries stores pairs in insertion order.
	entries []Entry
	// index maps key → position in entries.
	index map[string]int
}

// New returns an empty Set.
func New() *Set {
	return &Set{index: make(map[string]int)}
}

// FromEntries builds a Set from pairs, applying the duplicate-key rule.
func FromEntries(entries ...Entry) *Set {
	s := New()
	for _, e := range entries {
		s.Set(e.Key, e.Value)
	}
	return s
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position and gets the new value.
func (s *Set) Set(key, value string) {
	if idx, ok := s.index[key]; ok {
		s.entries[idx].Value = value
		return
	}
	s.index[key] = len(s.entries)
	s.entries = append(s.entries, Entry{Key: key, Value: value})
}

// Get returns the value for key and whether it was found.
func (s *Set) Get(key string) (string, bool) {
	if idx, ok := s.index[key]; ok {
		return s.entries[idx].Value, true
	}
	return "", false
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Keys returns all keys in document order.
func (s *Set) Keys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}
	return keys
}

// Values returns all values in document order.
func (s *Set) Values() []string {
	values := make([]string, len(s.entries))
	for i, e := range s.entries {
		values[i] = e.Value
	}
	return values
}

// Entries returns a copy of the pairs in document order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Equal reports whether both sets hold the same pairs in the same order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, e := range s.entries {
		if other.entries[i] != e {
			return false
		}
	}
	return true
}
