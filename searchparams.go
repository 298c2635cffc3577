package whatwgurl

import (
	"sort"
	"strings"
	"unicode/utf16"
)

// searchparams.go implements spec.md §6's URLSearchParams: an ordered
// (name, value) list kept bidirectionally synchronized with an owning
// URL's query field. Grounded on nlnwa/whatwg-url's
// `u.SearchParams().Iterate(...)` / `.Sort()` / `.SortAbsolute()` surface
// (canon-canonicalizer.go.go), but reworked per spec.md §9's "Cyclic
// reference" design note: the URL exclusively owns the SearchParams, and
// the SearchParams holds a non-owning back-reference plus an update
// callback rather than a shared-ownership pointer cycle.

// SearchParams is an ordered, possibly-duplicate-keyed list of
// (name, value) pairs with spec.md §6's append/delete/get/getAll/has/set/
// sort operations. The zero value is a valid, unattached params list;
// the URL constructor (newURLFromRecord) wires onUpdate.
type SearchParams struct {
	pairs    []KeyValue
	onUpdate func()
}

// NewSearchParamsFromString implements spec.md §6 construction form (a):
// an optional leading '?' is stripped, then the remainder is parsed as
// application/x-www-form-urlencoded.
func NewSearchParamsFromString(s string) *SearchParams {
	s = strings.TrimPrefix(s, "?")
	return &SearchParams{pairs: parseFormURLEncoded(s)}
}

// NewSearchParamsFromPairs implements spec.md §6 construction form (b): an
// ordered sequence of pairs, taken as-is (Go's type system already
// enforces "each pair has exactly two members" via KeyValue, so the
// spec's "failure if any pair is not length 2" has no failure mode here).
func NewSearchParamsFromPairs(pairs []KeyValue) *SearchParams {
	cp := append([]KeyValue(nil), pairs...)
	return &SearchParams{pairs: cp}
}

// NewSearchParamsFromMap implements spec.md §6 construction form (c): a
// mapping whose enumeration order is preserved. Go has no ordered map
// literal, so callers supply that order explicitly as []KeyValue — see
// DESIGN.md's Open Question resolution for this construction form.
func NewSearchParamsFromMap(entries []KeyValue) *SearchParams {
	return NewSearchParamsFromPairs(entries)
}

func (s *SearchParams) notify() {
	if s.onUpdate != nil {
		s.onUpdate()
	}
}

// Append adds a new (name, value) pair, per spec.md §6 "append".
func (s *SearchParams) Append(name, value string) {
	s.pairs = append(s.pairs, KeyValue{Name: name, Value: value})
	s.notify()
}

// Delete removes every pair whose name equals name, per spec.md §6
// "delete".
func (s *SearchParams) Delete(name string) {
	out := s.pairs[:0]
	for _, kv := range s.pairs {
		if kv.Name != name {
			out = append(out, kv)
		}
	}
	s.pairs = out
	s.notify()
}

// Get returns the value of the first pair named name, per spec.md §6
// "get". ok is false if no such pair exists.
func (s *SearchParams) Get(name string) (value string, ok bool) {
	for _, kv := range s.pairs {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// GetAll returns the values of every pair named name, in order, per
// spec.md §6 "get_all".
func (s *SearchParams) GetAll(name string) []string {
	var values []string
	for _, kv := range s.pairs {
		if kv.Name == name {
			values = append(values, kv.Value)
		}
	}
	return values
}

// Has reports whether any pair is named name, per spec.md §6 "has".
func (s *SearchParams) Has(name string) bool {
	for _, kv := range s.pairs {
		if kv.Name == name {
			return true
		}
	}
	return false
}

// Set replaces the value of the first pair named name with value and
// removes all subsequent pairs named name, appending a new pair if none
// existed, per spec.md §6 "set".
func (s *SearchParams) Set(name, value string) {
	found := false
	out := s.pairs[:0]
	for _, kv := range s.pairs {
		if kv.Name != name {
			out = append(out, kv)
			continue
		}
		if !found {
			kv.Value = value
			out = append(out, kv)
			found = true
		}
	}
	s.pairs = out
	if !found {
		s.pairs = append(s.pairs, KeyValue{Name: name, Value: value})
	}
	s.notify()
}

// Sort stably reorders pairs by name, comparing UTF-16 code units per
// spec.md §6: "ordered by name comparing UTF-16 code units". Go strings
// are UTF-8; each name is decoded to its UTF-16 code unit sequence before
// comparison so surrogate-pair code points sort the way the
// JavaScript-facing representation would.
func (s *SearchParams) Sort() {
	sort.SliceStable(s.pairs, func(i, j int) bool {
		return lessUTF16(s.pairs[i].Name, s.pairs[j].Name)
	})
	s.notify()
}

func lessUTF16(a, b string) bool {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

// Iterate calls fn once per pair, in insertion order, per spec.md §6
// "iteration in insertion order". Mirrors nlnwa/whatwg-url's
// `SearchParams().Iterate(func(pair *NameValuePair))` shape.
func (s *SearchParams) Iterate(fn func(name, value string)) {
	for _, kv := range s.pairs {
		fn(kv.Name, kv.Value)
	}
}

// Len reports the number of pairs.
func (s *SearchParams) Len() int {
	return len(s.pairs)
}

// String implements spec.md §6 "toString": serialize to
// application/x-www-form-urlencoded.
func (s *SearchParams) String() string {
	return serializeFormURLEncoded(s.pairs)
}
