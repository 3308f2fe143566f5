package crdt

import (
	"sort"

	"github.com/pkg/errors"
)

// dotSet is a set of Dots, represented as a map for O(1) membership.
type dotSet map[Dot]struct{}

func (s dotSet) clone() dotSet {
	c := make(dotSet, len(s))
	for d := range s {
		c[d] = struct{}{}
	}
	return c
}

func (s dotSet) union(other dotSet) {
	for d := range other {
		s[d] = struct{}{}
	}
}

func (s dotSet) equal(other dotSet) bool {
	if len(s) != len(other) {
		return false
	}
	for d := range s {
		if _, ok := other[d]; !ok {
			return false
		}
	}
	return true
}

func (s dotSet) sorted() []Dot {
	out := make([]Dot, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// AWSetState is an Add-Wins Observed-Remove Set over string elements.
// Each element tracks the dots under which it was added (add_tags)
// and the dots that have been observed-and-removed (remove_tags).
// Both maps only ever grow; an element is present iff it has at least
// one add dot not covered by a remove dot. A concurrent add always
// survives a remove that never observed it — the defining add-wins
// property.
type AWSetState struct {
	add    map[string]dotSet
	remove map[string]dotSet
}

// NewAWSet returns an empty AW-Set.
func NewAWSet() *AWSetState {
	return &AWSetState{add: map[string]dotSet{}, remove: map[string]dotSet{}}
}

// Add mints a fresh dot (node, clock) and records it as an add-tag for
// element. Prior add-tags for element, if any, are retained — a
// duplicate add is observed, not collapsed.
func (s *AWSetState) Add(element string, node NodeID, clock LogicalClock) Dot {
	d := Dot{Node: node, Clock: clock}
	if s.add[element] == nil {
		s.add[element] = dotSet{}
	}
	s.add[element][d] = struct{}{}
	return d
}

// Remove tombstones every add-tag currently visible to this replica
// for element. Dots added concurrently on another replica, not yet
// observed here, are untouched — this is what makes a concurrent add
// win over this remove once the two replicas merge.
func (s *AWSetState) Remove(element string) {
	dots, ok := s.add[element]
	if !ok || len(dots) == 0 {
		return
	}
	if s.remove[element] == nil {
		s.remove[element] = dotSet{}
	}
	s.remove[element].union(dots)
}

// Contains reports whether element has at least one add-tag not
// covered by a remove-tag.
func (s *AWSetState) Contains(element string) bool {
	adds := s.add[element]
	if len(adds) == 0 {
		return false
	}
	removed := s.remove[element]
	for d := range adds {
		if _, gone := removed[d]; !gone {
			return true
		}
	}
	return false
}

// Elements returns every present element in deterministic
// lexicographic order.
func (s *AWSetState) Elements() []string {
	out := make([]string, 0, len(s.add))
	for e := range s.add {
		if s.Contains(e) {
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}

// AddTags returns the sorted add-tags currently recorded for element,
// for callers (and tests) that need to inspect the raw dot evidence
// rather than just presence.
func (s *AWSetState) AddTags(element string) []Dot {
	return s.add[element].sorted()
}

// RemoveTags returns the sorted remove-tags currently recorded for
// element.
func (s *AWSetState) RemoveTags(element string) []Dot {
	return s.remove[element].sorted()
}

// Merge unions add_tags and remove_tags per element across both
// sides. This is the join: tombstones and add evidence both only
// ever accumulate, which is what lets a concurrent add survive a
// remove that didn't see it yet.
func (s *AWSetState) Merge(other State) error {
	o, ok := other.(*AWSetState)
	if !ok {
		return errors.Wrapf(ErrMalformedState, "cannot merge %T into AWSetState", other)
	}
	for e, dots := range o.add {
		if s.add[e] == nil {
			s.add[e] = dotSet{}
		}
		s.add[e].union(dots)
	}
	for e, dots := range o.remove {
		if s.remove[e] == nil {
			s.remove[e] = dotSet{}
		}
		s.remove[e].union(dots)
	}
	return nil
}

// Clone returns an independent copy.
func (s *AWSetState) Clone() State {
	clone := NewAWSet()
	for e, dots := range s.add {
		clone.add[e] = dots.clone()
	}
	for e, dots := range s.remove {
		clone.remove[e] = dots.clone()
	}
	return clone
}

// Equal reports whether s and other carry identical add_tags and
// remove_tags for every element.
func (s *AWSetState) Equal(other *AWSetState) bool {
	if len(s.add) != len(other.add) || len(s.remove) != len(other.remove) {
		return false
	}
	for e, dots := range s.add {
		if !dots.equal(other.add[e]) {
			return false
		}
	}
	for e, dots := range s.remove {
		if !dots.equal(other.remove[e]) {
			return false
		}
	}
	return true
}
