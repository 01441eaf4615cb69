/*
Package iteratable implements an iteratable container data structure.

Set is a special-purpose set type, adapted from gorgo's lr/iteratable
package, suitable for algorithms that repeatedly grow a working set while
iterating over a stable snapshot of it — exactly the shape of build-time
fixed-point computations (cycle detection, first-character-set propagation)
and per-parse bookkeeping (the success-position set, the walk-trace dedup
set).

Unusually, Add, Remove and Union are destructive: they mutate the
receiver in place, mirroring the source package this was adapted from.
Difference returns a new set.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package iteratable

// Set is a destructively-updated set of arbitrary comparable values.
//
// Iteration over a Set is two-phase: IterateOnce() snapshots the current
// members, and repeated calls to Next() walk that snapshot. Members added to
// the set *during* iteration (e.g. inside a Union call triggered by the loop
// body) are visible only once IterateOnce is called again — this is what
// makes fixed-point computations like closure() in a table-based parser, or
// first-char-set propagation here, safe to express as "iterate until no
// more changes".
type Set struct {
	members  map[interface{}]struct{}
	snapshot []interface{}
	cursor   int
}

// NewSet creates an empty set. sizeHint pre-sizes the backing map, exactly
// as gorgo's iteratable.NewSet(n) does.
func NewSet(sizeHint int) *Set {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Set{members: make(map[interface{}]struct{}, sizeHint)}
}

// Add inserts an item into the set. Returns true if the item was not
// already present.
func (s *Set) Add(item interface{}) bool {
	if _, ok := s.members[item]; ok {
		return false
	}
	s.members[item] = struct{}{}
	return true
}

// Remove deletes an item from the set.
func (s *Set) Remove(item interface{}) {
	delete(s.members, item)
}

// Contains reports whether item is a member of the set.
func (s *Set) Contains(item interface{}) bool {
	_, ok := s.members[item]
	return ok
}

// Empty reports whether the set has no members.
func (s *Set) Empty() bool {
	return len(s.members) == 0
}

// Size returns the number of members.
func (s *Set) Size() int {
	return len(s.members)
}

// Copy returns a shallow copy of the set (members only; iteration state is
// reset).
func (s *Set) Copy() *Set {
	cp := NewSet(len(s.members))
	for k := range s.members {
		cp.members[k] = struct{}{}
	}
	return cp
}

// Values returns all members, in unspecified order.
func (s *Set) Values() []interface{} {
	out := make([]interface{}, 0, len(s.members))
	for k := range s.members {
		out = append(out, k)
	}
	return out
}

// Union adds every member of other to s and reports whether s grew.
func (s *Set) Union(other *Set) bool {
	grew := false
	for k := range other.members {
		if s.Add(k) {
			grew = true
		}
	}
	return grew
}

// Difference returns a new set containing the members of s not present in
// other.
func (s *Set) Difference(other *Set) *Set {
	d := NewSet(0)
	for k := range s.members {
		if _, in := other.members[k]; !in {
			d.members[k] = struct{}{}
		}
	}
	return d
}

// IterateOnce arms the set for a single pass over its current members via
// Next/Item. Mutations performed during the pass are not visible until the
// next call to IterateOnce.
func (s *Set) IterateOnce() {
	s.snapshot = s.Values()
	s.cursor = -1
}

// Next advances the iteration cursor. Returns false once the snapshot is
// exhausted.
func (s *Set) Next() bool {
	s.cursor++
	return s.cursor < len(s.snapshot)
}

// Item returns the current item of the armed iteration.
func (s *Set) Item() interface{} {
	if s.cursor < 0 || s.cursor >= len(s.snapshot) {
		return nil
	}
	return s.snapshot[s.cursor]
}
