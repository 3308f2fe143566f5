package crdt

import "github.com/pkg/errors"

// counterMap is a grow-only per-node counter map: a node may only
// increase its own slot, and merge takes the maximum slot value seen
// on either side. This is the building block the PN-Counter composes
// twice — once to track increments (P), once to track decrements (N)
// — rather than a counter in its own right.
type counterMap map[NodeID]uint64

// add increases node's slot by delta, rejecting a would-overflow
// mutation instead of silently wrapping.
func (m counterMap) add(node NodeID, delta uint64) error {
	cur := m[node]
	next := cur + delta
	if next < cur {
		return errors.Wrapf(ErrCounterOverflow, "node %q: %d + %d overflows uint64", node, cur, delta)
	}
	m[node] = next
	return nil
}

// sum returns the total across every node's slot.
func (m counterMap) sum() uint64 {
	var total uint64
	for _, v := range m {
		total += v
	}
	return total
}

// mergeMax takes the per-node maximum of m and other, writing the
// result into m. Entries present on only one side are copied as-is.
func (m counterMap) mergeMax(other counterMap) {
	for node, v := range other {
		if v > m[node] {
			m[node] = v
		}
	}
}

// clone returns an independent copy.
func (m counterMap) clone() counterMap {
	c := make(counterMap, len(m))
	for node, v := range m {
		c[node] = v
	}
	return c
}

// equal reports whether m and other hold identical node/value pairs.
func (m counterMap) equal(other counterMap) bool {
	if len(m) != len(other) {
		return false
	}
	for node, v := range m {
		if ov, ok := other[node]; !ok || ov != v {
			return false
		}
	}
	return true
}
