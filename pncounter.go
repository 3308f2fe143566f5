package crdt

import "github.com/pkg/errors"

// PNCounterState is a Positive-Negative Counter CRDT: two grow-only
// per-node maps, one tracking increments (P) and one tracking
// decrements (N). Neither map ever loses an entry; the observable
// value is the difference of their sums, which may be negative.
type PNCounterState struct {
	p counterMap
	n counterMap
}

// NewPNCounter returns an empty PN-Counter.
func NewPNCounter() *PNCounterState {
	return &PNCounterState{p: counterMap{}, n: counterMap{}}
}

// Increment adds delta to node's slot in P. A node never seen before
// is treated as starting from 0.
func (c *PNCounterState) Increment(node NodeID, delta uint64) error {
	return c.p.add(node, delta)
}

// Decrement adds delta to node's slot in N.
func (c *PNCounterState) Decrement(node NodeID, delta uint64) error {
	return c.n.add(node, delta)
}

// Value returns sum(P) - sum(N) as a signed integer; it may be
// negative.
func (c *PNCounterState) Value() int64 {
	return int64(c.p.sum()) - int64(c.n.sum())
}

// Merge takes the per-node maximum of P and of N independently. A
// node's P[n] differing between self and other always picks the
// larger value — never the sum, which would double-count.
func (c *PNCounterState) Merge(other State) error {
	o, ok := other.(*PNCounterState)
	if !ok {
		return errors.Wrapf(ErrMalformedState, "cannot merge %T into PNCounterState", other)
	}
	c.p.mergeMax(o.p)
	c.n.mergeMax(o.n)
	return nil
}

// Clone returns an independent copy.
func (c *PNCounterState) Clone() State {
	return &PNCounterState{p: c.p.clone(), n: c.n.clone()}
}

// Equal reports whether c and other hold identical P and N maps. Used
// by property tests to check observable determinism without relying
// on Value() alone, which can coincide for different underlying maps.
func (c *PNCounterState) Equal(other *PNCounterState) bool {
	return c.p.equal(other.p) && c.n.equal(other.n)
}
