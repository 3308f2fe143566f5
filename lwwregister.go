package crdt

import (
	"bytes"

	"github.com/pkg/errors"
)

// LWWRegisterState is a Last-Writer-Wins register: a single value
// tagged with a LogicalClock timestamp and the writer's NodeID. The
// triple is always the unique maximum under the total order defined
// by greater below — higher timestamp wins, writer NodeID breaks
// ties. An unset register reads back (nil, false).
type LWWRegisterState struct {
	value     []byte
	timestamp LogicalClock
	writer    NodeID
	set       bool
}

// NewLWWRegister returns an uninitialized register.
func NewLWWRegister() *LWWRegisterState {
	return &LWWRegisterState{}
}

// greater reports whether (c1, n1) strictly outranks (c2, n2): higher
// timestamp wins, lexicographically higher writer NodeID breaks a tie.
func greater(c1 LogicalClock, n1 NodeID, c2 LogicalClock, n2 NodeID) bool {
	if c1 != c2 {
		return c1 > c2
	}
	return n1 > n2
}

// Write stages value under (node, clock). It always accepts: if
// (clock, node) ties the current stamp with a different value — a
// same-writer clock reuse, which should never happen — the register
// deterministically keeps whichever value is lexicographically
// larger, and returns an error wrapping ErrClockReuse so callers (and
// tests, via assertNoClockReuse) can notice.
func (r *LWWRegisterState) Write(value []byte, node NodeID, clock LogicalClock) error {
	if r.set && clock == r.timestamp && node == r.writer && !bytes.Equal(value, r.value) {
		assertNoClockReuse(node, clock)
		if bytes.Compare(value, r.value) > 0 {
			r.value = cloneBytes(value)
		}
		return errors.Wrapf(ErrClockReuse, "writer %q reused clock %d with a different value", node, clock)
	}
	if !r.set || greater(clock, node, r.timestamp, r.writer) {
		r.value = cloneBytes(value)
		r.timestamp = clock
		r.writer = node
		r.set = true
	}
	return nil
}

// Read returns the current value and whether the register has ever
// been written.
func (r *LWWRegisterState) Read() ([]byte, bool) {
	if !r.set {
		return nil, false
	}
	return cloneBytes(r.value), true
}

// Merge replaces the receiver with other iff other's triple strictly
// outranks the receiver's; otherwise it is a no-op. An unset other
// never overwrites a set receiver. The one exception is a clock reuse:
// if other carries the receiver's (timestamp, writer) with a different
// value, the lexicographically larger value is kept and an error
// wrapping ErrClockReuse is returned, as in Write.
func (r *LWWRegisterState) Merge(other State) error {
	o, ok := other.(*LWWRegisterState)
	if !ok {
		return errors.Wrapf(ErrMalformedState, "cannot merge %T into LWWRegisterState", other)
	}
	if !o.set {
		return nil
	}
	if r.set && o.timestamp == r.timestamp && o.writer == r.writer && !bytes.Equal(o.value, r.value) {
		assertNoClockReuse(o.writer, o.timestamp)
		if bytes.Compare(o.value, r.value) > 0 {
			r.value = cloneBytes(o.value)
		}
		return errors.Wrapf(ErrClockReuse, "writer %q reused clock %d with a different value", o.writer, o.timestamp)
	}
	if !r.set || greater(o.timestamp, o.writer, r.timestamp, r.writer) {
		r.value = cloneBytes(o.value)
		r.timestamp = o.timestamp
		r.writer = o.writer
		r.set = true
	}
	return nil
}

// Clone returns an independent copy.
func (r *LWWRegisterState) Clone() State {
	return &LWWRegisterState{value: cloneBytes(r.value), timestamp: r.timestamp, writer: r.writer, set: r.set}
}

// Equal reports whether r and other hold the identical (value,
// timestamp, writer, set) tuple.
func (r *LWWRegisterState) Equal(other *LWWRegisterState) bool {
	return r.set == other.set && r.timestamp == other.timestamp && r.writer == other.writer && bytes.Equal(r.value, other.value)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
