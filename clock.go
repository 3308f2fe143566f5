package crdt

import "github.com/google/uuid"

// NodeID is an opaque, totally-ordered identifier for a replica.
// Equality and lexicographic order must be deterministic across
// replicas — this package never compares NodeIDs any other way.
type NodeID string

// LogicalClock is an unsigned, per-replica monotonic counter. It is
// strictly increasing within a single replica across successive
// mutating operations. Clocks are never synchronized across replicas;
// the only guarantee is that one replica's clock never regresses.
type LogicalClock uint64

// Dot is the pair (NodeID, LogicalClock) marking a single local
// event. Dots issued by one replica are unique; the combination is
// globally unique provided a replica never reuses a clock value.
type Dot struct {
	Node  NodeID
	Clock LogicalClock
}

// Less orders dots by clock first, then lexicographically by node on
// a tie. This order is used by the LWW-Register's tiebreak and by the
// canonical wire encoding; it is never used to imply causality across
// replicas.
func (d Dot) Less(other Dot) bool {
	if d.Clock != other.Clock {
		return d.Clock < other.Clock
	}
	return d.Node < other.Node
}

// Clock mints the dots a single replica issues. It owns the local
// monotonic counter; CRDT states never read or advance it themselves
// — every mutator takes an explicit (NodeID, LogicalClock) or Dot, so
// the states stay pure and testable with deterministic clocks.
type Clock struct {
	node    NodeID
	counter LogicalClock
}

// NewClock returns a Clock for the given node, starting at counter 0.
func NewClock(node NodeID) *Clock {
	return &Clock{node: node}
}

// NewNodeID mints a random NodeID for callers that don't already have
// a stable replica identity (tests, examples, ad hoc replicas).
func NewNodeID() NodeID {
	return NodeID(uuid.NewString())
}

// Node returns the replica identifier this clock mints dots for.
func (c *Clock) Node() NodeID {
	return c.node
}

// Current returns the most recently issued clock value, 0 if Next has
// never been called.
func (c *Clock) Current() LogicalClock {
	return c.counter
}

// Next advances the local clock and returns the freshly minted dot.
func (c *Clock) Next() Dot {
	c.counter++
	return Dot{Node: c.node, Clock: c.counter}
}
