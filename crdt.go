// Package crdt provides the state-based Conflict-free Replicated Data
// Types that underpin MergeDB's convergence guarantees: a PN-Counter,
// an Add-Wins Set, and a Last-Writer-Wins Register, plus the shared
// merge contract and dot/clock primitives they build on.
//
// Every type in this package is a join-semilattice: Merge is
// commutative, associative, and idempotent, and only ever adds
// information. The package performs no I/O, takes no locks, and is
// safe for concurrent use only across distinct state instances — a
// single instance is owned by exactly one logical holder at a time,
// and callers are responsible for serializing access to it.
package crdt

// State is the contract every CRDT in this package satisfies: a
// binary join operation over a join-semilattice, plus the ability to
// produce an independent copy (tests, snapshots) without aliasing the
// receiver's internal maps.
//
// Merge mutates the receiver in place and is total on well-formed
// inputs. When other is not the same concrete type it returns an
// error wrapping ErrMalformedState and leaves the receiver unchanged.
// The LWW-Register's Merge may also return an advisory error wrapping
// ErrClockReuse; in that case the merge has still been applied.
type State interface {
	// Merge incorporates other's state into the receiver. other must
	// be the same concrete type as the receiver; a mismatched type is
	// reported via ErrMalformedState.
	Merge(other State) error

	// Clone returns an independent copy of the receiver.
	Clone() State
}
