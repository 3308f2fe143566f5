package crdt

import "github.com/pkg/errors"

// Sentinel error kinds surfaced by the core. Callers distinguish them
// with errors.Is; wrapped context is recovered with errors.Cause or
// by unwrapping.
var (
	// ErrCounterOverflow is returned when a local PN-Counter mutation
	// would exceed the representable range of the underlying counter.
	ErrCounterOverflow = errors.New("crdt: counter overflow")

	// ErrClockReuse is returned when an LWW write or merge observes a
	// (timestamp, writer) pair already associated with a different
	// value. The operation still completes with a deterministic
	// tiebreak; this error is advisory, not fatal.
	ErrClockReuse = errors.New("crdt: clock reused with a different value")

	// ErrMalformedState is returned when decoding rejects structurally
	// invalid bytes, or when Merge receives an other of the wrong
	// concrete type.
	ErrMalformedState = errors.New("crdt: malformed state")

	// ErrIncompatibleVersion is returned when a decoded state carries
	// a wire version this build does not understand.
	ErrIncompatibleVersion = errors.New("crdt: incompatible wire version")
)
