//go:build !crdt_debug
// +build !crdt_debug

package crdt

// assertNoClockReuse is a no-op in release builds; the deterministic
// tiebreak in LWWRegisterState.Write/Merge already keeps the register
// total, and the returned ErrClockReuse carries the same signal for
// callers who want it without paying for a debug build.
func assertNoClockReuse(NodeID, LogicalClock) {}
