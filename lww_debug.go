//go:build crdt_debug
// +build crdt_debug

package crdt

import "fmt"

// assertNoClockReuse panics when built with -tags crdt_debug, turning
// the advisory ErrClockReuse condition into a hard failure for
// property tests that want to catch a same-writer clock collision
// immediately instead of inspecting the returned error.
func assertNoClockReuse(node NodeID, clock LogicalClock) {
	panic(fmt.Sprintf("crdt: clock reuse by writer %q at clock %d", node, clock))
}
