package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNCounter_Basic(t *testing.T) {
	counter := NewPNCounter()

	require.NoError(t, counter.Increment("node-a", 10))
	require.NoError(t, counter.Decrement("node-a", 3))

	assert.EqualValues(t, 7, counter.Value())
}

func TestPNCounter_MergeConverges(t *testing.T) {
	nodeA := NewPNCounter()
	nodeB := NewPNCounter()

	require.NoError(t, nodeA.Increment("n1", 10))
	require.NoError(t, nodeB.Increment("n2", 20))

	require.NoError(t, nodeA.Merge(nodeB))
	require.NoError(t, nodeB.Merge(nodeA))

	assert.EqualValues(t, 30, nodeA.Value())
	assert.EqualValues(t, 30, nodeB.Value())
	assert.True(t, nodeA.Equal(nodeB))
}

func TestPNCounter_MergeTakesMaxNotSum(t *testing.T) {
	a := NewPNCounter()
	b := NewPNCounter()
	require.NoError(t, a.Increment("n", 5))
	require.NoError(t, b.Increment("n", 3))

	require.NoError(t, a.Merge(b))

	assert.EqualValues(t, 5, a.Value(), "merging P:{n:5} with P:{n:3} must yield 5, not 8")
}

func TestPNCounter_Overflow(t *testing.T) {
	c := NewPNCounter()
	require.NoError(t, c.Increment("n", 1<<63))
	err := c.Increment("n", 1<<63)
	assert.ErrorIs(t, err, ErrCounterOverflow)
}

func TestPNCounter_MergeWrongTypeIsMalformed(t *testing.T) {
	a := NewPNCounter()
	err := a.Merge(NewLWWRegister())
	assert.ErrorIs(t, err, ErrMalformedState)
}
