package crdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLWWRegister_WriteThenRead(t *testing.T) {
	r := NewLWWRegister()
	_, ok := r.Read()
	assert.False(t, ok, "uninitialized register must read back absent")

	require.NoError(t, r.Write([]byte("x"), "a", 1))
	v, ok := r.Read()
	require.True(t, ok)
	assert.Equal(t, []byte("x"), v)
}

func TestLWWRegister_HigherWriterBreaksTimestampTie(t *testing.T) {
	a := NewLWWRegister()
	require.NoError(t, a.Write([]byte("x"), "a", 1))

	b := NewLWWRegister()
	require.NoError(t, b.Write([]byte("y"), "b", 1))

	require.NoError(t, a.Merge(b))
	v, _ := a.Read()
	assert.Equal(t, []byte("y"), v, "higher writer NodeID must win on a timestamp tie")
}

func TestLWWRegister_HigherClockBeatsWriterTiebreak(t *testing.T) {
	a := NewLWWRegister()
	require.NoError(t, a.Write([]byte("x"), "a", 2))

	b := NewLWWRegister()
	require.NoError(t, b.Write([]byte("y"), "z", 1))

	require.NoError(t, a.Merge(b))
	v, _ := a.Read()
	assert.Equal(t, []byte("x"), v, "a higher clock must beat a higher writer at a lower clock")
}

func TestLWWRegister_MergeUnsetOtherIsNoop(t *testing.T) {
	a := NewLWWRegister()
	require.NoError(t, a.Write([]byte("x"), "a", 1))

	b := NewLWWRegister()
	require.NoError(t, a.Merge(b))

	v, ok := a.Read()
	require.True(t, ok)
	assert.Equal(t, []byte("x"), v)
}

func TestLWWRegister_ClockReuseDeterministicTiebreak(t *testing.T) {
	a := NewLWWRegister()
	require.NoError(t, a.Write([]byte("aaa"), "w", 5))

	err := a.Write([]byte("zzz"), "w", 5)
	assert.ErrorIs(t, err, ErrClockReuse)

	v, _ := a.Read()
	assert.Equal(t, []byte("zzz"), v, "tiebreak picks the lexicographically larger value")

	// Applying the same reused write again must be idempotent.
	err2 := a.Write([]byte("zzz"), "w", 5)
	assert.NoError(t, err2)
}

func TestLWWRegister_MergeWrongTypeIsMalformed(t *testing.T) {
	a := NewLWWRegister()
	err := a.Merge(NewPNCounter())
	assert.ErrorIs(t, err, ErrMalformedState)
}

func TestLWWRegister_CloneIsIndependent(t *testing.T) {
	a := NewLWWRegister()
	require.NoError(t, a.Write([]byte("x"), "a", 1))
	clone := a.Clone().(*LWWRegisterState)

	require.NoError(t, clone.Write([]byte("y"), "b", 2))

	v, _ := a.Read()
	assert.Equal(t, []byte("x"), v)
}
