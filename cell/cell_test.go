// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cell

import (
	"testing"

	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

var (
	testCodeHash = wire.Hash{0x9b, 0xd7}
	testDaoHash  = wire.Hash{0x82, 0xd7}
)

// TestScriptEq covers the comparison table including two absent scripts.
func TestScriptEq(t *testing.T) {
	t.Parallel()

	a := NewScript(testCodeHash, []byte{1, 2, 3})
	same := NewScript(testCodeHash, []byte{1, 2, 3}).
		WithSince(42).WithWitness([]byte{9})
	otherArgs := NewScript(testCodeHash, []byte{1, 2})
	otherType := NewScript(testCodeHash, []byte{1, 2, 3},
		WithHashType(wire.HashTypeData1))

	testCases := []struct {
		name    string
		a, b    fn.Option[Script]
		want    bool
		wantErr error
	}{
		{
			name: "equal ignoring augmentation",
			a:    fn.Some(a),
			b:    fn.Some(same),
			want: true,
		},
		{
			name: "different args",
			a:    fn.Some(a),
			b:    fn.Some(otherArgs),
		},
		{
			name: "different hash type",
			a:    fn.Some(a),
			b:    fn.Some(otherType),
		},
		{
			name: "one absent",
			a:    fn.Some(a),
			b:    fn.None[Script](),
		},
		{
			name:    "both absent",
			a:       fn.None[Script](),
			b:       fn.None[Script](),
			wantErr: ErrInvalidComparison,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ScriptEq(tc.a, tc.b)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestMinimalCapacity checks the storage rule for common cell shapes.
func TestMinimalCapacity(t *testing.T) {
	t.Parallel()

	lock := NewScript(testCodeHash, make([]byte, 20))

	// 8 capacity + 32 code hash + 1 hash type + 20 args.
	simple := New(CapacityUnset, lock, fn.None[Script](), nil)
	require.Equal(t, uint64(61*ShannonsPerByte), simple.Capacity)
	require.True(t, simple.IsSimple())

	// A deposit adds a type script without args and 8 bytes of data.
	dao := NewScript(testDaoHash, nil)
	deposit := New(CapacityUnset, lock, fn.Some(dao), make([]byte, 8))
	require.Equal(t, uint64(102*ShannonsPerByte), deposit.Capacity)
	require.False(t, deposit.IsSimple())
	require.True(t, deposit.TypeIs(dao))
	require.False(t, simple.TypeIs(dao))

	explicit := New(1000*ShannonsPerByte, lock, fn.None[Script](), nil)
	require.Equal(t, uint64(1000*ShannonsPerByte), explicit.Capacity)
}

// TestWithDoesNotAlias ensures modified copies leave the original intact.
func TestWithDoesNotAlias(t *testing.T) {
	t.Parallel()

	dep := wire.CellDep{OutPoint: wire.OutPoint{Index: 1}}
	lock := NewScript(testCodeHash, []byte{1}, WithDeps(dep))
	c := New(CapacityUnset, lock, fn.None[Script](), []byte{5})

	withData := c.WithData([]byte{6, 7})
	withData.Data[0] = 0xff
	require.Equal(t, []byte{5}, c.Data)

	moreDeps := lock.WithCellDeps(dep, dep)
	require.Len(t, lock.CellDeps, 1)
	require.Len(t, moreDeps.CellDeps, 2)

	relocked := c.WithLock(lock.WithArgs([]byte{2}))
	relocked.Lock.Args[0] = 3
	require.Equal(t, []byte{1}, c.Lock.Args)

	located := c.WithBlock(wire.Hash{4}, 10)
	require.True(t, c.BlockNumber.IsNone())
	require.Equal(t, uint64(10), located.BlockNumber.UnwrapOr(0))
}

// TestFromOutput checks conversion between wire outputs and cells.
func TestFromOutput(t *testing.T) {
	t.Parallel()

	out := wire.CellOutput{
		Capacity: 200 * ShannonsPerByte,
		Lock: wire.Script{
			CodeHash: testCodeHash,
			HashType: wire.HashTypeType,
			Args:     []byte{1},
		},
		Type: fn.Some(wire.Script{CodeHash: testDaoHash}),
	}
	c := FromOutput(out, []byte{0})
	require.Equal(t, out.Capacity, c.Capacity)
	require.True(t, c.Type.IsSome())
	require.Empty(t, c.Lock.CellDeps)
	want, err := out.Serialize()
	require.NoError(t, err)
	got, err := c.Output().Serialize()
	require.NoError(t, err)
	require.Equal(t, want, got)

	op := wire.OutPoint{TxHash: wire.Hash{1}, Index: 3}
	in := c.WithOutPoint(op).Input(7)
	require.Equal(t, op, in.PreviousOutput)
	require.Equal(t, uint64(7), in.Since)
}
