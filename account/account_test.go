// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"testing"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/netparams"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

func testAccount(t *testing.T, owner byte) Account {
	t.Helper()

	a, err := New(&netparams.TestNetParams,
		bytes.Repeat([]byte{owner}, Blake160Size))
	require.NoError(t, err)
	return a
}

// rawCell returns a cell as a node reports it: a bare lock without deps or
// witness.
func rawCell(a Account, capacity uint64, data []byte) cell.Cell {
	lock := cell.NewScript(a.Lock.CodeHash, a.Lock.Args,
		cell.WithHashType(a.Lock.HashType))
	return cell.New(capacity, lock, fn.None[cell.Script](), data)
}

func TestNew(t *testing.T) {
	t.Parallel()

	a := testAccount(t, 1)
	require.Equal(t, netparams.TestNetParams.Scripts[
		netparams.Secp256k1Blake160].CellDep, a.Lock.CellDeps[0])
	require.Equal(t, fn.Some(SignaturePlaceholder()), a.Lock.Witness)

	_, err := New(&netparams.TestNetParams, make([]byte, 21))
	require.ErrorIs(t, err, ErrInvalidArgs)
}

func TestSift(t *testing.T) {
	t.Parallel()

	alice := testAccount(t, 1)
	bob := testAccount(t, 2)

	cells := []cell.Cell{
		rawCell(alice, 100, nil),
		rawCell(bob, 200, nil),
		rawCell(alice, 300, []byte{1}),
	}

	sifted := Sift(cells, alice.Expander())
	require.Len(t, sifted.Owned, 2)
	require.Equal(t, uint64(100), sifted.Owned[0].Capacity)
	require.Equal(t, uint64(300), sifted.Owned[1].Capacity)
	require.Equal(t, []cell.Cell{cells[1]}, sifted.Unrelated)

	// Owned cells now carry what is needed to spend them.
	for _, c := range sifted.Owned {
		require.Equal(t, alice.Lock.CellDeps, c.Lock.CellDeps)
		require.True(t, c.Lock.Witness.IsSome())
	}

	// The input cells are left alone.
	require.Empty(t, cells[0].Lock.CellDeps)

	both := Sift(cells, MultiExpander(alice.Expander(), bob.Expander()))
	require.Len(t, both.Owned, 3)
	require.Empty(t, both.Unrelated)

	require.Equal(t, []cell.Cell{sifted.Owned[0]},
		SimpleCells(sifted.Owned))
	require.Equal(t, uint64(400), Capacity(sifted.Owned))
}

func TestSimpleCellsSkipsTyped(t *testing.T) {
	t.Parallel()

	a := testAccount(t, 1)
	typed := rawCell(a, 100, nil).WithType(fn.Some(
		cell.NewScript(wire.Hash{0x82}, nil)))
	require.Empty(t, SimpleCells([]cell.Cell{typed}))
}
