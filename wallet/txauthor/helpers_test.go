// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"bytes"
	"testing"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

var (
	lockCodeHash = wire.Hash{0x9b}
	typeCodeHash = wire.Hash{0x82}

	lockDep = wire.CellDep{
		OutPoint: wire.OutPoint{TxHash: wire.Hash{0x71}},
		DepType:  wire.DepTypeDepGroup,
	}
	typeDep = wire.CellDep{
		OutPoint: wire.OutPoint{TxHash: wire.Hash{0xe2}, Index: 2},
		DepType:  wire.DepTypeCode,
	}

	sigPlaceholder = make([]byte, 65)
)

// ckb converts whole CKBytes to shannons.
func ckb(n uint64) uint64 {
	return n * cell.ShannonsPerByte
}

// testLock returns a lock carrying its cell dep and a signature placeholder.
func testLock(owner byte) cell.Script {
	return cell.NewScript(lockCodeHash, bytes.Repeat([]byte{owner}, 20),
		cell.WithDeps(lockDep)).WithWitness(sigPlaceholder)
}

// liveCell returns a pure capacity cell at a distinct out point.
func liveCell(capacity uint64, owner, id byte) cell.Cell {
	return cell.New(capacity, testLock(owner), fn.None[cell.Script](), nil).
		WithOutPoint(wire.OutPoint{TxHash: wire.Hash{id}})
}

// outputCell returns a pure capacity output.
func outputCell(capacity uint64, owner byte) cell.Cell {
	lock := cell.NewScript(lockCodeHash, bytes.Repeat([]byte{owner}, 20))
	return cell.New(capacity, lock, fn.None[cell.Script](), nil)
}

// typed returns c with a type script carrying the given extras.
func typed(c cell.Cell, typ cell.Script) cell.Cell {
	return c.WithType(fn.Some(typ))
}

func witnessArgs(lock, inputType, outputType fn.Option[[]byte]) []byte {
	return wire.WitnessArgs{
		Lock:       lock,
		InputType:  inputType,
		OutputType: outputType,
	}.Serialize()
}

func none() fn.Option[[]byte] {
	return fn.None[[]byte]()
}

func some(b []byte) fn.Option[[]byte] {
	return fn.Some(b)
}

func mustAdd(t *testing.T, s Skeleton, mode AddMode, inputs,
	outputs []cell.Cell) Skeleton {

	t.Helper()

	next, err := AddCells(s, mode, inputs, outputs)
	require.NoError(t, err)
	return next
}

// capacityOf returns the capacities of cells, a compact way to identify them
// in assertions.
func capacityOf(cells []cell.Cell) []uint64 {
	out := make([]uint64, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Capacity)
	}
	return out
}

func noType() fn.Option[cell.Script] {
	return fn.None[cell.Script]()
}
