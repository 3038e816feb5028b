// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cell provides the augmented cell model used while assembling
// transactions.
//
// Raw chain values (scripts, outputs, headers) are wrapped in records that
// additionally carry what a transaction needs to use them: cell deps, header
// deps, a since value and a witness fragment per script. Records are
// immutable in practice; every modification goes through a With method that
// returns a fresh copy, so a transaction skeleton built from them can be
// compared before and after an operation without aliasing.
package cell

import (
	"bytes"

	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
)

const (
	// ShannonsPerByte is the capacity, in shannons, one byte of cell
	// storage occupies.
	ShannonsPerByte = 100_000_000

	// CapacityUnset asks New to fill in the minimal capacity.
	CapacityUnset uint64 = 0

	// capacityFieldSize is the size of the capacity field itself, which
	// is part of the occupied storage.
	capacityFieldSize = 8
)

// Cell is a live or to-be-created cell.
type Cell struct {
	// Capacity in shannons.
	Capacity uint64
	Lock     Script
	Type     fn.Option[Script]
	Data     []byte

	// OutPoint is set for cells that exist on chain.
	OutPoint fn.Option[wire.OutPoint]

	// Chain location of the transaction that created the cell.
	BlockHash   fn.Option[wire.Hash]
	BlockNumber fn.Option[uint64]
	TxIndex     fn.Option[uint64]
}

// New returns a cell. A capacity of CapacityUnset is replaced by the
// minimal capacity of the cell; any other capacity is kept as given.
func New(capacity uint64, lock Script, typ fn.Option[Script],
	data []byte) Cell {

	c := Cell{
		Capacity: capacity,
		Lock:     lock.clone(),
		Type:     cloneOptScript(typ),
		Data:     bytes.Clone(data),
	}
	if c.Capacity == CapacityUnset {
		c.Capacity = MinimalCapacity(c)
	}
	return c
}

// FromOutput augments a raw output and its data. Chain location is attached
// separately with WithOutPoint and WithBlock.
func FromOutput(out wire.CellOutput, data []byte) Cell {
	typ := fn.None[Script]()
	out.Type.WhenSome(func(s wire.Script) {
		typ = fn.Some(ScriptFromWire(s))
	})
	return New(out.Capacity, ScriptFromWire(out.Lock), typ, data)
}

func cloneOptScript(o fn.Option[Script]) fn.Option[Script] {
	out := fn.None[Script]()
	o.WhenSome(func(s Script) {
		out = fn.Some(s.clone())
	})
	return out
}

// clone returns a copy of c sharing no mutable memory with it.
func (c Cell) clone() Cell {
	c.Lock = c.Lock.clone()
	c.Type = cloneOptScript(c.Type)
	c.Data = bytes.Clone(c.Data)
	return c
}

// WithCapacity returns a copy of c holding capacity shannons.
func (c Cell) WithCapacity(capacity uint64) Cell {
	c = c.clone()
	c.Capacity = capacity
	return c
}

// WithLock returns a copy of c locked by lock.
func (c Cell) WithLock(lock Script) Cell {
	c = c.clone()
	c.Lock = lock.clone()
	return c
}

// WithType returns a copy of c with the given type script.
func (c Cell) WithType(typ fn.Option[Script]) Cell {
	c = c.clone()
	c.Type = cloneOptScript(typ)
	return c
}

// WithData returns a copy of c with new data.
func (c Cell) WithData(data []byte) Cell {
	c = c.clone()
	c.Data = bytes.Clone(data)
	return c
}

// WithOutPoint returns a copy of c located at op.
func (c Cell) WithOutPoint(op wire.OutPoint) Cell {
	c = c.clone()
	c.OutPoint = fn.Some(op)
	return c
}

// WithBlock returns a copy of c created in the given block.
func (c Cell) WithBlock(hash wire.Hash, number uint64) Cell {
	c = c.clone()
	c.BlockHash = fn.Some(hash)
	c.BlockNumber = fn.Some(number)
	return c
}

// IsSimple reports whether c is a pure capacity cell: no type script and no
// data.
func (c Cell) IsSimple() bool {
	return c.Type.IsNone() && len(c.Data) == 0
}

// TypeIs reports whether c has a type script equal to s.
func (c Cell) TypeIs(s Script) bool {
	eq, _ := ScriptEq(c.Type, fn.Some(s))
	return eq
}

// Output returns the on-chain output of c.
func (c Cell) Output() wire.CellOutput {
	typ := fn.None[wire.Script]()
	c.Type.WhenSome(func(s Script) {
		typ = fn.Some(s.Wire())
	})
	return wire.CellOutput{
		Capacity: c.Capacity,
		Lock:     c.Lock.Wire(),
		Type:     typ,
	}
}

// Input returns the input spending c with the given since.
func (c Cell) Input(since uint64) wire.CellInput {
	return wire.CellInput{
		Since:          since,
		PreviousOutput: c.OutPoint.UnwrapOr(wire.OutPoint{}),
	}
}

// scriptOccupied is the storage a script occupies: code hash, hash type and
// args.
func scriptOccupied(s Script) uint64 {
	return wire.HashSize + 1 + uint64(len(s.Args))
}

// MinimalCapacity returns the least capacity, in shannons, that can hold c:
// one CKByte per byte of capacity field, lock, type and data.
func MinimalCapacity(c Cell) uint64 {
	size := capacityFieldSize + scriptOccupied(c.Lock) + uint64(len(c.Data))
	c.Type.WhenSome(func(s Script) {
		size += scriptOccupied(s)
	})
	return size * ShannonsPerByte
}
