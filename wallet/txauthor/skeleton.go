// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"bytes"
	"maps"
	"slices"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wire"
)

// Field names a list of the transaction whose prefix can be committed.
type Field uint8

const (
	// FieldCellDeps is the transaction's cell dep list.
	FieldCellDeps Field = iota

	// FieldHeaderDeps is the transaction's header dep list.
	FieldHeaderDeps

	// FieldInputs is the transaction's input list.
	FieldInputs

	// FieldOutputs is the transaction's output list.
	FieldOutputs
)

// String returns the field's name.
func (f Field) String() string {
	switch f {
	case FieldCellDeps:
		return "cellDeps"
	case FieldHeaderDeps:
		return "headerDeps"
	case FieldInputs:
		return "inputs"
	case FieldOutputs:
		return "outputs"
	default:
		return "unknown"
	}
}

// FixedEntry marks every entry of Field at or below Index as committed.
// Committed entries are never reordered and nothing is inserted before them.
type FixedEntry struct {
	Field Field
	Index int
}

// FixedEntries is the highest committed index per field, -1 when nothing of
// the field is committed.
type FixedEntries struct {
	CellDeps   int
	HeaderDeps int
	Inputs     int
	Outputs    int
}

// Get returns the boundary of field f.
func (f FixedEntries) Get(field Field) int {
	switch field {
	case FieldCellDeps:
		return f.CellDeps
	case FieldHeaderDeps:
		return f.HeaderDeps
	case FieldInputs:
		return f.Inputs
	case FieldOutputs:
		return f.Outputs
	default:
		return -1
	}
}

// SigningEntry is a message a signer must sign for the witness at Index.
// Once a skeleton carries signing entries, its paired input/output region is
// frozen.
type SigningEntry struct {
	Type    string
	Index   int
	Message []byte
}

// Skeleton is a transaction under construction. It is a value: operations
// take a skeleton and return a new one, leaving the argument untouched. A
// skeleton must not be mutated from several goroutines; callers acquiring
// cells concurrently serialize their AddCells calls.
type Skeleton struct {
	Inputs  []cell.Cell
	Outputs []cell.Cell

	CellDeps   []wire.CellDep
	HeaderDeps []wire.Hash

	// InputSinces holds the since of each time-locked input by index.
	// Inputs without an entry have no lock.
	InputSinces map[int]uint64

	// Witnesses are packed witness args, trailing empty slots trimmed.
	Witnesses [][]byte

	FixedEntries   []FixedEntry
	SigningEntries []SigningEntry
}

// NewSkeleton returns an empty skeleton.
func NewSkeleton() Skeleton {
	return Skeleton{
		InputSinces: make(map[int]uint64),
	}
}

// clone returns a copy of s that shares no mutable memory with it. Cells are
// values whose With methods already copy, so the cell slices are copied
// shallowly.
func (s Skeleton) clone() Skeleton {
	out := Skeleton{
		Inputs:         slices.Clone(s.Inputs),
		Outputs:        slices.Clone(s.Outputs),
		CellDeps:       slices.Clone(s.CellDeps),
		HeaderDeps:     slices.Clone(s.HeaderDeps),
		InputSinces:    maps.Clone(s.InputSinces),
		Witnesses:      make([][]byte, len(s.Witnesses)),
		FixedEntries:   slices.Clone(s.FixedEntries),
		SigningEntries: slices.Clone(s.SigningEntries),
	}
	if out.InputSinces == nil {
		out.InputSinces = make(map[int]uint64)
	}
	for i, w := range s.Witnesses {
		out.Witnesses[i] = bytes.Clone(w)
	}
	return out
}

// Fixed derives the committed boundary of every field by taking the highest
// index recorded for it.
func (s Skeleton) Fixed() FixedEntries {
	fixed := FixedEntries{
		CellDeps:   -1,
		HeaderDeps: -1,
		Inputs:     -1,
		Outputs:    -1,
	}
	for _, e := range s.FixedEntries {
		switch e.Field {
		case FieldCellDeps:
			fixed.CellDeps = max(fixed.CellDeps, e.Index)
		case FieldHeaderDeps:
			fixed.HeaderDeps = max(fixed.HeaderDeps, e.Index)
		case FieldInputs:
			fixed.Inputs = max(fixed.Inputs, e.Index)
		case FieldOutputs:
			fixed.Outputs = max(fixed.Outputs, e.Index)
		}
	}
	return fixed
}

// withFixed records index as committed for field. Boundaries only grow, so
// an index at or below the current boundary is not recorded.
func (s Skeleton) withFixed(field Field, index int) Skeleton {
	if index <= s.Fixed().Get(field) {
		return s
	}
	s.FixedEntries = append(slices.Clone(s.FixedEntries), FixedEntry{
		Field: field,
		Index: index,
	})
	return s
}

// WithSigningEntries returns a copy of s carrying the signing entries.
func (s Skeleton) WithSigningEntries(entries ...SigningEntry) Skeleton {
	out := s.clone()
	out.SigningEntries = append(out.SigningEntries, entries...)
	return out
}

// Transaction returns the unsigned transaction the skeleton describes.
func (s Skeleton) Transaction() *wire.Transaction {
	tx := &wire.Transaction{
		CellDeps:    slices.Clone(s.CellDeps),
		HeaderDeps:  slices.Clone(s.HeaderDeps),
		Inputs:      make([]wire.CellInput, 0, len(s.Inputs)),
		Outputs:     make([]wire.CellOutput, 0, len(s.Outputs)),
		OutputsData: make([][]byte, 0, len(s.Outputs)),
		Witnesses:   make([][]byte, 0, len(s.Witnesses)),
	}
	for i, in := range s.Inputs {
		tx.Inputs = append(tx.Inputs, in.Input(s.InputSinces[i]))
	}
	for _, out := range s.Outputs {
		tx.Outputs = append(tx.Outputs, out.Output())
		tx.OutputsData = append(tx.OutputsData, bytes.Clone(out.Data))
	}
	for _, w := range s.Witnesses {
		tx.Witnesses = append(tx.Witnesses, bytes.Clone(w))
	}
	return tx
}
