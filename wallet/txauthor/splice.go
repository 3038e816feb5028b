// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"slices"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

var (
	// ErrLengthMismatch is returned when a matched insertion is given a
	// different number of inputs and outputs.
	ErrLengthMismatch = errors.New("inputs and outputs differ in length")

	// ErrFixedEntryMismatch is returned when a matched insertion is
	// attempted while the committed input and output regions differ in
	// size.
	ErrFixedEntryMismatch = errors.New("fixed inputs and outputs are " +
		"not aligned")

	// ErrNotEmptySigningState is returned when a matched insertion is
	// attempted after signing entries have been prepared.
	ErrNotEmptySigningState = errors.New("skeleton has pending signing " +
		"entries")

	// ErrUnknownMode is returned for an AddMode outside the defined set.
	ErrUnknownMode = errors.New("unknown add mode")
)

// AddMode selects where AddCells places new cells.
type AddMode uint8

const (
	// Matched inserts inputs and outputs pairwise right after the
	// committed region, then commits them. Input i of the call ends up
	// at the same index as output i.
	Matched AddMode = iota

	// Append adds inputs and outputs at the end of their lists without
	// committing them.
	Append
)

// String returns the mode's name.
func (m AddMode) String() string {
	switch m {
	case Matched:
		return "matched"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// mergeUnique appends the items of add that are not yet present, keeping the
// first occurrence order.
func mergeUnique[T comparable](list, add []T) []T {
	seen := make(map[T]struct{}, len(list)+len(add))
	out := make([]T, 0, len(list)+len(add))
	for _, item := range slices.Concat(list, add) {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// scriptsOf returns the lock and, if present, the type script of every cell.
func scriptsOf(cells ...[]cell.Cell) []cell.Script {
	var scripts []cell.Script
	for _, list := range cells {
		for _, c := range list {
			scripts = append(scripts, c.Lock)
			c.Type.WhenSome(func(s cell.Script) {
				scripts = append(scripts, s)
			})
		}
	}
	return scripts
}

// collectDeps gathers the cell deps and header dep hashes carried by the
// scripts of cells, in order.
func collectDeps(cells ...[]cell.Cell) ([]wire.CellDep, []wire.Hash) {
	var (
		cellDeps   []wire.CellDep
		headerDeps []wire.Hash
	)
	for _, s := range scriptsOf(cells...) {
		cellDeps = append(cellDeps, s.CellDeps...)
		for _, h := range s.HeaderDeps {
			headerDeps = append(headerDeps, h.Hash)
		}
	}
	return cellDeps, headerDeps
}

// MergeHeaderDeps returns the header dep list that results from adding the
// header deps of cells to s, without modifying s.
func MergeHeaderDeps(s Skeleton, cells []cell.Cell) []wire.Hash {
	_, headerDeps := collectDeps(cells)
	return mergeUnique(s.HeaderDeps, headerDeps)
}

// AddCells returns a copy of s with inputs and outputs added according to
// mode.
//
// The cell deps and header deps carried by the new cells' scripts are merged
// first, de-duplicated in first seen order, and the dependency lists are
// committed up to their new end. The since each new input requires is
// recorded at its final index and the witness fragments of all new cells are
// spliced into the packed witnesses.
//
// In Matched mode both lists must have the same length and be inserted right
// after equally sized committed regions, and no signing may have started.
// The inserted pairs become part of the committed region. In Append mode the
// cells go to the end and nothing new is committed.
func AddCells(s Skeleton, mode AddMode, inputs,
	outputs []cell.Cell) (Skeleton, error) {

	fixed := s.Fixed()

	var inputAt, outputAt int
	switch mode {
	case Matched:
		if len(inputs) != len(outputs) {
			return Skeleton{}, errors.Wrapf(ErrLengthMismatch,
				"%d inputs, %d outputs", len(inputs),
				len(outputs))
		}
		if fixed.Inputs != fixed.Outputs {
			return Skeleton{}, errors.Wrapf(ErrFixedEntryMismatch,
				"inputs fixed up to %d, outputs up to %d",
				fixed.Inputs, fixed.Outputs)
		}
		if len(s.SigningEntries) > 0 {
			return Skeleton{}, errors.Wrapf(ErrNotEmptySigningState,
				"%d signing entries", len(s.SigningEntries))
		}
		inputAt, outputAt = fixed.Inputs+1, fixed.Outputs+1
		if inputAt > len(s.Inputs) || outputAt > len(s.Outputs) {
			return Skeleton{}, errors.Wrapf(ErrFixedEntryMismatch,
				"fixed index %d beyond %d inputs and %d "+
					"outputs", fixed.Inputs, len(s.Inputs),
				len(s.Outputs))
		}

	case Append:
		inputAt, outputAt = len(s.Inputs), len(s.Outputs)

	default:
		return Skeleton{}, errors.Wrapf(ErrUnknownMode, "mode %d", mode)
	}

	next := s.clone()

	cellDeps, headerDeps := collectDeps(inputs, outputs)
	next.CellDeps = mergeUnique(next.CellDeps, cellDeps)
	if len(next.CellDeps) != len(s.CellDeps) {
		next = next.withFixed(FieldCellDeps, len(next.CellDeps)-1)
	}
	next.HeaderDeps = mergeUnique(next.HeaderDeps, headerDeps)
	if len(next.HeaderDeps) != len(s.HeaderDeps) {
		next = next.withFixed(FieldHeaderDeps, len(next.HeaderDeps)-1)
	}

	next.InputSinces = shiftSinces(s.InputSinces, inputAt, len(inputs))
	for i, in := range inputs {
		since, err := inputSince(in)
		if err != nil {
			return Skeleton{}, errors.Wrapf(err, "input %d",
				inputAt+i)
		}
		since.WhenSome(func(v uint64) {
			next.InputSinces[inputAt+i] = v
		})
	}

	witnesses, err := spliceWitnesses(s, inputAt, inputs, outputAt, outputs)
	if err != nil {
		return Skeleton{}, err
	}
	next.Witnesses = witnesses

	next.Inputs = slices.Insert(next.Inputs, inputAt, inputs...)
	next.Outputs = slices.Insert(next.Outputs, outputAt, outputs...)

	if mode == Matched && len(inputs) > 0 {
		next = next.withFixed(FieldInputs, fixed.Inputs+len(inputs))
		next = next.withFixed(FieldOutputs, fixed.Outputs+len(outputs))
	}

	log.Debugf("Added %d inputs at %d and %d outputs at %d (%v)",
		len(inputs), inputAt, len(outputs), outputAt, mode)
	log.Tracef("Skeleton after add: %v", newLogClosure(func() string {
		return spew.Sdump(next.Fixed(), next.InputSinces)
	}))

	return next, nil
}
