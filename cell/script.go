// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cell

import (
	"bytes"
	"slices"

	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

// ErrInvalidComparison is returned when two absent scripts are compared. "No
// script" on both sides has no defined equality and must be handled by the
// caller.
var ErrInvalidComparison = errors.New("cannot compare two absent scripts")

// Script is a lock or type script together with the transaction material its
// use requires: the cell deps holding its code, the headers it reads, the
// since it imposes on the spending input and its witness fragment.
//
// Scripts are values. The With methods return modified copies and never
// touch the receiver's slices.
type Script struct {
	CodeHash wire.Hash
	HashType wire.HashType
	Args     []byte

	// CellDeps are merged into the transaction's cell deps when a cell
	// carrying this script is added.
	CellDeps []wire.CellDep

	// HeaderDeps are merged, by hash, into the transaction's header deps.
	HeaderDeps []Header

	// Since is the time-lock an input carrying this script requires.
	Since fn.Option[uint64]

	// Witness is the fragment placed in the lock (or input/output type)
	// field of the witness args at the cell's index.
	Witness fn.Option[[]byte]
}

// ScriptOption customizes a script built by NewScript.
type ScriptOption func(*Script)

// WithHashType overrides the default HashTypeType.
func WithHashType(t wire.HashType) ScriptOption {
	return func(s *Script) {
		s.HashType = t
	}
}

// WithDeps sets the script's cell deps.
func WithDeps(deps ...wire.CellDep) ScriptOption {
	return func(s *Script) {
		s.CellDeps = slices.Clone(deps)
	}
}

// NewScript returns a script with the given code hash and args. The hash
// type defaults to HashTypeType and the dependency lists to empty.
func NewScript(codeHash wire.Hash, args []byte,
	opts ...ScriptOption) Script {

	s := Script{
		CodeHash:   codeHash,
		HashType:   wire.HashTypeType,
		Args:       bytes.Clone(args),
		CellDeps:   []wire.CellDep{},
		HeaderDeps: []Header{},
		Since:      fn.None[uint64](),
		Witness:    fn.None[[]byte](),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ScriptFromWire augments a raw chain script with empty dependency lists.
func ScriptFromWire(ws wire.Script) Script {
	return NewScript(ws.CodeHash, ws.Args, WithHashType(ws.HashType))
}

// Wire strips the augmentation and returns the on-chain script.
func (s Script) Wire() wire.Script {
	return wire.Script{
		CodeHash: s.CodeHash,
		HashType: s.HashType,
		Args:     bytes.Clone(s.Args),
	}
}

// Equal reports whether both scripts identify the same logic, ignoring the
// augmentation.
func (s Script) Equal(other Script) bool {
	return s.CodeHash == other.CodeHash && s.HashType == other.HashType &&
		bytes.Equal(s.Args, other.Args)
}

// clone returns a copy of s that shares no mutable memory with it.
func (s Script) clone() Script {
	s.Args = bytes.Clone(s.Args)
	s.CellDeps = slices.Clone(s.CellDeps)
	s.HeaderDeps = slices.Clone(s.HeaderDeps)
	s.Witness.WhenSome(func(w []byte) {
		s.Witness = fn.Some(bytes.Clone(w))
	})
	return s
}

// WithArgs returns a copy of s with new args.
func (s Script) WithArgs(args []byte) Script {
	s = s.clone()
	s.Args = bytes.Clone(args)
	return s
}

// WithCellDeps returns a copy of s with deps replacing its cell deps.
func (s Script) WithCellDeps(deps ...wire.CellDep) Script {
	s = s.clone()
	s.CellDeps = slices.Clone(deps)
	return s
}

// WithHeaderDeps returns a copy of s with headers replacing its header deps.
func (s Script) WithHeaderDeps(headers ...Header) Script {
	s = s.clone()
	s.HeaderDeps = slices.Clone(headers)
	return s
}

// WithSince returns a copy of s requiring since on its input.
func (s Script) WithSince(since uint64) Script {
	s = s.clone()
	s.Since = fn.Some(since)
	return s
}

// WithWitness returns a copy of s carrying the witness fragment w.
func (s Script) WithWitness(w []byte) Script {
	s = s.clone()
	s.Witness = fn.Some(bytes.Clone(w))
	return s
}

// ScriptEq compares two optional scripts. One present and one absent script
// are unequal; two absent scripts cannot be compared.
func ScriptEq(a, b fn.Option[Script]) (bool, error) {
	if a.IsNone() && b.IsNone() {
		return false, ErrInvalidComparison
	}
	if a.IsNone() || b.IsNone() {
		return false, nil
	}

	var eq bool
	a.WhenSome(func(sa Script) {
		b.WhenSome(func(sb Script) {
			eq = sa.Equal(sb)
		})
	})
	return eq, nil
}
