// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account ties cells to the account that can spend them.
package account

import (
	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/netparams"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

const (
	// Blake160Size is the size of the public key hash that makes up the
	// args of the default lock.
	Blake160Size = 20

	// SignatureSize is the size of a recoverable secp256k1 signature.
	SignatureSize = 65
)

// ErrInvalidArgs is returned for lock args of the wrong size.
var ErrInvalidArgs = errors.New("invalid lock args")

// SignaturePlaceholder returns the zero filled lock witness that reserves
// room for a signature until the transaction is signed.
func SignaturePlaceholder() []byte {
	return make([]byte, SignatureSize)
}

// LockExpander decides whether a cell belongs to an account. For owned
// cells it returns the account's lock, carrying the cell deps and witness
// needed to spend it; for anything else it returns None.
type LockExpander func(c cell.Cell) fn.Option[cell.Script]

// Account is a single key account spending through the default
// secp256k1/blake160 lock.
type Account struct {
	// Lock carries the lock code cell dep and a signature placeholder
	// witness.
	Lock cell.Script
}

// New returns the account whose public key hash is pubKeyHash.
func New(params *netparams.Params, pubKeyHash []byte) (Account, error) {
	if len(pubKeyHash) != Blake160Size {
		return Account{}, errors.Wrapf(ErrInvalidArgs, "public key "+
			"hash has %d bytes, want %d", len(pubKeyHash),
			Blake160Size)
	}

	lock, err := params.Script(netparams.Secp256k1Blake160, pubKeyHash)
	if err != nil {
		return Account{}, err
	}
	return Account{
		Lock: lock.WithWitness(SignaturePlaceholder()),
	}, nil
}

// Expander returns the LockExpander recognizing cells locked by a.
func (a Account) Expander() LockExpander {
	return func(c cell.Cell) fn.Option[cell.Script] {
		if !c.Lock.Equal(a.Lock) {
			return fn.None[cell.Script]()
		}
		return fn.Some(a.Lock)
	}
}

// MultiExpander returns a LockExpander trying each of expanders in turn.
func MultiExpander(expanders ...LockExpander) LockExpander {
	return func(c cell.Cell) fn.Option[cell.Script] {
		for _, expand := range expanders {
			if lock := expand(c); lock.IsSome() {
				return lock
			}
		}
		return fn.None[cell.Script]()
	}
}
