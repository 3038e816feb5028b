// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dao builds transactions for the chain's deposit facility.
//
// Capacity leaves the facility in two steps. A deposit cell is first turned
// into a withdrawal request cell of the same capacity, recording the block
// number of the deposit. Once the deposit has been locked for a whole number
// of 180 epoch cycles, the request is spent and releases its capacity plus
// the compensation accrued between the deposit and the request, computed
// from the accumulated rates found in the two block headers.
package dao

import (
	"encoding/binary"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/netparams"
	"github.com/pkg/errors"
)

// PayloadSize is the size of the data of deposit and withdrawal request
// cells and of the withdraw witness.
const PayloadSize = 8

var (
	// ErrMissingBlockNumber is returned for DAO cells whose chain location
	// is unknown.
	ErrMissingBlockNumber = errors.New("DAO cell has no block number")

	// ErrLockSizeMismatch is returned when a withdrawal request would be
	// locked by a lock whose args differ in size from the deposit's.
	ErrLockSizeMismatch = errors.New("lock args size mismatch")

	// ErrNotSifted is returned for DAO cells lacking the headers Sift
	// attaches.
	ErrNotSifted = errors.New("DAO cell lacks its block headers")

	// ErrInvalidDao is returned for header dao fields that cannot be
	// used in compensation math.
	ErrInvalidDao = errors.New("invalid header dao field")
)

// State is the role a cell plays in the deposit facility.
type State uint8

const (
	// Unrelated cells are not DAO cells.
	Unrelated State = iota

	// Deposit cells hold deposited capacity.
	Deposit

	// WithdrawalRequest cells hold capacity on its way out.
	WithdrawalRequest
)

// String returns a human readable name of the state.
func (s State) String() string {
	switch s {
	case Unrelated:
		return "unrelated"
	case Deposit:
		return "deposit"
	case WithdrawalRequest:
		return "withdrawal request"
	default:
		return "unknown"
	}
}

// DepositData returns the data of a deposit cell: eight zero bytes.
func DepositData() []byte {
	return make([]byte, PayloadSize)
}

// RequestData returns the data of a withdrawal request cell for a deposit
// made in block depositNumber.
func RequestData(depositNumber uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, depositNumber)
}

// WithdrawWitness returns the input type witness of a withdrawal: the index
// of the deposit header among the transaction's header deps.
func WithdrawWitness(headerDepIndex uint64) []byte {
	return binary.LittleEndian.AppendUint64(nil, headerDepIndex)
}

// Classify returns the state of c with respect to the DAO type script
// daoScript. Cells of that type with unexpected data are unrelated.
func Classify(c cell.Cell, daoScript cell.Script) State {
	if !c.TypeIs(daoScript) || len(c.Data) != PayloadSize {
		return Unrelated
	}
	if binary.LittleEndian.Uint64(c.Data) == 0 {
		return Deposit
	}
	return WithdrawalRequest
}

// Builder builds DAO cells and checks DAO transactions.
type Builder struct {
	// script is the DAO type script, carrying the cell dep of its code.
	script cell.Script
}

// New returns a Builder using script as the DAO type script. The script
// should carry the cell dep providing the DAO code.
func New(script cell.Script) *Builder {
	return &Builder{script: script}
}

// FromParams returns a Builder for the DAO of a network.
func FromParams(params *netparams.Params) (*Builder, error) {
	script, err := params.Script(netparams.DAO, nil)
	if err != nil {
		return nil, err
	}
	return New(script), nil
}

// Script returns the DAO type script.
func (b *Builder) Script() cell.Script {
	return b.script
}

// Classify returns the state of c.
func (b *Builder) Classify(c cell.Cell) State {
	return Classify(c, b.script)
}

// requestHeaders returns the withdrawal and deposit headers Sift attached to
// a withdrawal request.
func requestHeaders(c cell.Cell) (cell.Header, cell.Header, error) {
	headers := typeHeaders(c)
	if len(headers) != 2 {
		return cell.Header{}, cell.Header{}, errors.Wrapf(ErrNotSifted,
			"withdrawal request has %d header deps, want 2",
			len(headers))
	}
	return headers[0], headers[1], nil
}

// depositHeader returns the header Sift attached to a deposit.
func depositHeader(c cell.Cell) (cell.Header, error) {
	headers := typeHeaders(c)
	if len(headers) != 1 {
		return cell.Header{}, errors.Wrapf(ErrNotSifted, "deposit has "+
			"%d header deps, want 1", len(headers))
	}
	return headers[0], nil
}

func typeHeaders(c cell.Cell) []cell.Header {
	var headers []cell.Header
	c.Type.WhenSome(func(s cell.Script) {
		headers = s.HeaderDeps
	})
	return headers
}
