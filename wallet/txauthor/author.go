// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txauthor provides transaction assembly for wallets: the
// transaction skeleton, the invariant preserving AddCells splice and funding
// with change.
package txauthor

import (
	"fmt"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wallet/txrules"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

// ErrInsufficientFunds is returned when the available inputs cannot pay for
// the outputs, the change output and the fee.
var ErrInsufficientFunds = errors.New("insufficient funds available to " +
	"construct transaction")

// txSelectionError is defined so that we can signal the missing
// amount to the calling software, so that one can easily create
// transactions which satisfy the fee requirements.
type txSelectionError struct {
	shortfall int64
	txFee     uint64
	inputs    int
}

func (e txSelectionError) Error() string {
	return fmt.Sprintf("%v: short by %d shannons, fee: %d, inputs "+
		"considered: %d", ErrInsufficientFunds, e.shortfall, e.txFee,
		e.inputs)
}

// Unwrap lets errors.Is match ErrInsufficientFunds.
func (e txSelectionError) Unwrap() error {
	return ErrInsufficientFunds
}

// ChangeSource provides the lock of change outputs.
type ChangeSource struct {
	// Lock is the lock script change outputs are paid to. Its cell deps
	// are merged into the transaction when change is added.
	Lock cell.Script
}

// FundRequest describes how to complete a skeleton with capacity inputs and
// a change output.
type FundRequest struct {
	// Candidates are spendable cells, tried in order.
	Candidates []cell.Cell

	// Change receives whatever the inputs provide beyond the outputs and
	// the fee.
	Change ChangeSource

	// FeeRatePerKB is the fee rate in shannons per 1000 bytes.
	FeeRatePerKB uint64

	// Value values the inputs already in the skeleton. Nil means
	// FaceValue.
	Value InputValuer
}

// Fund appends candidate inputs to s one at a time until their value pays
// for the outputs, the fee and a change output of at least minimal capacity,
// then appends that change output holding the whole remainder. The returned
// skeleton balances exactly. A skeleton already balancing exactly is
// returned unchanged.
//
// Inputs are selected in the order given; no attempt is made to find the
// smallest sufficient set.
func Fund(s Skeleton, req FundRequest) (Skeleton, error) {
	value := req.Value
	if value == nil {
		value = FaceValue
	}

	delta, err := Delta(s, req.FeeRatePerKB, value)
	if err != nil {
		return Skeleton{}, err
	}
	if delta == 0 {
		return s, nil
	}

	change := cell.New(cell.CapacityUnset, req.Change.Lock,
		fn.None[cell.Script](), nil)

	current := s
	for i := 0; ; i++ {
		withChange, err := AddCells(current, Append, nil,
			[]cell.Cell{change})
		if err != nil {
			return Skeleton{}, err
		}
		delta, err = Delta(withChange, req.FeeRatePerKB, value)
		if err != nil {
			return Skeleton{}, err
		}

		// The change capacity does not affect the transaction size,
		// so the remainder can be moved into it without changing
		// the fee.
		if delta >= 0 {
			change = change.WithCapacity(
				change.Capacity + uint64(delta),
			)
			if err := txrules.CheckOutput(change); err != nil {
				return Skeleton{}, err
			}
			log.Debugf("Funded transaction with %d inputs, change "+
				"%d shannons", i, change.Capacity)

			return AddCells(current, Append, nil,
				[]cell.Cell{change})
		}

		if i == len(req.Candidates) {
			fee, err := Fee(withChange, req.FeeRatePerKB)
			if err != nil {
				return Skeleton{}, err
			}
			return Skeleton{}, txSelectionError{
				shortfall: -delta,
				txFee:     fee,
				inputs:    len(req.Candidates),
			}
		}

		current, err = AddCells(current, Append,
			[]cell.Cell{req.Candidates[i]}, nil)
		if err != nil {
			return Skeleton{}, err
		}
	}
}
