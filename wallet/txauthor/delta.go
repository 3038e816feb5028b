// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wallet/txrules"
	"github.com/cellwallet/cellwallet/wallet/txsizes"
	"github.com/pkg/errors"
)

// InputValuer returns the capacity an input contributes to the transaction.
// For most cells that is their face capacity, but some, like DAO withdrawal
// requests, release more.
type InputValuer func(c cell.Cell) (uint64, error)

// FaceValue values an input at its capacity.
func FaceValue(c cell.Cell) (uint64, error) {
	return c.Capacity, nil
}

// Fee returns the fee of the transaction s describes at feeRatePerKB.
func Fee(s Skeleton, feeRatePerKB uint64) (uint64, error) {
	size, err := txsizes.TxSize(s.Transaction())
	if err != nil {
		return 0, err
	}
	return txrules.CalculateFee(size, feeRatePerKB), nil
}

// Delta returns the input value minus the output capacity of s, minus the
// fee when feeRatePerKB is positive and s has outputs. A balanced
// transaction has a delta of zero.
func Delta(s Skeleton, feeRatePerKB uint64, value InputValuer) (int64, error) {
	var delta int64
	for i, in := range s.Inputs {
		v, err := value(in)
		if err != nil {
			return 0, errors.Wrapf(err, "value input %d", i)
		}
		delta += int64(v)
	}
	for _, out := range s.Outputs {
		delta -= int64(out.Capacity)
	}
	if feeRatePerKB > 0 && len(s.Outputs) > 0 {
		fee, err := Fee(s, feeRatePerKB)
		if err != nil {
			return 0, err
		}
		delta -= int64(fee)
	}
	return delta, nil
}
