// Copyright (c) 2016 The btcsuite developers
// Copyright (c) 2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txrules

import (
	"github.com/cellwallet/cellwallet/cell"
	"github.com/pkg/errors"
)

// DefaultFeeRatePerKB is the default minimum fee rate, in shannons per 1000
// bytes, accepted by node mempools.
const DefaultFeeRatePerKB uint64 = 1000

// MaxDaoOutputs is the most outputs a transaction touching DAO cells may have.
const MaxDaoOutputs = 64

// Transaction rule violations
var (
	ErrCapacityBelowMinimum = errors.New("output capacity is below the " +
		"minimal capacity of the cell")
)

// CheckOutput performs simple policy tests on a transaction output.
func CheckOutput(output cell.Cell) error {
	minimal := cell.MinimalCapacity(output)
	if output.Capacity < minimal {
		return errors.Wrapf(ErrCapacityBelowMinimum, "capacity %d, "+
			"minimal %d", output.Capacity, minimal)
	}
	return nil
}

// CalculateFee returns the fee for a transaction of txSize bytes at
// feeRatePerKB shannons per 1000 bytes, rounded up to the next shannon.
func CalculateFee(txSize int, feeRatePerKB uint64) uint64 {
	base := uint64(txSize) * feeRatePerKB
	fee := base / 1000
	if fee*1000 < base {
		fee++
	}
	return fee
}
