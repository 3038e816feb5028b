// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"encoding/binary"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/epoch"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// LockCycle is the number of epochs a deposit is locked for, or a multiple
// of which, before it can be withdrawn.
const LockCycle = 180

// AccumulatedRate returns the accumulated rate stored in a header dao field:
// the little endian uint64 at bytes 8 to 16.
func AccumulatedRate(dao [cell.DaoSize]byte) uint64 {
	return binary.LittleEndian.Uint64(dao[8:16])
}

// MaxWithdraw returns the capacity a cell of the given capacity and occupied
// capacity releases when deposited in the block with depositDao and
// withdrawn with withdrawDao:
//
//	(capacity - occupied) * AR_withdraw / AR_deposit + occupied
func MaxWithdraw(capacity, occupied uint64, depositDao,
	withdrawDao [cell.DaoSize]byte) (uint64, error) {

	if capacity < occupied {
		return 0, errors.Errorf("capacity %d is below occupied "+
			"capacity %d", capacity, occupied)
	}

	depositRate := AccumulatedRate(depositDao)
	if depositRate == 0 {
		return 0, errors.Wrap(ErrInvalidDao, "zero deposit "+
			"accumulated rate")
	}

	counted := uint256.NewInt(capacity - occupied)
	counted.Mul(counted, uint256.NewInt(AccumulatedRate(withdrawDao)))
	counted.Div(counted, uint256.NewInt(depositRate))
	counted.Add(counted, uint256.NewInt(occupied))

	if !counted.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidDao, "withdrawable capacity "+
			"%v overflows", counted)
	}
	return counted.Uint64(), nil
}

// EarliestSince returns the since of the withdrawal of a deposit made at
// depositEpoch whose withdrawal was requested at withdrawEpoch: the end of
// the first whole number of lock cycles reaching the request, at the same
// fraction of its epoch as the deposit.
func EarliestSince(depositEpoch, withdrawEpoch epoch.Epoch) (epoch.Since,
	error) {

	if err := depositEpoch.Valid(); err != nil {
		return 0, errors.Wrap(err, "deposit")
	}
	if err := withdrawEpoch.Valid(); err != nil {
		return 0, errors.Wrap(err, "withdraw")
	}
	if withdrawEpoch.Before(depositEpoch) {
		return 0, errors.Errorf("withdraw epoch %v is before deposit "+
			"epoch %v", withdrawEpoch, depositEpoch)
	}

	deposited := withdrawEpoch.Number - depositEpoch.Number
	if withdrawEpoch.Index*depositEpoch.Length >
		depositEpoch.Index*withdrawEpoch.Length {

		deposited++
	}
	locked := (deposited + LockCycle - 1) / LockCycle * LockCycle

	return epoch.SinceFromEpoch(epoch.New(
		depositEpoch.Number+locked, depositEpoch.Index,
		depositEpoch.Length,
	)), nil
}
