// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/epoch"
	"github.com/cellwallet/cellwallet/wallet/txauthor"
	"github.com/cellwallet/cellwallet/wallet/txrules"
	"github.com/pkg/errors"
)

var (
	// ErrTooManyOutputs is returned for DAO transactions with more than
	// txrules.MaxDaoOutputs outputs.
	ErrTooManyOutputs = errors.New("too many outputs in DAO transaction")

	// ErrUnbalancedIO is returned when inputs and outputs plus fee do
	// not balance exactly.
	ErrUnbalancedIO = errors.New("unbalanced inputs and outputs")

	// ErrLateWithdrawal is returned when a withdrawal request input
	// matures after the allowed window.
	ErrLateWithdrawal = errors.New("withdrawal matures too late")
)

// InputValue values an input: a withdrawal request releases its maximum
// withdrawable capacity, anything else its capacity. It is a
// txauthor.InputValuer.
func (b *Builder) InputValue(c cell.Cell) (uint64, error) {
	if b.Classify(c) != WithdrawalRequest {
		return c.Capacity, nil
	}

	withdrawal, deposit, err := requestHeaders(c)
	if err != nil {
		return 0, err
	}
	return MaxWithdraw(c.Capacity, cell.MinimalCapacity(c), deposit.Dao,
		withdrawal.Dao)
}

// CKBDelta returns the value of the inputs of s minus the capacity of its
// outputs, minus the fee at feeRatePerKB when that is positive and s has
// outputs.
func (b *Builder) CKBDelta(s txauthor.Skeleton,
	feeRatePerKB uint64) (int64, error) {

	return txauthor.Delta(s, feeRatePerKB, b.InputValue)
}

// CheckOptions configures Check.
type CheckOptions struct {
	// FeeRatePerKB is the fee rate the transaction must pay exactly.
	FeeRatePerKB uint64

	// Tip is the current chain tip.
	Tip cell.Header

	// Window is how long after the tip withdrawal request inputs may
	// mature. The zero value allows none.
	Window epoch.Epoch
}

// isDao reports whether any cell of cells has the DAO type.
func (b *Builder) isDao(cells []cell.Cell) bool {
	for _, c := range cells {
		if c.TypeIs(b.script) {
			return true
		}
	}
	return false
}

// Check runs the checks a DAO transaction must pass before it is signed and
// sent: the output count limit, exact balance and withdrawal maturity.
func (b *Builder) Check(s txauthor.Skeleton, opts CheckOptions) error {
	if (b.isDao(s.Inputs) || b.isDao(s.Outputs)) &&
		len(s.Outputs) > txrules.MaxDaoOutputs {

		return errors.Wrapf(ErrTooManyOutputs, "%d outputs, at most %d",
			len(s.Outputs), txrules.MaxDaoOutputs)
	}

	delta, err := b.CKBDelta(s, opts.FeeRatePerKB)
	if err != nil {
		return err
	}
	if delta != 0 {
		return errors.Wrapf(ErrUnbalancedIO, "delta %d shannons", delta)
	}

	for i, in := range s.Inputs {
		if b.Classify(in) != WithdrawalRequest {
			continue
		}
		if err := opts.Tip.Epoch.Valid(); err != nil {
			return errors.Wrap(err, "tip")
		}

		window := opts.Window
		if window == (epoch.Epoch{}) {
			window = epoch.Zero
		}
		limit, err := epoch.Add(opts.Tip.Epoch, window)
		if err != nil {
			return err
		}
		withdrawal, deposit, err := requestHeaders(in)
		if err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
		since, err := EarliestSince(deposit.Epoch, withdrawal.Epoch)
		if err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
		if since.Epoch().After(limit) {
			return errors.Wrapf(ErrLateWithdrawal, "input %d "+
				"matures at %v, after %v", i, since.Epoch(),
				limit)
		}
	}

	return nil
}
