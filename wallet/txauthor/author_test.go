// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"testing"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wallet/txrules"
	"github.com/cellwallet/cellwallet/wallet/txsizes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// TestDelta checks the balance of a skeleton with and without a fee.
func TestDelta(t *testing.T) {
	t.Parallel()

	s := mustAdd(t, NewSkeleton(), Append,
		[]cell.Cell{liveCell(600, 1, 1), liveCell(400, 1, 2)},
		[]cell.Cell{outputCell(1000, 2)},
	)

	delta, err := Delta(s, 0, FaceValue)
	require.NoError(t, err)
	require.Zero(t, delta)

	size, err := txsizes.TxSize(s.Transaction())
	require.NoError(t, err)
	fee := txrules.CalculateFee(size, 1000)
	gotFee, err := Fee(s, 1000)
	require.NoError(t, err)
	require.Equal(t, fee, gotFee)
	require.Positive(t, fee)

	delta, err = Delta(s, 1000, FaceValue)
	require.NoError(t, err)
	require.Equal(t, -int64(fee), delta)

	// Without outputs there is nothing to charge a fee against.
	inputsOnly := mustAdd(t, NewSkeleton(), Append,
		[]cell.Cell{liveCell(600, 1, 1)}, nil)
	delta, err = Delta(inputsOnly, 1000, FaceValue)
	require.NoError(t, err)
	require.Equal(t, int64(600), delta)

	// Valuer errors carry the input index.
	errValue := errors.New("no header")
	_, err = Delta(s, 0, func(c cell.Cell) (uint64, error) {
		if c.Capacity == 400 {
			return 0, errValue
		}
		return c.Capacity, nil
	})
	require.ErrorIs(t, err, errValue)
	require.Contains(t, err.Error(), "input 1")
}

// TestFund checks funding with change and the insufficient funds path.
func TestFund(t *testing.T) {
	t.Parallel()

	payment := mustAdd(t, NewSkeleton(), Append, nil,
		[]cell.Cell{outputCell(ckb(100), 9)})

	candidates := []cell.Cell{
		liveCell(ckb(80), 1, 1),
		liveCell(ckb(80), 1, 2),
		liveCell(ckb(80), 1, 3),
		liveCell(ckb(80), 1, 4),
	}
	change := ChangeSource{Lock: testLock(1)}

	tests := []struct {
		name       string
		candidates []cell.Cell
		feeRate    uint64
		inputs     int
		err        error
	}{
		0: {
			name:       "needs three inputs for change",
			candidates: candidates,
			feeRate:    1000,
			inputs:     3,
		},
		1: {
			name:       "no fee",
			candidates: candidates,
			feeRate:    0,
			inputs:     3,
		},
		2: {
			name:       "insufficient funds",
			candidates: candidates[:2],
			feeRate:    1000,
			err:        ErrInsufficientFunds,
		},
		3: {
			name:    "no candidates",
			feeRate: 1000,
			err:     ErrInsufficientFunds,
		},
	}

	for _, test := range tests {
		funded, err := Fund(payment, FundRequest{
			Candidates:   test.candidates,
			Change:       change,
			FeeRatePerKB: test.feeRate,
		})
		if test.err != nil {
			require.ErrorIs(t, err, test.err, test.name)
			continue
		}
		require.NoError(t, err, test.name)

		require.Len(t, funded.Inputs, test.inputs, test.name)
		require.Len(t, funded.Outputs, 2, test.name)

		delta, err := Delta(funded, test.feeRate, FaceValue)
		require.NoError(t, err, test.name)
		require.Zero(t, delta, test.name)

		changeOut := funded.Outputs[1]
		require.True(t, changeOut.Lock.Equal(change.Lock), test.name)
		fee, err := Fee(funded, test.feeRate)
		require.NoError(t, err, test.name)
		require.Equal(t, ckb(140)-fee, changeOut.Capacity, test.name)
	}
}

// TestFundBalanced returns an already balanced skeleton unchanged.
func TestFundBalanced(t *testing.T) {
	t.Parallel()

	s := mustAdd(t, NewSkeleton(), Append,
		[]cell.Cell{liveCell(ckb(100), 1, 1)},
		[]cell.Cell{outputCell(ckb(100), 2)},
	)
	funded, err := Fund(s, FundRequest{Change: ChangeSource{
		Lock: testLock(1),
	}})
	require.NoError(t, err)
	require.Equal(t, s, funded)
}
