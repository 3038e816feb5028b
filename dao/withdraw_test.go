// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"testing"

	"github.com/cellwallet/cellwallet/account"
	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/epoch"
	"github.com/cellwallet/cellwallet/wallet/txauthor"
	"github.com/cellwallet/cellwallet/wallet/txrules"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

func TestDeposit(t *testing.T) {
	t.Parallel()

	b := testBuilder(t)
	alice := testAccount(t, 1)

	deposit, err := b.Deposit(alice.Lock, cell.CapacityUnset)
	require.NoError(t, err)
	require.Equal(t, ckb(102), deposit.Capacity)
	require.Equal(t, Deposit, b.Classify(deposit))

	_, err = b.Deposit(alice.Lock, ckb(101))
	require.ErrorIs(t, err, txrules.ErrCapacityBelowMinimum)

	// Adding the deposit brings in the DAO code dep.
	s, err := txauthor.AddCells(txauthor.NewSkeleton(), txauthor.Append,
		nil, []cell.Cell{deposit})
	require.NoError(t, err)
	require.Contains(t, s.CellDeps, b.Script().CellDeps[0])
}

// TestRequestWithdrawalFrom checks request construction and the matched
// pairing with the deposits.
func TestRequestWithdrawalFrom(t *testing.T) {
	t.Parallel()

	b := testBuilder(t)
	alice := testAccount(t, 1)
	h1 := testHeader(100, epoch.New(10, 0, 1000), baseRate)
	h2 := testHeader(300, epoch.New(12, 0, 1000), baseRate)

	deposits := []cell.Cell{
		siftedDeposit(b, alice, ckb(1000), h1),
		siftedDeposit(b, alice, ckb(2000), h2),
	}

	requests, err := b.RequestWithdrawalFrom(deposits, alice.Lock)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	for i, req := range requests {
		require.Equal(t, WithdrawalRequest, b.Classify(req))
		require.Equal(t, deposits[i].Capacity, req.Capacity)
		require.Equal(t, cell.MinimalCapacity(deposits[i]),
			cell.MinimalCapacity(req))
	}
	require.Equal(t, RequestData(100), requests[0].Data)
	require.Equal(t, RequestData(300), requests[1].Data)

	s, err := txauthor.AddCells(txauthor.NewSkeleton(), txauthor.Matched,
		deposits, requests)
	require.NoError(t, err)
	require.Equal(t, []wire.Hash{h1.Hash, h2.Hash}, s.HeaderDeps)
	require.Equal(t, 1, s.Fixed().Inputs)
	require.Equal(t, 1, s.Fixed().Outputs)

	// Requests balance their deposits exactly before fees.
	delta, err := b.CKBDelta(s, 0)
	require.NoError(t, err)
	require.Zero(t, delta)

	// Deposits located only by block number work too.
	located := cell.New(ckb(1000), alice.Lock, fn.Some(b.Script()),
		DepositData()).WithBlock(h1.Hash, 42)
	requests, err = b.RequestWithdrawalFrom([]cell.Cell{located},
		alice.Lock)
	require.NoError(t, err)
	require.Equal(t, RequestData(42), requests[0].Data)

	unlocated := cell.New(ckb(1000), alice.Lock, fn.Some(b.Script()),
		DepositData())
	_, err = b.RequestWithdrawalFrom([]cell.Cell{unlocated}, alice.Lock)
	require.ErrorIs(t, err, ErrMissingBlockNumber)
}

// TestRequestWithdrawalLockSizeMismatch refuses locks whose args differ in
// size from the deposits'.
func TestRequestWithdrawalLockSizeMismatch(t *testing.T) {
	t.Parallel()

	b := testBuilder(t)
	alice := testAccount(t, 1)
	h := testHeader(100, epoch.New(10, 0, 1000), baseRate)

	deposits := []cell.Cell{
		siftedDeposit(b, alice, ckb(1000), h),
		siftedDeposit(b, alice, ckb(2000), h),
	}
	require.Len(t, deposits[0].Lock.Args, 20)

	longLock := alice.Lock.WithArgs(make([]byte, 21))
	_, err := b.RequestWithdrawalFrom(deposits, longLock)
	require.ErrorIs(t, err, ErrLockSizeMismatch)
	require.Contains(t, err.Error(), "deposit 0")
}

// selectionFixture returns four deposits of 500, 300, 400 and 200 CKB made
// in epochs 100, 50, 150 and 10, and a tip in epoch 200 at the same rate.
func selectionFixture(t *testing.T, b *Builder,
	a account.Account) ([]cell.Cell, cell.Header) {

	t.Helper()

	deposits := []cell.Cell{
		siftedDeposit(b, a, ckb(500), testHeader(1000,
			epoch.New(100, 0, 1000), baseRate)),
		siftedDeposit(b, a, ckb(300), testHeader(500,
			epoch.New(50, 0, 1000), baseRate)),
		siftedDeposit(b, a, ckb(400), testHeader(1500,
			epoch.New(150, 0, 1000), baseRate)),
		siftedDeposit(b, a, ckb(200), testHeader(100,
			epoch.New(10, 0, 1000), baseRate)),
	}
	tip := testHeader(2000, epoch.New(200, 0, 1000), baseRate)
	return deposits, tip
}

func TestRequestWithdrawalWith(t *testing.T) {
	t.Parallel()

	b := testBuilder(t)
	alice := testAccount(t, 1)
	deposits, tip := selectionFixture(t, b, alice)

	oneEpoch := fn.Some(epoch.New(1, 0, 1))

	// With MinLocking the maturities are 280, 230, 330 and 370.
	tests := []struct {
		name string
		sel  Selection
		want []uint64
	}{
		{
			name: "given order skips over budget",
			sel:  Selection{MaxAmount: ckb(700), MaxCells: 10},
			want: []uint64{ckb(500), ckb(200)},
		},
		{
			name: "cell limit",
			sel:  Selection{MaxAmount: ckb(700), MaxCells: 1},
			want: []uint64{ckb(500)},
		},
		{
			name: "no cells",
			sel:  Selection{MaxAmount: ckb(700)},
		},
		{
			name: "maturity order",
			sel: Selection{
				MaxAmount:  ckb(1000),
				MaxCells:   10,
				MinLocking: oneEpoch,
			},
			want: []uint64{ckb(300), ckb(500), ckb(200)},
		},
		{
			name: "maximum locking",
			sel: Selection{
				MaxAmount:  ckb(10_000),
				MaxCells:   10,
				MinLocking: oneEpoch,
				MaxLocking: fn.Some(epoch.New(100, 0, 1)),
			},
			want: []uint64{ckb(300), ckb(500)},
		},
		{
			name: "nothing fits",
			sel:  Selection{MaxAmount: ckb(100), MaxCells: 10},
		},
	}

	for _, test := range tests {
		w, err := b.RequestWithdrawalWith(deposits, alice.Lock, tip,
			test.sel)
		require.NoError(t, err, test.name)

		var got []uint64
		var total uint64
		for _, d := range w.Deposits {
			got = append(got, d.Capacity)
			total += d.Capacity
		}
		require.Equal(t, test.want, got, test.name)
		require.Equal(t, total, w.Amount, test.name)
		require.LessOrEqual(t, w.Amount, test.sel.MaxAmount, test.name)
		require.Len(t, w.Requests, len(w.Deposits), test.name)
	}
}

// TestRequestWithdrawalWithCompensation values deposits at the tip rate.
func TestRequestWithdrawalWithCompensation(t *testing.T) {
	t.Parallel()

	b := testBuilder(t)
	alice := testAccount(t, 1)
	deposit := siftedDeposit(b, alice, ckb(1000),
		testHeader(100, epoch.New(10, 0, 1000), baseRate))
	tip := testHeader(9000, epoch.New(300, 0, 1000),
		baseRate+baseRate/100)

	// Worth 1008.98 CKB at the tip, just over a 1008 CKB budget.
	w, err := b.RequestWithdrawalWith([]cell.Cell{deposit}, alice.Lock,
		tip, Selection{MaxAmount: ckb(1008), MaxCells: 1})
	require.NoError(t, err)
	require.Empty(t, w.Deposits)

	w, err = b.RequestWithdrawalWith([]cell.Cell{deposit}, alice.Lock,
		tip, Selection{MaxAmount: ckb(1009), MaxCells: 1})
	require.NoError(t, err)
	require.Equal(t, uint64(100_898_000_000), w.Amount)

	// Deposits must come from Sift.
	_, err = b.RequestWithdrawalWith([]cell.Cell{
		cell.New(ckb(1000), alice.Lock, fn.Some(b.Script()),
			DepositData()),
	}, alice.Lock, tip, Selection{MaxAmount: ckb(2000), MaxCells: 1})
	require.ErrorIs(t, err, ErrNotSifted)
}

// TestRequestWithdrawalWithInvalidTip rejects tips whose epoch no header can
// carry.
func TestRequestWithdrawalWithInvalidTip(t *testing.T) {
	t.Parallel()

	b := testBuilder(t)
	alice := testAccount(t, 1)
	deposits, tip := selectionFixture(t, b, alice)
	sel := Selection{MaxAmount: ckb(1000), MaxCells: 10}

	tip.Epoch = epoch.New(200, 1, 0)
	_, err := b.RequestWithdrawalWith(deposits, alice.Lock, tip, sel)
	require.ErrorIs(t, err, epoch.ErrZeroEpochLength)

	tip.Epoch = epoch.New(200, 1000, 1000)
	_, err = b.RequestWithdrawalWith(deposits, alice.Lock, tip, sel)
	require.ErrorIs(t, err, epoch.ErrIndexOutOfRange)
}
