// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/cellwallet/cellwallet/account"
	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/chain"
	"github.com/cellwallet/cellwallet/epoch"
	"github.com/cellwallet/cellwallet/netparams"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// baseRate is the accumulated rate at genesis.
const baseRate = 10_000_000_000_000_000

func ckb(n uint64) uint64 {
	return n * cell.ShannonsPerByte
}

// daoField returns a header dao field holding the accumulated rate ar.
func daoField(ar uint64) [cell.DaoSize]byte {
	var dao [cell.DaoSize]byte
	binary.LittleEndian.PutUint64(dao[8:16], ar)
	return dao
}

// testHeader returns a header at number in epoch e with accumulated rate ar.
func testHeader(number uint64, e epoch.Epoch, ar uint64) cell.Header {
	var hash wire.Hash
	binary.LittleEndian.PutUint64(hash[:], number)
	hash[31] = 0xee
	return cell.Header{
		Number: number,
		Epoch:  e,
		Dao:    daoField(ar),
		Hash:   hash,
	}
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()

	b, err := FromParams(&netparams.TestNetParams)
	require.NoError(t, err)
	return b
}

func testAccount(t *testing.T, owner byte) account.Account {
	t.Helper()

	a, err := account.New(&netparams.TestNetParams,
		bytes.Repeat([]byte{owner}, account.Blake160Size))
	require.NoError(t, err)
	return a
}

// bare returns the identity of s, as a node reports scripts.
func bare(s cell.Script) cell.Script {
	return cell.NewScript(s.CodeHash, s.Args, cell.WithHashType(s.HashType))
}

// rawDeposit returns a deposit cell as a node reports it.
func rawDeposit(b *Builder, a account.Account, capacity uint64,
	h cell.Header) cell.Cell {

	return cell.New(capacity, bare(a.Lock), fn.Some(bare(b.Script())),
		DepositData()).
		WithOutPoint(wire.OutPoint{TxHash: h.Hash}).
		WithBlock(h.Hash, h.Number)
}

// rawRequest returns a withdrawal request cell as a node reports it.
func rawRequest(b *Builder, a account.Account, capacity uint64,
	withdrawal cell.Header, depositNumber uint64) cell.Cell {

	return cell.New(capacity, bare(a.Lock), fn.Some(bare(b.Script())),
		RequestData(depositNumber)).
		WithOutPoint(wire.OutPoint{TxHash: withdrawal.Hash, Index: 1}).
		WithBlock(withdrawal.Hash, withdrawal.Number)
}

// siftedDeposit returns a deposit as Sift returns it.
func siftedDeposit(b *Builder, a account.Account, capacity uint64,
	h cell.Header) cell.Cell {

	return cell.New(capacity, a.Lock,
		fn.Some(b.Script().WithHeaderDeps(h)), DepositData()).
		WithOutPoint(wire.OutPoint{TxHash: h.Hash}).
		WithBlock(h.Hash, h.Number)
}

// siftedRequest returns a withdrawal request as Sift returns it.
func siftedRequest(t *testing.T, b *Builder, a account.Account,
	capacity uint64, withdrawal, deposit cell.Header) cell.Cell {

	t.Helper()

	since, err := EarliestSince(deposit.Epoch, withdrawal.Epoch)
	require.NoError(t, err)

	typ := b.Script().WithHeaderDeps(withdrawal, deposit).
		WithSince(uint64(since))
	return cell.New(capacity, a.Lock, fn.Some(typ),
		RequestData(deposit.Number)).
		WithOutPoint(wire.OutPoint{TxHash: withdrawal.Hash, Index: 1}).
		WithBlock(withdrawal.Hash, withdrawal.Number)
}

// mockHeaders is a mock implementation of the chain.HeaderFetcher
// interface.
type mockHeaders struct {
	mock.Mock
}

var _ chain.HeaderFetcher = (*mockHeaders)(nil)

func (m *mockHeaders) HeaderByNumber(ctx context.Context,
	number uint64) (cell.Header, error) {

	args := m.Called(ctx, number)
	return args.Get(0).(cell.Header), args.Error(1)
}

func (m *mockHeaders) HeaderByHash(ctx context.Context,
	hash wire.Hash) (cell.Header, error) {

	args := m.Called(ctx, hash)
	return args.Get(0).(cell.Header), args.Error(1)
}
