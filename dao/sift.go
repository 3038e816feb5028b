// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"context"
	"encoding/binary"

	"github.com/cellwallet/cellwallet/account"
	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/chain"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// maxHeaderLookups bounds the header lookups one Sift call runs at once.
const maxHeaderLookups = 16

// Sifted is the result of Sift. Every list keeps the order of the input.
type Sifted struct {
	// Deposits carry the header of their block as the only header dep of
	// the DAO type script.
	Deposits []cell.Cell

	// WithdrawalRequests carry the withdrawal header and the deposit
	// header, in that order, as the header deps of the DAO type script,
	// and the earliest since of their withdrawal.
	WithdrawalRequests []cell.Cell

	// NotDaos holds every other cell.
	NotDaos []cell.Cell
}

// Sift splits cells into deposits, withdrawal requests and other cells.
//
// Cells recognized by expander get the expanded lock; DAO cells not owned
// by the account go to NotDaos untouched. The DAO type script of deposits
// and withdrawal requests is replaced by the builder's, extended with the
// header deps and since their spending needs. Header lookups for different
// cells run concurrently; all of them complete before Sift returns.
func (b *Builder) Sift(ctx context.Context, cells []cell.Cell,
	expander account.LockExpander,
	headers chain.HeaderFetcher) (Sifted, error) {

	resolved := make([]cell.Cell, len(cells))
	states := make([]State, len(cells))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxHeaderLookups)

	for i, c := range cells {
		resolved[i] = c

		lock := expander(c)
		if lock.IsNone() {
			continue
		}
		c = c.WithLock(lock.UnwrapOr(c.Lock))
		resolved[i] = c

		states[i] = b.Classify(c)
		switch states[i] {
		case Deposit:
			g.Go(func() error {
				own, err := ownHeader(gctx, headers, c)
				if err != nil {
					return errors.Wrapf(err, "cell %d", i)
				}
				resolved[i] = c.WithType(fn.Some(
					b.script.WithHeaderDeps(own),
				))
				return nil
			})

		case WithdrawalRequest:
			g.Go(func() error {
				req, err := b.resolveRequest(gctx, headers,
					c)
				if err != nil {
					return errors.Wrapf(err, "cell %d", i)
				}
				resolved[i] = req
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return Sifted{}, err
	}

	var s Sifted
	for i, c := range resolved {
		switch states[i] {
		case Deposit:
			s.Deposits = append(s.Deposits, c)
		case WithdrawalRequest:
			s.WithdrawalRequests = append(s.WithdrawalRequests, c)
		default:
			s.NotDaos = append(s.NotDaos, c)
		}
	}

	log.Debugf("Sifted %d cells: %d deposits, %d withdrawal requests",
		len(cells), len(s.Deposits), len(s.WithdrawalRequests))
	log.Tracef("Sifted cells: %v", newLogClosure(func() string {
		return spew.Sdump(s)
	}))

	return s, nil
}

// resolveRequest attaches the withdrawal and deposit headers and the
// earliest withdrawal since to a withdrawal request.
func (b *Builder) resolveRequest(ctx context.Context,
	headers chain.HeaderFetcher, c cell.Cell) (cell.Cell, error) {

	withdrawal, err := ownHeader(ctx, headers, c)
	if err != nil {
		return cell.Cell{}, err
	}

	depositNumber := binary.LittleEndian.Uint64(c.Data)
	deposit, err := headers.HeaderByNumber(ctx, depositNumber)
	if err != nil {
		return cell.Cell{}, errors.Wrapf(err, "deposit header %d",
			depositNumber)
	}

	since, err := EarliestSince(deposit.Epoch, withdrawal.Epoch)
	if err != nil {
		return cell.Cell{}, err
	}

	typ := b.script.
		WithHeaderDeps(withdrawal, deposit).
		WithSince(uint64(since))
	return c.WithType(fn.Some(typ)), nil
}

// ownHeader looks up the header of the block that created c.
func ownHeader(ctx context.Context, headers chain.HeaderFetcher,
	c cell.Cell) (cell.Header, error) {

	if c.BlockHash.IsSome() {
		hash := c.BlockHash.UnwrapOr(wire.Hash{})
		header, err := headers.HeaderByHash(ctx, hash)
		if err != nil {
			return cell.Header{}, errors.Wrapf(err, "header %v",
				hash)
		}
		return header, nil
	}

	if c.BlockNumber.IsNone() {
		return cell.Header{}, ErrMissingBlockNumber
	}
	number := c.BlockNumber.UnwrapOr(0)
	header, err := headers.HeaderByNumber(ctx, number)
	if err != nil {
		return cell.Header{}, errors.Wrapf(err, "header %d", number)
	}
	return header, nil
}
