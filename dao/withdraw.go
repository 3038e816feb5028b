// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dao

import (
	"slices"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/epoch"
	"github.com/cellwallet/cellwallet/wallet/txauthor"
	"github.com/cellwallet/cellwallet/wallet/txrules"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

// Deposit returns a deposit output locked by lock. A capacity of
// cell.CapacityUnset deposits the minimal capacity of the cell.
func (b *Builder) Deposit(lock cell.Script, capacity uint64) (cell.Cell,
	error) {

	deposit := cell.New(capacity, lock, fn.Some(b.script), DepositData())
	if err := txrules.CheckOutput(deposit); err != nil {
		return cell.Cell{}, err
	}
	return deposit, nil
}

// depositNumber returns the number of the block holding deposit.
func depositNumber(deposit cell.Cell) (uint64, error) {
	if header, err := depositHeader(deposit); err == nil {
		return header.Number, nil
	}
	if deposit.BlockNumber.IsNone() {
		return 0, ErrMissingBlockNumber
	}
	return deposit.BlockNumber.UnwrapOr(0), nil
}

// RequestWithdrawalFrom returns the withdrawal request outputs of deposits,
// locked by accountLock. Output i requests the withdrawal of deposit i and
// keeps its capacity, so the pair is meant to be added in Matched mode.
//
// The occupied capacity of a request must equal that of its deposit, so the
// args of accountLock must have the size of every deposit's lock args.
func (b *Builder) RequestWithdrawalFrom(deposits []cell.Cell,
	accountLock cell.Script) ([]cell.Cell, error) {

	requests := make([]cell.Cell, 0, len(deposits))
	for i, deposit := range deposits {
		if len(deposit.Lock.Args) != len(accountLock.Args) {
			return nil, errors.Wrapf(ErrLockSizeMismatch, "deposit "+
				"%d lock args have %d bytes, account lock "+
				"args %d", i, len(deposit.Lock.Args),
				len(accountLock.Args))
		}

		number, err := depositNumber(deposit)
		if err != nil {
			return nil, errors.Wrapf(err, "deposit %d", i)
		}

		requests = append(requests, cell.New(deposit.Capacity,
			accountLock, fn.Some(b.script), RequestData(number)))
	}
	return requests, nil
}

// WithdrawFrom returns the inputs spending requests from s. The DAO type
// script of each input gets the withdraw witness: the index of the deposit
// header among the header deps s will have once the inputs are added. The
// inputs must be added to s, all at once, before any other header deps.
func (b *Builder) WithdrawFrom(s txauthor.Skeleton,
	requests []cell.Cell) ([]cell.Cell, error) {

	headerDeps := txauthor.MergeHeaderDeps(s, requests)

	inputs := make([]cell.Cell, 0, len(requests))
	for i, req := range requests {
		if b.Classify(req) != WithdrawalRequest {
			return nil, errors.Errorf("cell %d is not a withdrawal "+
				"request", i)
		}
		_, deposit, err := requestHeaders(req)
		if err != nil {
			return nil, errors.Wrapf(err, "request %d", i)
		}

		index := slices.Index(headerDeps, deposit.Hash)
		typ := req.Type.UnwrapOr(b.script)
		inputs = append(inputs, req.WithType(fn.Some(
			typ.WithWitness(WithdrawWitness(uint64(index))),
		)))
	}
	return inputs, nil
}

// Selection bounds RequestWithdrawalWith.
type Selection struct {
	// MaxAmount is the most capacity the selected deposits may release,
	// valued at the tip.
	MaxAmount uint64

	// MaxCells is the most deposits selected.
	MaxCells int

	// MinLocking, when set, values maturity as if the withdrawal were
	// requested MinLocking after the tip and selects deposits in
	// ascending order of maturity.
	MinLocking fn.Option[epoch.Epoch]

	// MaxLocking, when set, skips deposits that would mature more than
	// MaxLocking after the tip.
	MaxLocking fn.Option[epoch.Epoch]
}

// Withdrawal is the result of RequestWithdrawalWith.
type Withdrawal struct {
	// Deposits are the selected deposits and Requests their withdrawal
	// requests, pairwise, ready for a Matched add.
	Deposits []cell.Cell
	Requests []cell.Cell

	// Amount is the capacity the deposits release, valued at the tip.
	Amount uint64
}

type candidate struct {
	deposit  cell.Cell
	amount   uint64
	maturity epoch.Epoch
}

// RequestWithdrawalWith selects deposits to withdraw and returns them with
// their withdrawal requests.
//
// Each deposit is valued by what it would release if withdrawn at tip.
// Deposits are then taken greedily, in the order given or in ascending
// maturity when sel.MinLocking is set, skipping any that would take the
// total over sel.MaxAmount and stopping at sel.MaxCells. This is a greedy
// heuristic; it does not search for the subset closest to the budget.
func (b *Builder) RequestWithdrawalWith(deposits []cell.Cell,
	accountLock cell.Script, tip cell.Header,
	sel Selection) (Withdrawal, error) {

	if err := tip.Epoch.Valid(); err != nil {
		return Withdrawal{}, errors.Wrap(err, "tip")
	}

	requestAt := tip.Epoch
	if sel.MinLocking.IsSome() {
		var err error
		requestAt, err = epoch.Add(tip.Epoch,
			sel.MinLocking.UnwrapOr(epoch.Zero))
		if err != nil {
			return Withdrawal{}, err
		}
	}

	maxMaturity := fn.None[epoch.Epoch]()
	if sel.MaxLocking.IsSome() {
		limit, err := epoch.Add(tip.Epoch,
			sel.MaxLocking.UnwrapOr(epoch.Zero))
		if err != nil {
			return Withdrawal{}, err
		}
		maxMaturity = fn.Some(limit)
	}

	candidates := make([]candidate, 0, len(deposits))
	for i, deposit := range deposits {
		header, err := depositHeader(deposit)
		if err != nil {
			return Withdrawal{}, errors.Wrapf(err, "deposit %d", i)
		}

		amount, err := MaxWithdraw(deposit.Capacity,
			cell.MinimalCapacity(deposit), header.Dao, tip.Dao)
		if err != nil {
			return Withdrawal{}, errors.Wrapf(err, "deposit %d", i)
		}

		since, err := EarliestSince(header.Epoch, requestAt)
		if err != nil {
			return Withdrawal{}, errors.Wrapf(err, "deposit %d", i)
		}
		maturity := since.Epoch()

		tooLate := false
		maxMaturity.WhenSome(func(limit epoch.Epoch) {
			tooLate = maturity.After(limit)
		})
		if tooLate {
			log.Tracef("Skipping deposit %d maturing at %v", i,
				maturity)
			continue
		}

		candidates = append(candidates, candidate{
			deposit:  deposit,
			amount:   amount,
			maturity: maturity,
		})
	}

	if sel.MinLocking.IsSome() {
		slices.SortStableFunc(candidates, func(a, b candidate) int {
			return epoch.Compare(a.maturity, b.maturity)
		})
	}

	var w Withdrawal
	for _, c := range candidates {
		if len(w.Deposits) >= sel.MaxCells {
			break
		}
		if c.amount > sel.MaxAmount-w.Amount {
			continue
		}
		w.Deposits = append(w.Deposits, c.deposit)
		w.Amount += c.amount
	}

	requests, err := b.RequestWithdrawalFrom(w.Deposits, accountLock)
	if err != nil {
		return Withdrawal{}, err
	}
	w.Requests = requests

	log.Debugf("Selected %d of %d deposits releasing %d shannons",
		len(w.Deposits), len(deposits), w.Amount)

	return w, nil
}
