// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain defines what the wallet needs from a node: header lookups,
// transaction submission and status queries. It also provides Publisher,
// which submits a transaction once and then polls for its fate.
package chain

import (
	"context"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wire"
)

// HeaderFetcher looks up block headers. A returned header always has its
// epoch and dao fields populated; a header that cannot be found is an error.
type HeaderFetcher interface {
	// HeaderByNumber returns the header of the main chain block at the
	// given height.
	HeaderByNumber(ctx context.Context, number uint64) (cell.Header, error)

	// HeaderByHash returns the header of the block with the given hash.
	HeaderByHash(ctx context.Context, hash wire.Hash) (cell.Header, error)
}

// TxStatus is the status a node reports for a transaction.
type TxStatus string

// Transaction statuses known to the node's pool and chain.
const (
	TxStatusPending   TxStatus = "pending"
	TxStatusProposed  TxStatus = "proposed"
	TxStatusCommitted TxStatus = "committed"
	TxStatusUnknown   TxStatus = "unknown"
	TxStatusRejected  TxStatus = "rejected"
)

// Backend is the node a transaction is sent to.
type Backend interface {
	// SendTransaction submits tx to the node's pool and returns its hash.
	SendTransaction(ctx context.Context, tx *wire.Transaction) (wire.Hash,
		error)

	// TransactionStatus returns the current status of the transaction
	// with the given hash.
	TransactionStatus(ctx context.Context, hash wire.Hash) (TxStatus,
		error)
}
