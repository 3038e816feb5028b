// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cell

import (
	"github.com/cellwallet/cellwallet/epoch"
	"github.com/cellwallet/cellwallet/wire"
)

// DaoSize is the size of the DAO field carried in every header.
const DaoSize = 32

// Header is a block header as returned by a node. Its hash is carried as
// reported and never recomputed.
type Header struct {
	Version          uint32
	CompactTarget    uint32
	Timestamp        uint64
	Number           uint64
	Epoch            epoch.Epoch
	ParentHash       wire.Hash
	TransactionsRoot wire.Hash
	ProposalsHash    wire.Hash
	ExtraHash        wire.Hash
	Dao              [DaoSize]byte
	Nonce            [16]byte
	Hash             wire.Hash
}
