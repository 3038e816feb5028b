// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txsizes computes the serialized sizes fees are charged on.
package txsizes

import (
	"github.com/cellwallet/cellwallet/wire"
)

// Serialized sizes of the fixed parts of a transaction.
const (
	// BlockOffsetSize is the offset a transaction occupies in the
	// transaction list of a block, charged on top of its own encoding.
	BlockOffsetSize = 4

	// InputSize is the serialize size of a cell input:
	//
	//   - 8 bytes since
	//   - 32 bytes previous tx hash
	//   - 4 bytes previous output index
	InputSize = 8 + wire.HashSize + 4

	// CellDepSize is the serialize size of a cell dep:
	//
	//   - 36 bytes out point
	//   - 1 byte dep type
	CellDepSize = wire.HashSize + 4 + 1

	// HeaderDepSize is the serialize size of a header dep hash.
	HeaderDepSize = wire.HashSize

	// SignaturePlaceholderWitnessSize is the serialize size of a witness
	// args whose lock holds a 65 byte recoverable signature:
	//
	//   - 16 bytes table header
	//   - 4 bytes lock length
	//   - 65 bytes signature
	SignaturePlaceholderWitnessSize = 16 + 4 + 65
)

// TxSize returns the size a transaction is charged for: its serialized
// length plus its offset within the block.
func TxSize(tx *wire.Transaction) (int, error) {
	return tx.SizeInBlock()
}

// OutputSize returns the serialize size an output and its data add to the
// outputs and outputs data vectors, including their offsets.
func OutputSize(out wire.CellOutput, data []byte) (int, error) {
	b, err := out.Serialize()
	if err != nil {
		return 0, err
	}

	// One offset in each dynvec, plus the length prefix of the data.
	return len(b) + 4 + 4 + 4 + len(data), nil
}
