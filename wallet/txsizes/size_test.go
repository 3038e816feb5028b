// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsizes

import (
	"testing"

	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
)

// TestTxSize checks the block offset is added to the encoding size.
func TestTxSize(t *testing.T) {
	t.Parallel()

	tx := &wire.Transaction{}
	size, err := TxSize(tx)
	require.NoError(t, err)

	encoded, err := tx.SerializeSize()
	require.NoError(t, err)
	require.Equal(t, encoded+BlockOffsetSize, size)
	require.Equal(t, 72, size)

	// A script the node cannot encode has no size.
	tx.Outputs = []wire.CellOutput{{
		Lock: wire.Script{HashType: wire.HashType(9)},
	}}
	tx.OutputsData = [][]byte{nil}
	_, err = TxSize(tx)
	require.Error(t, err)
}

// TestComponentSizes checks the per component constants against the codec.
func TestComponentSizes(t *testing.T) {
	t.Parallel()

	in, err := wire.CellInput{}.Serialize()
	require.NoError(t, err)
	require.Len(t, in, InputSize)

	dep, err := wire.CellDep{}.Serialize()
	require.NoError(t, err)
	require.Len(t, dep, CellDepSize)

	placeholder := wire.WitnessArgs{Lock: fn.Some(make([]byte, 65))}
	require.Len(t, placeholder.Serialize(), SignaturePlaceholderWitnessSize)
}

// TestOutputSize checks that adding an output grows a transaction by exactly
// OutputSize.
func TestOutputSize(t *testing.T) {
	t.Parallel()

	out := wire.CellOutput{
		Capacity: 61_0000_0000,
		Lock:     wire.Script{Args: make([]byte, 20)},
	}
	data := []byte{1, 2, 3}

	empty := &wire.Transaction{}
	one := &wire.Transaction{
		Outputs:     []wire.CellOutput{out},
		OutputsData: [][]byte{data},
	}

	emptySize, err := TxSize(empty)
	require.NoError(t, err)
	oneSize, err := TxSize(one)
	require.NoError(t, err)

	outSize, err := OutputSize(out, data)
	require.NoError(t, err)
	require.Equal(t, outSize, oneSize-emptySize)
}
