// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

// ErrMalformed is returned when a byte string does not decode as the expected
// molecule layout.
var ErrMalformed = errors.New("malformed molecule encoding")

// numberSize is the width of every molecule length and offset.
const numberSize = 4

// unpackTable splits a table into exactly n fields. The node SDK only
// encodes molecule, so decoding witnesses is done here.
func unpackTable(b []byte, n int) ([][]byte, error) {
	if len(b) < numberSize {
		return nil, errors.Wrapf(ErrMalformed, "table of %d bytes",
			len(b))
	}
	total := int(binary.LittleEndian.Uint32(b))
	if total != len(b) {
		return nil, errors.Wrapf(ErrMalformed, "table declares %d "+
			"bytes, have %d", total, len(b))
	}

	headerSize := numberSize * (1 + n)
	if n == 0 {
		if total != numberSize {
			return nil, errors.Wrap(ErrMalformed, "non-empty table "+
				"without fields")
		}
		return nil, nil
	}
	if total < headerSize {
		return nil, errors.Wrapf(ErrMalformed, "table of %d bytes "+
			"too short for %d fields", total, n)
	}

	offsets := make([]int, n+1)
	for i := 0; i < n; i++ {
		offsets[i] = int(binary.LittleEndian.Uint32(
			b[numberSize*(i+1):],
		))
	}
	offsets[n] = total
	if offsets[0] != headerSize {
		return nil, errors.Wrapf(ErrMalformed, "table has %d byte "+
			"header, want %d", offsets[0], headerSize)
	}

	fields := make([][]byte, n)
	for i := 0; i < n; i++ {
		if offsets[i] > offsets[i+1] {
			return nil, errors.Wrapf(ErrMalformed, "field %d "+
				"offset %d after %d", i, offsets[i],
				offsets[i+1])
		}
		fields[i] = b[offsets[i]:offsets[i+1]]
	}
	return fields, nil
}

// unpackBytes decodes a fixvec<byte>.
func unpackBytes(b []byte) ([]byte, error) {
	if len(b) < numberSize {
		return nil, errors.Wrapf(ErrMalformed, "bytes of length %d",
			len(b))
	}
	n := int(binary.LittleEndian.Uint32(b))
	if n != len(b)-numberSize {
		return nil, errors.Wrapf(ErrMalformed, "bytes declares %d "+
			"items, have %d", n, len(b)-numberSize)
	}

	out := make([]byte, n)
	copy(out, b[numberSize:])
	return out, nil
}

func unpackBytesOpt(b []byte) (fn.Option[[]byte], error) {
	if len(b) == 0 {
		return fn.None[[]byte](), nil
	}
	v, err := unpackBytes(b)
	if err != nil {
		return fn.None[[]byte](), err
	}
	return fn.Some(v), nil
}
