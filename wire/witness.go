// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/nervosnetwork/ckb-sdk-go/types"
)

// WitnessArgs is the standard witness layout. Lock holds the data checked by
// the input's lock script, InputType and OutputType the data for the type
// scripts of the input and output at the same index.
type WitnessArgs struct {
	Lock       fn.Option[[]byte]
	InputType  fn.Option[[]byte]
	OutputType fn.Option[[]byte]
}

// Serialize encodes the witness args table. Some of an empty vector is
// encoded as a zero length vector, None as an absent field.
func (w WitnessArgs) Serialize() []byte {
	return types.SerializeTable([][]byte{
		serializeBytesOpt(w.Lock),
		serializeBytesOpt(w.InputType),
		serializeBytesOpt(w.OutputType),
	})
}

func serializeBytesOpt(o fn.Option[[]byte]) []byte {
	return fn.MapOptionZ(o, types.SerializeBytes)
}

// ToSDK returns the SDK witness args. None becomes nil and Some of an empty
// vector a non-nil empty slice.
func (w WitnessArgs) ToSDK() *types.WitnessArgs {
	field := func(o fn.Option[[]byte]) []byte {
		return fn.MapOptionZ(o, func(b []byte) []byte {
			return append([]byte{}, b...)
		})
	}
	return &types.WitnessArgs{
		Lock:       field(w.Lock),
		InputType:  field(w.InputType),
		OutputType: field(w.OutputType),
	}
}

// IsEmpty reports whether no field is set.
func (w WitnessArgs) IsEmpty() bool {
	return w.Lock.IsNone() && w.InputType.IsNone() && w.OutputType.IsNone()
}

// EmptyWitnessArgs is the serialization of a WitnessArgs with no field set.
// It is used as the placeholder for witness slots nothing has claimed.
var EmptyWitnessArgs = WitnessArgs{}.Serialize()

// IsEmptyWitness reports whether a packed witness is the empty placeholder.
// The zero length witness is treated the same way.
func IsEmptyWitness(b []byte) bool {
	return len(b) == 0 || bytes.Equal(b, EmptyWitnessArgs)
}

// DeserializeWitnessArgs decodes a witness args table. An empty byte string
// decodes as a WitnessArgs with no field set.
func DeserializeWitnessArgs(b []byte) (WitnessArgs, error) {
	if len(b) == 0 {
		return WitnessArgs{}, nil
	}

	fields, err := unpackTable(b, 3)
	if err != nil {
		return WitnessArgs{}, err
	}

	var w WitnessArgs
	if w.Lock, err = unpackBytesOpt(fields[0]); err != nil {
		return WitnessArgs{}, err
	}
	if w.InputType, err = unpackBytesOpt(fields[1]); err != nil {
		return WitnessArgs{}, err
	}
	if w.OutputType, err = unpackBytesOpt(fields[2]); err != nil {
		return WitnessArgs{}, err
	}
	return w, nil
}
