// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire holds the transaction structures the wallet assembles and
// converts them to the node SDK's types for molecule serialization, size
// and hash calculation.
//
// Every Serialize method produces the exact bytes the chain hashes and
// measures, so transaction sizes and witness offsets computed from them match
// what a node computes.
package wire

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/nervosnetwork/ckb-sdk-go/crypto/blake2b"
	"github.com/nervosnetwork/ckb-sdk-go/types"
	"github.com/pkg/errors"
)

// HashSize is the size of a hash in bytes.
const HashSize = 32

// Hash is a 32 byte blake2b digest identifying transactions, blocks and
// script code.
type Hash [HashSize]byte

// String returns the 0x prefixed hex encoding of the hash.
func (h Hash) String() string {
	return hexutil.Encode(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := HashFromHex(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HashFromHex parses a 0x prefixed 32 byte hex string.
func HashFromHex(s string) (Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Hash{}, errors.Wrapf(err, "decode hash %q", s)
	}
	if len(b) != HashSize {
		return Hash{}, errors.Errorf("hash %q has %d bytes, want %d",
			s, len(b), HashSize)
	}

	var h Hash
	copy(h[:], b)
	return h, nil
}

// HashType selects how a script's code hash is matched against cell deps.
type HashType byte

// The hash types understood by the chain.
const (
	HashTypeData  HashType = 0
	HashTypeType  HashType = 1
	HashTypeData1 HashType = 2
)

var hashTypeNames = map[HashType]types.ScriptHashType{
	HashTypeData:  types.HashTypeData,
	HashTypeType:  types.HashTypeType,
	HashTypeData1: types.HashTypeData1,
}

// String returns the JSON-RPC name of the hash type.
func (t HashType) String() string {
	if name, ok := hashTypeNames[t]; ok {
		return string(name)
	}
	return "unknown"
}

// ToSDK returns the SDK hash type. An unknown hash type converts to a name
// the SDK refuses to serialize.
func (t HashType) ToSDK() types.ScriptHashType {
	return types.ScriptHashType(t.String())
}

// MarshalText implements encoding.TextMarshaler.
func (t HashType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *HashType) UnmarshalText(text []byte) error {
	for k, v := range hashTypeNames {
		if string(v) == string(text) {
			*t = k
			return nil
		}
	}
	return errors.Errorf("unknown hash type %q", text)
}

// DepType tells the chain how to resolve a cell dep.
type DepType byte

// Dep types.
const (
	DepTypeCode     DepType = 0
	DepTypeDepGroup DepType = 1
)

// String returns the JSON-RPC name of the dep type.
func (t DepType) String() string {
	switch t {
	case DepTypeCode:
		return string(types.DepTypeCode)
	case DepTypeDepGroup:
		return string(types.DepTypeDepGroup)
	default:
		return "unknown"
	}
}

// ToSDK returns the SDK dep type.
func (t DepType) ToSDK() types.DepType {
	return types.DepType(t.String())
}

// MarshalText implements encoding.TextMarshaler.
func (t DepType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DepType) UnmarshalText(text []byte) error {
	switch types.DepType(text) {
	case types.DepTypeCode:
		*t = DepTypeCode
	case types.DepTypeDepGroup:
		*t = DepTypeDepGroup
	default:
		return errors.Errorf("unknown dep type %q", text)
	}
	return nil
}

// OutPoint references an output of a previous transaction.
type OutPoint struct {
	TxHash Hash
	Index  uint32
}

// ToSDK returns the SDK out point.
func (o OutPoint) ToSDK() *types.OutPoint {
	return &types.OutPoint{
		TxHash: types.Hash(o.TxHash),
		Index:  uint(o.Index),
	}
}

// Serialize encodes the out point as a 36 byte struct.
func (o OutPoint) Serialize() ([]byte, error) {
	return o.ToSDK().Serialize()
}

// CellDep is a transaction dependency on a code or dep group cell.
type CellDep struct {
	OutPoint OutPoint
	DepType  DepType
}

// ToSDK returns the SDK cell dep.
func (d CellDep) ToSDK() *types.CellDep {
	return &types.CellDep{
		OutPoint: d.OutPoint.ToSDK(),
		DepType:  d.DepType.ToSDK(),
	}
}

// Serialize encodes the cell dep as a 37 byte struct.
func (d CellDep) Serialize() ([]byte, error) {
	return d.ToSDK().Serialize()
}

// Script is the on-chain identity of lock or type logic.
type Script struct {
	CodeHash Hash
	HashType HashType
	Args     []byte
}

// Equal reports whether both scripts have the same code hash, hash type and
// args.
func (s Script) Equal(other Script) bool {
	return s.CodeHash == other.CodeHash &&
		s.HashType == other.HashType &&
		bytes.Equal(s.Args, other.Args)
}

// ToSDK returns the SDK script. The args are shared.
func (s Script) ToSDK() *types.Script {
	return &types.Script{
		CodeHash: types.Hash(s.CodeHash),
		HashType: s.HashType.ToSDK(),
		Args:     s.Args,
	}
}

// Serialize encodes the script table.
func (s Script) Serialize() ([]byte, error) {
	return s.ToSDK().Serialize()
}

// CellInput spends a previous output, optionally time-locked by since.
type CellInput struct {
	Since          uint64
	PreviousOutput OutPoint
}

// ToSDK returns the SDK cell input.
func (i CellInput) ToSDK() *types.CellInput {
	return &types.CellInput{
		Since:          i.Since,
		PreviousOutput: i.PreviousOutput.ToSDK(),
	}
}

// Serialize encodes the input as a 44 byte struct.
func (i CellInput) Serialize() ([]byte, error) {
	return i.ToSDK().Serialize()
}

// CellOutput is a cell created by a transaction, without its data.
type CellOutput struct {
	Capacity uint64
	Lock     Script
	Type     fn.Option[Script]
}

// ToSDK returns the SDK cell output. A missing type script is nil.
func (o CellOutput) ToSDK() *types.CellOutput {
	out := &types.CellOutput{
		Capacity: o.Capacity,
		Lock:     o.Lock.ToSDK(),
	}
	o.Type.WhenSome(func(s Script) {
		out.Type = s.ToSDK()
	})
	return out
}

// Serialize encodes the output table.
func (o CellOutput) Serialize() ([]byte, error) {
	return o.ToSDK().Serialize()
}

// Transaction is a complete transaction including witnesses.
type Transaction struct {
	Version     uint32
	CellDeps    []CellDep
	HeaderDeps  []Hash
	Inputs      []CellInput
	Outputs     []CellOutput
	OutputsData [][]byte
	Witnesses   [][]byte
}

// ToSDK returns the SDK transaction. Byte slices are shared, and the hash
// field is left unset.
func (tx *Transaction) ToSDK() *types.Transaction {
	sdkTx := &types.Transaction{
		Version:     uint(tx.Version),
		CellDeps:    make([]*types.CellDep, 0, len(tx.CellDeps)),
		HeaderDeps:  make([]types.Hash, 0, len(tx.HeaderDeps)),
		Inputs:      make([]*types.CellInput, 0, len(tx.Inputs)),
		Outputs:     make([]*types.CellOutput, 0, len(tx.Outputs)),
		OutputsData: tx.OutputsData,
		Witnesses:   tx.Witnesses,
	}
	for _, d := range tx.CellDeps {
		sdkTx.CellDeps = append(sdkTx.CellDeps, d.ToSDK())
	}
	for _, h := range tx.HeaderDeps {
		sdkTx.HeaderDeps = append(sdkTx.HeaderDeps, types.Hash(h))
	}
	for _, in := range tx.Inputs {
		sdkTx.Inputs = append(sdkTx.Inputs, in.ToSDK())
	}
	for _, out := range tx.Outputs {
		sdkTx.Outputs = append(sdkTx.Outputs, out.ToSDK())
	}
	return sdkTx
}

// SerializeRaw encodes the raw transaction, the part covered by the
// transaction hash.
func (tx *Transaction) SerializeRaw() ([]byte, error) {
	raw, err := tx.ToSDK().Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "serialize raw transaction")
	}
	return raw, nil
}

// Serialize encodes the full transaction table.
func (tx *Transaction) Serialize() ([]byte, error) {
	raw, err := tx.SerializeRaw()
	if err != nil {
		return nil, err
	}

	witnesses := make([][]byte, 0, len(tx.Witnesses))
	for _, w := range tx.Witnesses {
		witnesses = append(witnesses, types.SerializeBytes(w))
	}
	return types.SerializeTable([][]byte{
		raw, types.SerializeDynVec(witnesses),
	}), nil
}

// SerializeSize returns the number of bytes Serialize produces.
func (tx *Transaction) SerializeSize() (int, error) {
	b, err := tx.Serialize()
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// SizeInBlock returns the size the transaction occupies in a block, which is
// what fees are charged on.
func (tx *Transaction) SizeInBlock() (int, error) {
	size, err := tx.ToSDK().SizeInBlock()
	if err != nil {
		return 0, errors.Wrap(err, "transaction size")
	}
	return int(size), nil
}

// TxHash returns the transaction hash: the ckb personalized blake2b-256
// digest of the raw transaction. Witnesses are not covered.
func (tx *Transaction) TxHash() (Hash, error) {
	raw, err := tx.SerializeRaw()
	if err != nil {
		return Hash{}, err
	}
	digest, err := blake2b.Blake256(raw)
	if err != nil {
		return Hash{}, errors.Wrap(err, "hash transaction")
	}

	var h Hash
	copy(h[:], digest)
	return h, nil
}
