// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package netparams holds the well-known scripts of each network: their
// code hashes and the cell deps that provide their code.
package netparams

import (
	"fmt"
	"maps"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownScript is returned for script names that are not known or
	// not configured for a network.
	ErrUnknownScript = errors.New("unknown script")

	// ErrUnknownNetwork is returned for network names without built in
	// parameters.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidScript is returned when a configured script is unusable.
	ErrInvalidScript = errors.New("invalid script")
)

// ScriptName names a well-known script.
type ScriptName uint8

const (
	// Secp256k1Blake160 is the default lock: a secp256k1 signature over
	// the transaction by the key whose blake160 hash is the lock args.
	Secp256k1Blake160 ScriptName = iota

	// DAO is the type script of the deposit facility.
	DAO

	numScriptNames
)

var scriptNames = [numScriptNames]string{
	Secp256k1Blake160: "secp256k1_blake160",
	DAO:               "dao",
}

// ScriptNames returns all well-known script names.
func ScriptNames() []ScriptName {
	names := make([]ScriptName, 0, numScriptNames)
	for n := ScriptName(0); n < numScriptNames; n++ {
		names = append(names, n)
	}
	return names
}

// String returns the configuration name of n.
func (n ScriptName) String() string {
	if n < numScriptNames {
		return scriptNames[n]
	}
	return fmt.Sprintf("ScriptName(%d)", uint8(n))
}

// ParseScriptName returns the script called name.
func ParseScriptName(name string) (ScriptName, error) {
	for i, s := range scriptNames {
		if s == name {
			return ScriptName(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownScript, "%q", name)
}

// ScriptInfo locates the code of a script.
type ScriptInfo struct {
	CodeHash wire.Hash
	HashType wire.HashType
	CellDep  wire.CellDep
}

// Params is used to group parameters for various networks such as the main
// network and test networks.
type Params struct {
	Name    string
	Scripts map[ScriptName]ScriptInfo
}

// Clone returns a copy of p that shares no mutable state with it.
func (p *Params) Clone() *Params {
	return &Params{
		Name:    p.Name,
		Scripts: maps.Clone(p.Scripts),
	}
}

// Script returns the named script with the given args. The script carries
// the cell dep providing its code.
func (p *Params) Script(name ScriptName, args []byte) (cell.Script, error) {
	info, ok := p.Scripts[name]
	if !ok {
		return cell.Script{}, errors.Wrapf(ErrUnknownScript,
			"%v on %s", name, p.Name)
	}
	return cell.NewScript(info.CodeHash, args,
		cell.WithHashType(info.HashType), cell.WithDeps(info.CellDep)), nil
}

// Validate checks that every well-known script is configured with a code
// hash.
func (p *Params) Validate() error {
	for _, name := range ScriptNames() {
		info, ok := p.Scripts[name]
		if !ok {
			return errors.Wrapf(ErrUnknownScript, "%v is not "+
				"configured for %s", name, p.Name)
		}
		if info.CodeHash == (wire.Hash{}) {
			return errors.Wrapf(ErrInvalidScript, "%v has no code "+
				"hash", name)
		}
	}
	return nil
}

func mustHash(s string) wire.Hash {
	h, err := wire.HashFromHex(s)
	if err != nil {
		panic(err)
	}
	return h
}

var (
	secp256k1CodeHash = mustHash("0x9bd7e06f3ecf4be0f2fcd2188b23f1b9fc" +
		"c88e5d4b65a8637b17723bbda3cce8")
	daoCodeHash = mustHash("0x82d76d1b75fe2fd9a27dfbaa65a039221a380d76c9" +
		"26f378d3f81cf3e7e13f2e")
)

// wellKnown returns the script table of a network whose genesis puts the
// secp256k1 dep group and the DAO code in the given transactions.
func wellKnown(depGroupTx, daoTx string) map[ScriptName]ScriptInfo {
	return map[ScriptName]ScriptInfo{
		Secp256k1Blake160: {
			CodeHash: secp256k1CodeHash,
			HashType: wire.HashTypeType,
			CellDep: wire.CellDep{
				OutPoint: wire.OutPoint{
					TxHash: mustHash(depGroupTx),
				},
				DepType: wire.DepTypeDepGroup,
			},
		},
		DAO: {
			CodeHash: daoCodeHash,
			HashType: wire.HashTypeType,
			CellDep: wire.CellDep{
				OutPoint: wire.OutPoint{
					TxHash: mustHash(daoTx),
					Index:  2,
				},
				DepType: wire.DepTypeCode,
			},
		},
	}
}

// MainNetParams contains the well-known scripts of the main network.
var MainNetParams = Params{
	Name: "mainnet",
	Scripts: wellKnown(
		"0x71a7ba8fc96349fea0ed3a5c47992e3b4084b031a42264a018e0072e8172e46c",
		"0xe2fb199810d49a4d8beec56718ba2593b665db9d52299a0f9e6e75416d73ff5c",
	),
}

// TestNetParams contains the well-known scripts of the public test network.
var TestNetParams = Params{
	Name: "testnet",
	Scripts: wellKnown(
		"0xf8de3bb47d055cdf460d93a2a6e1b05f7432f9777c8c474abf4eec1d4aee5d37",
		"0x8f8c79eb6671709633fe6a46de93c0fedc9c1b8a6527a18d3983879542635c9f",
	),
}

// ForNetwork returns a copy of the built in parameters of the named network,
// free to be modified by the caller.
func ForNetwork(name string) (*Params, error) {
	switch name {
	case MainNetParams.Name:
		return MainNetParams.Clone(), nil
	case TestNetParams.Name:
		return TestNetParams.Clone(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownNetwork, "%q", name)
	}
}
