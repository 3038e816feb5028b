// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"io"
	"os"

	"github.com/cellwallet/cellwallet/wire"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// scriptsFile is the YAML layout of a script table:
//
//	network: devnet
//	scripts:
//	  dao:
//	    code_hash: 0x82d7...
//	    hash_type: type
//	    tx_hash: 0x8f8c...
//	    index: 2
//	    dep_type: code
type scriptsFile struct {
	Network string                 `yaml:"network"`
	Scripts map[string]scriptEntry `yaml:"scripts"`
}

type scriptEntry struct {
	CodeHash wire.Hash      `yaml:"code_hash"`
	HashType *wire.HashType `yaml:"hash_type,omitempty"`
	TxHash   wire.Hash      `yaml:"tx_hash"`
	Index    uint32         `yaml:"index"`
	DepType  wire.DepType   `yaml:"dep_type"`
}

// ReadScripts parses a YAML script table. Every well-known script must be
// present; unknown names are rejected. A missing hash_type means type.
func ReadScripts(r io.Reader) (*Params, error) {
	var f scriptsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode script table")
	}

	p := &Params{
		Name:    f.Network,
		Scripts: make(map[ScriptName]ScriptInfo, len(f.Scripts)),
	}
	for key, entry := range f.Scripts {
		name, err := ParseScriptName(key)
		if err != nil {
			return nil, err
		}

		hashType := wire.HashTypeType
		if entry.HashType != nil {
			hashType = *entry.HashType
		}
		p.Scripts[name] = ScriptInfo{
			CodeHash: entry.CodeHash,
			HashType: hashType,
			CellDep: wire.CellDep{
				OutPoint: wire.OutPoint{
					TxHash: entry.TxHash,
					Index:  entry.Index,
				},
				DepType: entry.DepType,
			},
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadScripts reads a YAML script table from path.
func LoadScripts(path string) (*Params, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open script table")
	}
	defer file.Close()

	p, err := ReadScripts(file)
	if err != nil {
		return nil, errors.Wrapf(err, "script table %s", path)
	}
	return p, nil
}

// WriteScripts writes the script table of p as YAML.
func WriteScripts(w io.Writer, p *Params) error {
	f := scriptsFile{
		Network: p.Name,
		Scripts: make(map[string]scriptEntry, len(p.Scripts)),
	}
	for name, info := range p.Scripts {
		hashType := info.HashType
		f.Scripts[name.String()] = scriptEntry{
			CodeHash: info.CodeHash,
			HashType: &hashType,
			TxHash:   info.CellDep.OutPoint.TxHash,
			Index:    info.CellDep.OutPoint.Index,
			DepType:  info.CellDep.DepType,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return errors.Wrap(err, "encode script table")
	}
	return enc.Close()
}
