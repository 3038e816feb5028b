// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"context"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/pkg/errors"
)

// ErrLengthMismatch is returned when a Committer does not return exactly one
// out point per committed cell.
var ErrLengthMismatch = errors.New("committed cell count mismatch")

// Committer puts cells on chain, for example on a development network.
type Committer interface {
	// Commit creates cells and returns their out points in the same
	// order.
	Commit(ctx context.Context, cells []cell.Cell) ([]wire.OutPoint, error)
}

// Deployment is a script whose code cell is to be committed.
type Deployment struct {
	Name ScriptName

	// Code is the cell holding the script code.
	Code cell.Cell

	// CodeHash and HashType are how scripts refer to the code once
	// committed.
	CodeHash wire.Hash
	HashType wire.HashType
}

// Deploy commits the code cells of deployments and returns the parameters of
// network name referring to them through code cell deps.
func Deploy(ctx context.Context, committer Committer, name string,
	deployments []Deployment) (*Params, error) {

	cells := make([]cell.Cell, 0, len(deployments))
	for _, d := range deployments {
		cells = append(cells, d.Code)
	}

	outPoints, err := committer.Commit(ctx, cells)
	if err != nil {
		return nil, errors.Wrap(err, "commit code cells")
	}
	if len(outPoints) != len(cells) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d cells, %d out "+
			"points", len(cells), len(outPoints))
	}

	p := &Params{
		Name:    name,
		Scripts: make(map[ScriptName]ScriptInfo, len(deployments)),
	}
	for i, d := range deployments {
		p.Scripts[d.Name] = ScriptInfo{
			CodeHash: d.CodeHash,
			HashType: d.HashType,
			CellDep: wire.CellDep{
				OutPoint: outPoints[i],
				DepType:  wire.DepTypeCode,
			},
		}
	}
	return p, nil
}
