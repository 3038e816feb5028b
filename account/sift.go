// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"github.com/cellwallet/cellwallet/cell"
)

// Sifted is the result of Sift.
type Sifted struct {
	// Owned cells have their lock replaced with the expanded lock.
	Owned []cell.Cell

	// Unrelated cells are returned as they were.
	Unrelated []cell.Cell
}

// Sift splits cells into the ones expander recognizes and the rest, keeping
// their order.
func Sift(cells []cell.Cell, expander LockExpander) Sifted {
	var s Sifted
	for _, c := range cells {
		lock := expander(c)
		if lock.IsNone() {
			s.Unrelated = append(s.Unrelated, c)
			continue
		}
		s.Owned = append(s.Owned, c.WithLock(lock.UnwrapOr(c.Lock)))
	}
	return s
}

// SimpleCells returns the pure capacity cells among cells: no type script
// and no data. Those are the cells that can fund a transaction.
func SimpleCells(cells []cell.Cell) []cell.Cell {
	var simple []cell.Cell
	for _, c := range cells {
		if c.IsSimple() {
			simple = append(simple, c)
		}
	}
	return simple
}

// Capacity returns the total capacity of cells.
func Capacity(cells []cell.Cell) uint64 {
	var total uint64
	for _, c := range cells {
		total += c.Capacity
	}
	return total
}
