// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/epoch"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

// ErrIncompatibleSince is returned when an input's lock and type scripts
// require since values of different kinds that cannot be ordered.
var ErrIncompatibleSince = errors.New("lock and type since values are " +
	"incompatible")

// laterSince returns the more restrictive of two since values. Absolute epoch
// locks are ordered by epoch; other locks of the same kind by value.
func laterSince(a, b epoch.Since) (epoch.Since, error) {
	switch {
	case a == b:
		return a, nil

	case a.IsAbsoluteEpoch() && b.IsAbsoluteEpoch():
		if err := a.Epoch().Valid(); err != nil {
			return 0, err
		}
		if err := b.Epoch().Valid(); err != nil {
			return 0, err
		}
		if epoch.Compare(a.Epoch(), b.Epoch()) >= 0 {
			return a, nil
		}
		return b, nil

	case a.Flags() == b.Flags():
		if a.Value() >= b.Value() {
			return a, nil
		}
		return b, nil

	default:
		return 0, errors.Wrapf(ErrIncompatibleSince, "%#x and %#x",
			uint64(a), uint64(b))
	}
}

// inputSince merges the since values the lock and type scripts of c require.
func inputSince(c cell.Cell) (fn.Option[uint64], error) {
	lockSince := c.Lock.Since
	typeSince := fn.None[uint64]()
	c.Type.WhenSome(func(s cell.Script) {
		typeSince = s.Since
	})

	switch {
	case lockSince.IsNone():
		return typeSince, nil
	case typeSince.IsNone():
		return lockSince, nil
	}

	merged, err := laterSince(
		epoch.Since(lockSince.UnwrapOr(0)),
		epoch.Since(typeSince.UnwrapOr(0)),
	)
	if err != nil {
		return fn.None[uint64](), err
	}
	return fn.Some(uint64(merged)), nil
}

// shiftSinces returns a copy of sinces with every entry at or after at moved
// n positions up.
func shiftSinces(sinces map[int]uint64, at, n int) map[int]uint64 {
	out := make(map[int]uint64, len(sinces))
	for i, since := range sinces {
		if i >= at {
			i += n
		}
		out[i] = since
	}
	return out
}
