// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package epoch implements the fractional epoch arithmetic used by the chain
// for time-locks and DAO maturity windows.
//
// An epoch value is the rational number Number + Index/Length. Values are
// compared and added without ever leaving integer arithmetic.
package epoch

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrZeroEpochLength is returned when an arithmetic operation is
	// given an epoch whose length is zero.
	ErrZeroEpochLength = errors.New("epoch length must not be zero")

	// ErrIndexOutOfRange is returned for an epoch whose index is not
	// below its length.
	ErrIndexOutOfRange = errors.New("epoch index must be below its length")
)

// Field widths of the packed representation carried in block headers.
const (
	numberBits = 24
	indexBits  = 16
	lengthBits = 16

	indexShift  = numberBits
	lengthShift = numberBits + indexBits

	numberMask = 1<<numberBits - 1
	indexMask  = 1<<indexBits - 1
	lengthMask = 1<<lengthBits - 1
)

// Epoch is a point in chain time expressed as Number + Index/Length epochs.
type Epoch struct {
	Number uint64
	Index  uint64
	Length uint64
}

// Zero is the identity element for Add.
var Zero = Epoch{Number: 0, Index: 0, Length: 1}

// New returns the epoch number + index/length.
func New(number, index, length uint64) Epoch {
	return Epoch{Number: number, Index: index, Length: length}
}

// FromUint64 unpacks the compact representation used in block headers:
// number in bits 0-23, index in bits 24-39, length in bits 40-55.
func FromUint64(v uint64) Epoch {
	return Epoch{
		Number: v & numberMask,
		Index:  (v >> indexShift) & indexMask,
		Length: (v >> lengthShift) & lengthMask,
	}
}

// Uint64 packs the epoch into its compact header representation. Fields
// wider than their slot are truncated.
func (e Epoch) Uint64() uint64 {
	return (e.Length&lengthMask)<<lengthShift |
		(e.Index&indexMask)<<indexShift |
		e.Number&numberMask
}

// String returns the epoch as "number+index/length".
func (e Epoch) String() string {
	return fmt.Sprintf("%d+%d/%d", e.Number, e.Index, e.Length)
}

// Valid returns an error unless e is a point a block header can carry: a
// positive length and an index below it.
func (e Epoch) Valid() error {
	switch {
	case e.Length == 0:
		return errors.Wrapf(ErrZeroEpochLength, "epoch %v", e)
	case e.Index >= e.Length:
		return errors.Wrapf(ErrIndexOutOfRange, "epoch %v", e)
	}
	return nil
}

// Compare returns -1, 0 or 1 depending on whether a is before, equal to, or
// after b. Both epochs must be valid; a zero length compares as equal to
// every epoch with the same number.
func Compare(a, b Epoch) int {
	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	}

	// Cross multiply so the fractional parts are compared exactly.
	l := a.Index * b.Length
	r := b.Index * a.Length
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// Before reports whether e is strictly earlier than other.
func (e Epoch) Before(other Epoch) bool {
	return Compare(e, other) < 0
}

// After reports whether e is strictly later than other.
func (e Epoch) After(other Epoch) bool {
	return Compare(e, other) > 0
}

// Add returns e advanced by delta. The result keeps e's length; delta's
// fractional part is rescaled to it, rounding up, when the lengths differ.
func Add(e, delta Epoch) (Epoch, error) {
	if e.Length == 0 {
		return Epoch{}, errors.Wrapf(ErrZeroEpochLength, "epoch %v", e)
	}
	if delta.Length == 0 {
		return Epoch{}, errors.Wrapf(ErrZeroEpochLength, "delta %v",
			delta)
	}

	index := delta.Index
	if delta.Length != e.Length {
		index = (delta.Index*e.Length + delta.Length - 1) / delta.Length
	}

	index += e.Index
	return Epoch{
		Number: e.Number + delta.Number + index/e.Length,
		Index:  index % e.Length,
		Length: e.Length,
	}, nil
}
