// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package epoch

// Since is the packed time-lock attached to a transaction input. The top byte
// holds the flags: bit 7 selects relative (1) or absolute (0) and bits 5-6
// select the metric. The lower 56 bits hold the value.
type Since uint64

// Since metrics.
const (
	MetricBlockNumber = 0x00
	MetricEpoch       = 0x20
	MetricTimestamp   = 0x40

	flagRelative = 0x80
	metricMask   = 0x60

	valueMask = 1<<56 - 1
)

// SinceFromEpoch returns an absolute since that matures at e.
func SinceFromEpoch(e Epoch) Since {
	return Since(uint64(MetricEpoch)<<56 | e.Uint64())
}

// Flags returns the flag byte of the since value.
func (s Since) Flags() byte {
	return byte(uint64(s) >> 56)
}

// Metric returns the metric bits of the since value.
func (s Since) Metric() byte {
	return s.Flags() & metricMask
}

// IsRelative reports whether the lock is relative to the input's cell.
func (s Since) IsRelative() bool {
	return s.Flags()&flagRelative != 0
}

// IsAbsoluteEpoch reports whether the since is an absolute epoch lock.
func (s Since) IsAbsoluteEpoch() bool {
	return !s.IsRelative() && s.Metric() == MetricEpoch
}

// Value returns the 56 bit value carried by the since.
func (s Since) Value() uint64 {
	return uint64(s) & valueMask
}

// Epoch returns the epoch carried by an epoch-metric since.
func (s Since) Epoch() Epoch {
	return FromUint64(s.Value())
}
