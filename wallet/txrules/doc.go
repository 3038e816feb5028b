// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txrules provides functions that help establish whether or not a
transaction abides by non-consensus rules enforced by node mempools.

Fee Calculation

Fees are charged per byte of the serialized transaction, including the four
byte offset it occupies in a block. The rate is expressed in shannons per 1000
bytes and the result is always rounded up:

	fee = ceil(size * rate / 1000)

Only integer arithmetic is used so repeated estimates never drift.

Output Capacity

Every output must hold at least the capacity needed to store itself: one
CKByte per byte of capacity field, lock script, type script and data.
*/
package txrules
