// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"slices"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/pkg/errors"
)

// UnpackedWitnesses holds the three witness args fields as parallel lists.
// Locks and InputTypes are aligned with the inputs, OutputTypes with the
// outputs.
type UnpackedWitnesses struct {
	Locks       []fn.Option[[]byte]
	InputTypes  []fn.Option[[]byte]
	OutputTypes []fn.Option[[]byte]

	// The blank lists flag the fields read from a zero length witness. A
	// slot whose fields are all blank packs back to zero length.
	blankLocks       []bool
	blankInputTypes  []bool
	blankOutputTypes []bool
}

// UnpackWitnesses decodes the first n witness slots. Slots past the end of
// witnesses are the empty placeholder.
func UnpackWitnesses(witnesses [][]byte, n int) (UnpackedWitnesses, error) {
	n = max(n, len(witnesses))
	u := UnpackedWitnesses{
		Locks:            make([]fn.Option[[]byte], n),
		InputTypes:       make([]fn.Option[[]byte], n),
		OutputTypes:      make([]fn.Option[[]byte], n),
		blankLocks:       make([]bool, n),
		blankInputTypes:  make([]bool, n),
		blankOutputTypes: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		var args wire.WitnessArgs
		if i < len(witnesses) {
			var err error
			args, err = wire.DeserializeWitnessArgs(witnesses[i])
			if err != nil {
				return UnpackedWitnesses{}, errors.Wrapf(err,
					"witness %d", i)
			}

			blank := len(witnesses[i]) == 0
			u.blankLocks[i] = blank
			u.blankInputTypes[i] = blank
			u.blankOutputTypes[i] = blank
		}
		u.Locks[i] = args.Lock
		u.InputTypes[i] = args.InputType
		u.OutputTypes[i] = args.OutputType
	}
	return u, nil
}

func optAt(list []fn.Option[[]byte], i int) fn.Option[[]byte] {
	if i < len(list) {
		return list[i]
	}
	return fn.None[[]byte]()
}

func blankAt(list []bool, i int) bool {
	return i < len(list) && list[i]
}

// insert adds fragments at inputAt and outputAt. The new fields are never
// blank.
func (u *UnpackedWitnesses) insert(inputAt int, locks,
	inputTypes []fn.Option[[]byte], outputAt int,
	outputTypes []fn.Option[[]byte]) {

	u.Locks = slices.Insert(u.Locks, inputAt, locks...)
	u.InputTypes = slices.Insert(u.InputTypes, inputAt, inputTypes...)
	u.OutputTypes = slices.Insert(u.OutputTypes, outputAt, outputTypes...)

	u.blankLocks = slices.Insert(u.blankLocks, inputAt,
		make([]bool, len(locks))...)
	u.blankInputTypes = slices.Insert(u.blankInputTypes, inputAt,
		make([]bool, len(inputTypes))...)
	u.blankOutputTypes = slices.Insert(u.blankOutputTypes, outputAt,
		make([]bool, len(outputTypes))...)
}

// groupLocks keeps a lock witness only on the first input of each lock
// group, the one the lock script reads it from. The first fragment found in a
// group moves there and the others are dropped.
func (u *UnpackedWitnesses) groupLocks(inputs []cell.Cell) {
	for i := range inputs {
		leader := slices.IndexFunc(inputs[:i], func(c cell.Cell) bool {
			return c.Lock.Equal(inputs[i].Lock)
		})
		if leader < 0 || u.Locks[i].IsNone() {
			continue
		}

		if u.Locks[leader].IsNone() {
			u.Locks[leader] = u.Locks[i]
			u.blankLocks[leader] = false
		}
		u.Locks[i] = fn.None[[]byte]()
	}
}

// Pack repacks the lists index-wise into witness args and trims trailing
// empty placeholders. Zero length witnesses nothing was written to stay zero
// length.
func (u UnpackedWitnesses) Pack() [][]byte {
	n := max(len(u.Locks), len(u.InputTypes), len(u.OutputTypes))
	witnesses := make([][]byte, n)
	for i := 0; i < n; i++ {
		args := wire.WitnessArgs{
			Lock:       optAt(u.Locks, i),
			InputType:  optAt(u.InputTypes, i),
			OutputType: optAt(u.OutputTypes, i),
		}

		if args.IsEmpty() && blankAt(u.blankLocks, i) &&
			blankAt(u.blankInputTypes, i) &&
			blankAt(u.blankOutputTypes, i) {

			witnesses[i] = []byte{}
			continue
		}
		witnesses[i] = args.Serialize()
	}
	return TrimWitnesses(witnesses)
}

// TrimWitnesses drops trailing empty placeholder slots.
func TrimWitnesses(witnesses [][]byte) [][]byte {
	end := len(witnesses)
	for end > 0 && wire.IsEmptyWitness(witnesses[end-1]) {
		end--
	}
	return witnesses[:end]
}

func scriptWitness(s fn.Option[cell.Script]) fn.Option[[]byte] {
	w := fn.None[[]byte]()
	s.WhenSome(func(s cell.Script) {
		w = s.Witness
	})
	return w
}

// spliceWitnesses inserts the witness fragments of new inputs at inputAt and
// of new outputs at outputAt. Existing slots cover every current input and
// output even where no witness has been written yet.
func spliceWitnesses(s Skeleton, inputAt int, inputs []cell.Cell,
	outputAt int, outputs []cell.Cell) ([][]byte, error) {

	n := max(len(s.Inputs), len(s.Outputs), len(s.Witnesses))
	u, err := UnpackWitnesses(s.Witnesses, n)
	if err != nil {
		return nil, err
	}

	locks := make([]fn.Option[[]byte], 0, len(inputs))
	inputTypes := make([]fn.Option[[]byte], 0, len(inputs))
	for _, in := range inputs {
		locks = append(locks, in.Lock.Witness)
		inputTypes = append(inputTypes, scriptWitness(in.Type))
	}
	outputTypes := make([]fn.Option[[]byte], 0, len(outputs))
	for _, out := range outputs {
		outputTypes = append(outputTypes, scriptWitness(out.Type))
	}

	u.insert(inputAt, locks, inputTypes, outputAt, outputTypes)
	u.groupLocks(slices.Insert(slices.Clone(s.Inputs), inputAt, inputs...))

	return u.Pack(), nil
}
