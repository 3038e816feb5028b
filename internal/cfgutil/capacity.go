// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"strconv"
	"strings"

	"github.com/cellwallet/cellwallet/cell"
	"github.com/pkg/errors"
)

// shannonDigits is the number of decimal places of one CKByte.
const shannonDigits = 8

// ErrInvalidCapacity is returned for capacity flags that do not parse.
var ErrInvalidCapacity = errors.New("invalid capacity")

// CapacityFlag holds a capacity in shannons and implements the
// flags.Marshaler and Unmarshaler interfaces so it can be used as a config
// struct field. Values are written in CKBytes, e.g. "61" or "102.5 CKB".
type CapacityFlag struct {
	Shannons uint64
}

// NewCapacityFlag creates a CapacityFlag with a default capacity in
// shannons.
func NewCapacityFlag(defaultValue uint64) *CapacityFlag {
	return &CapacityFlag{defaultValue}
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (c *CapacityFlag) MarshalFlag() (string, error) {
	whole := c.Shannons / cell.ShannonsPerByte
	frac := c.Shannons % cell.ShannonsPerByte
	if frac == 0 {
		return strconv.FormatUint(whole, 10) + " CKB", nil
	}

	fracStr := strconv.FormatUint(frac+cell.ShannonsPerByte, 10)[1:]
	return strconv.FormatUint(whole, 10) + "." +
		strings.TrimRight(fracStr, "0") + " CKB", nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface. The value is
// parsed exactly; more than eight decimal places is an error.
func (c *CapacityFlag) UnmarshalFlag(value string) error {
	value = strings.TrimSpace(strings.TrimSuffix(value, "CKB"))

	wholeStr, fracStr, _ := strings.Cut(value, ".")
	if len(fracStr) > shannonDigits {
		return errors.Wrapf(ErrInvalidCapacity, "%q has more than %d "+
			"decimal places", value, shannonDigits)
	}

	whole, err := strconv.ParseUint(wholeStr, 10, 64)
	if err != nil {
		return errors.Wrapf(ErrInvalidCapacity, "%q: %v", value, err)
	}

	var frac uint64
	if fracStr != "" {
		padded := fracStr + strings.Repeat("0",
			shannonDigits-len(fracStr))
		frac, err = strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidCapacity, "%q: %v", value,
				err)
		}
	}

	if whole > (1<<64-1-frac)/cell.ShannonsPerByte {
		return errors.Wrapf(ErrInvalidCapacity, "%q overflows", value)
	}
	c.Shannons = whole*cell.ShannonsPerByte + frac
	return nil
}
