// SPDX-License-Identifier: MIT

package parmv

import (
	"errors"
	"fmt"
)

// Sentinel errors for Multiply. All are configuration errors reported before
// any message is exchanged.
var (
	// ErrNilGrid indicates a nil *grid.Cart.
	ErrNilGrid = errors.New("parmv: nil process grid")

	// ErrBadDimension indicates a global dimension n <= 0.
	ErrBadDimension = errors.New("parmv: global dimension must be > 0")

	// ErrIndivisible indicates n is not a multiple of the grid dimension k.
	ErrIndivisible = errors.New("parmv: global dimension is not divisible by the grid dimension")

	// ErrFragmentLength indicates an x or y fragment whose length is not n/k.
	ErrFragmentLength = errors.New("parmv: vector fragment length must equal n/k")
)

const opMultiply = "Multiply"

// stateErrorf wraps err with the state the process had reached when it failed.
func stateErrorf(s State, err error) error {
	return fmt.Errorf("parmv.%s[%s]: %w", opMultiply, s, err)
}
