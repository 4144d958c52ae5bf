// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a process count <= 0.
	ErrEmptyGrid = errors.New("grid: process count must be > 0")
	// ErrNotPerfectSquare indicates a process count that is not k² for an integer k.
	ErrNotPerfectSquare = errors.New("grid: process count must be a perfect square")
	// ErrOutOfRange indicates a rank or coordinate outside the grid.
	ErrOutOfRange = errors.New("grid: rank or coordinate out of range")
	// ErrNilComm indicates a nil communicator passed to NewCart.
	ErrNilComm = errors.New("grid: nil communicator")
	// ErrBadAxis indicates an Axis value other than AxisRow or AxisCol.
	ErrBadAxis = errors.New("grid: unknown axis")
)

// gridErrorf wraps err with the operation tag.
func gridErrorf(op string, err error) error {
	return fmt.Errorf("grid.%s: %w", op, err)
}
