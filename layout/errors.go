// SPDX-License-Identifier: MIT

package layout

import "errors"

// Sentinel errors for layout operations.
var (
	// ErrNotSquare indicates a global matrix that is not n×n, or n == 0.
	ErrNotSquare = errors.New("layout: matrix must be square and non-empty")
	// ErrVecLen indicates a global vector whose length differs from n.
	ErrVecLen = errors.New("layout: vector length must equal n")
	// ErrIndivisible indicates n is not a multiple of k.
	ErrIndivisible = errors.New("layout: n must be divisible by k")
	// ErrShares indicates a share set that does not describe a complete grid.
	ErrShares = errors.New("layout: incomplete or inconsistent shares")
)
