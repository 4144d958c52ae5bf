// SPDX-License-Identifier: MIT

// Package matrix holds the dense block storage and the local kernel used by
// every rank of the distributed matrix-vector product.
//
// What:
//
//   - Dense: a row-major nlocal×nlocal (or any r×c) block of float64 values
//     stored in one flat slice (offset = i*cols + j).
//   - MatVecInto / MatVec: the local dot-product kernel y[i] = Σ_j a[i,j]·x[j].
//   - Block: copy-based sub-matrix extraction, used to cut the global matrix
//     into per-rank blocks.
//   - Validate*: a single source of truth for nil/shape/length checks.
//
// Why:
//
//   - A block is exclusively owned by its rank and never transmitted, so the
//     storage is plain and lock-free.
//   - The kernel accumulates in a fixed i-outer/j-inner order starting from 0.0,
//     so repeated calls are bit-identical and NaN/Inf propagate per IEEE-754.
//
// Errors:
//
//   - ErrInvalidDimensions: non-positive shape requested.
//   - ErrOutOfRange:        index outside the block.
//   - ErrDimensionMismatch: operand shapes/lengths disagree.
//   - ErrNilMatrix:         nil matrix or vector argument.
//
// Complexity:
//
//   - NewDense O(r*c); At/Set O(1); MatVecInto O(r*c) time, O(1) extra space.
package matrix
