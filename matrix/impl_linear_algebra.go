// SPDX-License-Identifier: MIT
// Package matrix provides the local matrix-vector kernel run by every rank.
//
// Purpose:
//   - Compute the partial dot products of an owned block against the
//     vector fragment the rank currently holds.
//
// Notes:
//   - Kernels use the central validators and wrap failures via matrixErrorf.
//   - Accumulation order is fixed (i outer, j inner, start at ZeroSum) so the
//     result is reproducible bit-for-bit across calls and ranks.

package matrix

import "fmt"

// ZeroSum is the initial value of every dot-product accumulator.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMatVec     = "MatVec"
	opMatVecInto = "MatVecInto"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVecInto computes dst = m * x into a caller-owned buffer.
// MAIN DESCRIPTION:
//   - The local multiply step: dst[i] = Σ_j m[i,j]·x[j] for i in [0, Rows()).
//
// Implementation:
//   - Stage 1: validate m (non-nil), x (len == Cols), dst (len == Rows).
//   - Stage 2: fast-path for *Dense walks the flat buffer row by row.
//     Otherwise, fallback At() with the same i→j order.
//
// Behavior highlights:
//   - Pure and stateless: m and x are only read; dst is fully overwritten.
//   - No zero-skipping: 0·NaN and 0·Inf yield NaN as IEEE-754 prescribes.
//   - Idempotent: identical inputs always produce identical dst.
//
// Errors:
//   - ErrNilMatrix (nil m, x or dst), ErrDimensionMismatch (length/shape).
//
// Complexity:
//   - Time O(r*c), Space O(1) beyond dst.
func MatVecInto(dst []float64, m Matrix, x []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatVecInto, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return matrixErrorf(opMatVecInto, err)
	}
	if err := ValidateVecLen(dst, m.Rows()); err != nil {
		return matrixErrorf(opMatVecInto, err)
	}

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			dst[i] = acc
		}

		return nil
	}

	// Fallback: interface-based dot-products via At.
	rows, cols := m.Rows(), m.Cols()
	var i, j int
	var mv, acc float64
	var err error
	for i = 0; i < rows; i++ {
		acc = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return matrixErrorf(opMatVecInto, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			acc += mv * x[j]
		}
		dst[i] = acc
	}

	return nil
}

// MatVec computes y = m * x for a column vector x and returns a fresh y.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Determinism: same i→j order as MatVecInto.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.Rows())
	if err := MatVecInto(y, m, x); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	return y, nil
}
