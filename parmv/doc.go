// SPDX-License-Identifier: MIT

// Package parmv computes y = A·x for an n×n matrix A distributed in
// nlocal×nlocal blocks over a k×k process grid (nlocal = n/k).
//
// Data layout on entry:
//
//   - Process (r, c) holds block A[r,c] (rows r*nlocal.., columns c*nlocal..).
//   - Process (r, k-1) holds x fragment r; every other process supplies a
//     scratch fragment buffer of length nlocal that the call overwrites.
//
// Data layout on exit:
//
//   - Process (r, k-1) holds y fragment r. Other processes' y is untouched.
//
// Protocol (every process of the grid calls Multiply collectively):
//
//  1. Redistribute: (r, k-1) sends x fragment r to the diagonal (r, r).
//  2. Broadcast: (c, c) replicates fragment c down column c.
//  3. Multiply: every process computes py = A[r,c]·x_c locally.
//  4. Reduce: the row group sums py into y on (r, k-1).
//
// The steps are strictly ordered per process; Multiply reports them through
// State and an optional hook (WithStateHook).
//
// Errors:
//
//   - ErrNilGrid, ErrBadDimension, ErrIndivisible, ErrFragmentLength:
//     configuration errors detected before any communication.
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch: a missing or
//     mis-shaped local block.
//   - Any comm error (including ctx.Err()) raised while communicating,
//     wrapped with the state the process had reached.
package parmv
