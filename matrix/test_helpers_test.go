// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for the Dense type and kernel tests.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/gridmv/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the At-based fallback path in kernels.
type hide struct{ matrix.Matrix }

// MustDenseFrom builds an r×c *Dense from row-major data or fails the test.
func MustDenseFrom(t testing.TB, r, c int, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

// seq returns [start, start+1, ..., start+n-1] as float64.
func seq(start, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(start + i)
	}

	return out
}
