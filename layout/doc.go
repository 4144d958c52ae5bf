// SPDX-License-Identifier: MIT

// Package layout moves between a global n×n problem (a gonum matrix and a
// dense vector) and the per-process shares of a k×k grid.
//
//   - Split cuts A into nlocal×nlocal blocks and hands x fragment r to the
//     last-column process of row r.
//   - Assemble concatenates the y fragments left on the last column.
//   - Serial is the single-process reference product, computed by gonum.
//   - Random builds a reproducible problem from a seed.
package layout
