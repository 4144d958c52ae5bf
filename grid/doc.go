// SPDX-License-Identifier: MIT

// Package grid arranges P = k² processes as a k×k Cartesian grid.
//
// What:
//
//   - Topology: the pure geometry of the grid. Ranks are row-major,
//     rank = row*k + col, so (0,0) is rank 0 and (k-1,k-1) is rank P-1.
//   - RolesOf: the role a coordinate plays in each phase of the distributed
//     product (redistribute, broadcast, reduce), derived from its coordinate only.
//   - Cart: a communicator bound to a Topology. Sub(AxisRow) and Sub(AxisCol)
//     derive the row and column groups, like MPI_Cart_sub.
//
// Groups:
//
//   - Row group of (r, c): (r, 0..k-1). The caller's rank inside it is c.
//   - Column group of (r, c): (0..k-1, c). The caller's rank inside it is r.
//
// Complexity:
//
//   - Coords, Rank, RolesOf: O(1). RowGroup, ColGroup: O(k).
//
// Errors:
//
//   - ErrEmptyGrid: P <= 0.
//   - ErrNotPerfectSquare: P is not k² for an integer k.
//   - ErrOutOfRange: a rank or coordinate outside the grid.
//   - ErrNilComm: NewCart was given no communicator.
package grid
