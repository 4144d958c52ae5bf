// SPDX-License-Identifier: MIT

package grid

// RolesOf derives the per-phase roles of coordinate c on a k×k grid.
//
//   - Redistribute: Sender iff col = k-1 and row != k-1; Receiver iff row = col
//     and row != k-1; None otherwise. (k-1, k-1) keeps its own fragment.
//   - Broadcast: Root iff row = col. The diagonal process is the root of its
//     column group, and its rank there is its row.
//   - Reduce: Root iff col = k-1, the rank k-1 of its row group.
//
// RolesOf is pure; k = 1 yields (None, Root, Root). The caller guarantees c
// lies on the grid.
func RolesOf(c Coord, k int) Roles {
	var r Roles
	last := k - 1
	switch {
	case c.Col == last && c.Row != last:
		r.Redistribute = RedistributeSender
	case c.Row == c.Col && c.Row != last:
		r.Redistribute = RedistributeReceiver
	}
	if c.Row == c.Col {
		r.Broadcast = BroadcastRoot
	}
	if c.Col == last {
		r.Reduce = ReduceRoot
	}

	return r
}
