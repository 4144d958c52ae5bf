// SPDX-License-Identifier: MIT

package grid

import "fmt"

// Coord is a process position on the grid.
type Coord struct {
	Row, Col int
}

// String renders the coordinate as "(row,col)".
func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Axis selects which sub-group Cart.Sub derives.
type Axis int

const (
	// AxisRow keeps the column dimension: the processes sharing the caller's row.
	AxisRow Axis = iota
	// AxisCol keeps the row dimension: the processes sharing the caller's column.
	AxisCol
)

func (a Axis) String() string {
	switch a {
	case AxisRow:
		return "row"
	case AxisCol:
		return "col"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// RedistributeRole is a process's part in moving x fragments to the diagonal.
type RedistributeRole int

const (
	// RedistributeNone: no transfer (row k-1, and every process when k = 1).
	RedistributeNone RedistributeRole = iota
	// RedistributeSender: (r, k-1) with r != k-1 sends its fragment to (r, r).
	RedistributeSender
	// RedistributeReceiver: (r, r) with r != k-1 receives the fragment of (r, k-1).
	RedistributeReceiver
)

func (r RedistributeRole) String() string {
	switch r {
	case RedistributeNone:
		return "none"
	case RedistributeSender:
		return "sender"
	case RedistributeReceiver:
		return "receiver"
	default:
		return fmt.Sprintf("RedistributeRole(%d)", int(r))
	}
}

// BroadcastRole is a process's part in the column broadcast.
type BroadcastRole int

const (
	BroadcastMember BroadcastRole = iota
	BroadcastRoot                 // the diagonal process of the column
)

func (b BroadcastRole) String() string {
	if b == BroadcastRoot {
		return "root"
	}

	return "member"
}

// ReduceRole is a process's part in the row reduction.
type ReduceRole int

const (
	ReduceMember ReduceRole = iota
	ReduceRoot              // the last-column process of the row
)

func (r ReduceRole) String() string {
	if r == ReduceRoot {
		return "root"
	}

	return "member"
}

// Roles bundles the three per-phase roles of one coordinate.
type Roles struct {
	Redistribute RedistributeRole
	Broadcast    BroadcastRole
	Reduce       ReduceRole
}

func (r Roles) String() string {
	return fmt.Sprintf("redistribute=%s broadcast=%s reduce=%s", r.Redistribute, r.Broadcast, r.Reduce)
}
