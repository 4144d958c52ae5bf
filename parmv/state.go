// SPDX-License-Identifier: MIT

package parmv

import "fmt"

// State is the per-process progress of one Multiply call. States are entered
// strictly in declaration order.
type State int

const (
	Init State = iota
	CoordinatesAssigned
	VectorRedistributed
	VectorBroadcast
	LocallyMultiplied
	RowReduced
	Done
)

var stateNames = [...]string{
	Init:                "init",
	CoordinatesAssigned: "coordinates-assigned",
	VectorRedistributed: "vector-redistributed",
	VectorBroadcast:     "vector-broadcast",
	LocallyMultiplied:   "locally-multiplied",
	RowReduced:          "row-reduced",
	Done:                "done",
}

func (s State) String() string {
	if s < Init || s > Done {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}
