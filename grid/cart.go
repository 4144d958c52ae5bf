// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"

	"github.com/katalvlaran/gridmv/comm"
)

// Cart is a communicator laid out as a k×k grid, the counterpart of an MPI
// Cartesian communicator with periods = false and reorder = false.
// A Cart belongs to a single rank, like the comm.Comm it wraps.
type Cart struct {
	c     comm.Comm
	topo  *Topology
	coord Coord
}

// NewCart binds c to the grid of c.Size() processes.
// Returns ErrNilComm, or the NewTopology errors when c.Size() is not a
// positive perfect square.
func NewCart(c comm.Comm) (*Cart, error) {
	if c == nil {
		return nil, gridErrorf(opNewCart, ErrNilComm)
	}
	topo, err := NewTopology(c.Size())
	if err != nil {
		return nil, gridErrorf(opNewCart, err)
	}
	coord, err := topo.Coords(c.Rank())
	if err != nil {
		return nil, gridErrorf(opNewCart, err)
	}

	return &Cart{c: c, topo: topo, coord: coord}, nil
}

// Comm returns the underlying world communicator.
func (g *Cart) Comm() comm.Comm { return g.c }

// Topology returns the grid geometry.
func (g *Cart) Topology() *Topology { return g.topo }

// Coords returns the caller's coordinate.
func (g *Cart) Coords() Coord { return g.coord }

// Roles returns the caller's per-phase roles.
func (g *Cart) Roles() Roles { return RolesOf(g.coord, g.topo.k) }

// RankOf returns the world rank of c.
func (g *Cart) RankOf(c Coord) (int, error) { return g.topo.Rank(c) }

// Sub derives the caller's row group (AxisRow) or column group (AxisCol).
// In the row group the caller's rank is its column; in the column group it is
// its row. Every rank of the Cart must call Sub with the same axis in the same
// order. The caller owns the returned handle and must Free it.
func (g *Cart) Sub(axis Axis) (comm.Comm, error) {
	var (
		members []int
		err     error
	)
	switch axis {
	case AxisRow:
		members, err = g.topo.RowGroup(g.c.Rank())
	case AxisCol:
		members, err = g.topo.ColGroup(g.c.Rank())
	default:
		return nil, gridErrorf(opSub, fmt.Errorf("%s: %w", axis, ErrBadAxis))
	}
	if err != nil {
		return nil, gridErrorf(opSub, err)
	}
	sub, err := g.c.Sub(members)
	if err != nil {
		return nil, gridErrorf(opSub, fmt.Errorf("%s group of %s: %w", axis, g.coord, err))
	}

	return sub, nil
}
