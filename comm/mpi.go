// SPDX-License-Identifier: MIT

//go:build mpi

package comm

import (
	"context"
	"fmt"

	mpi "github.com/sbromberger/gompi"
)

// MPI adapts a gompi communicator to Comm for real multi-process runs
// (one OS process per rank, launched by mpirun). Build with -tags mpi.
//
// Sub relies on MPI_Comm_create semantics: sub-groups created concurrently by
// different ranks must be disjoint, which holds for the row and column groups
// of a Cartesian grid. Blocking calls cannot be interrupted; ctx is only
// checked before each call.
type MPI struct {
	c       *mpi.Communicator
	members []int // world rank of every group rank
	freed   bool
}

var _ Comm = (*MPI)(nil)

// StartMPI initializes the MPI runtime. Call once per process before NewMPIWorld.
func StartMPI() { mpi.Start(true) }

// StopMPI finalizes the MPI runtime.
func StopMPI() { mpi.Stop() }

// NewMPIWorld returns the world communicator handle.
func NewMPIWorld() *MPI {
	c := mpi.NewCommunicator(nil)
	members := make([]int, c.Size())
	for i := range members {
		members[i] = i
	}

	return &MPI{c: c, members: members}
}

func (m *MPI) Rank() int { return m.c.Rank() }

func (m *MPI) Size() int { return m.c.Size() }

func (m *MPI) check(ctx context.Context, op string) error {
	if m.freed {
		return commErrorf(op, m.Rank(), ErrFreed)
	}
	if err := ctx.Err(); err != nil {
		return commErrorf(op, m.Rank(), err)
	}

	return nil
}

func (m *MPI) inRange(op string, r int) error {
	if r < 0 || r >= m.Size() {
		return commErrorf(op, m.Rank(), fmt.Errorf("rank %d: %w", r, ErrRankOutOfRange))
	}

	return nil
}

// Send transmits buf with MPI_Send semantics.
func (m *MPI) Send(ctx context.Context, dst, tag int, buf []float64) error {
	if err := m.check(ctx, opSend); err != nil {
		return err
	}
	if tag < 0 {
		return commErrorf(opSend, m.Rank(), ErrBadTag)
	}
	if err := m.inRange(opSend, dst); err != nil {
		return err
	}
	if buf == nil {
		return commErrorf(opSend, m.Rank(), ErrNilBuffer)
	}
	m.c.SendFloat64s(buf, dst, tag)

	return nil
}

// Recv receives a message from src and copies it into buf.
func (m *MPI) Recv(ctx context.Context, src, tag int, buf []float64) error {
	if err := m.check(ctx, opRecv); err != nil {
		return err
	}
	if tag < 0 {
		return commErrorf(opRecv, m.Rank(), ErrBadTag)
	}
	if err := m.inRange(opRecv, src); err != nil {
		return err
	}
	if buf == nil {
		return commErrorf(opRecv, m.Rank(), ErrNilBuffer)
	}
	msg, _ := m.c.RecvFloat64s(src, tag)
	if len(msg) != len(buf) {
		return commErrorf(opRecv, m.Rank(), ErrLengthMismatch)
	}
	copy(buf, msg)

	return nil
}

// Bcast maps to MPI_Bcast.
func (m *MPI) Bcast(ctx context.Context, buf []float64, root int) error {
	if err := m.check(ctx, opBcast); err != nil {
		return err
	}
	if err := m.inRange(opBcast, root); err != nil {
		return err
	}
	if len(buf) == 0 {
		return commErrorf(opBcast, m.Rank(), ErrNilBuffer)
	}
	m.c.BcastFloat64s(buf, root)

	return nil
}

// ReduceSum maps to MPI_Reduce with MPI_SUM. Non-root ranks get a scratch
// receive buffer because MPI still dereferences it.
func (m *MPI) ReduceSum(ctx context.Context, send, recv []float64, root int) error {
	if err := m.check(ctx, opReduceSum); err != nil {
		return err
	}
	if err := m.inRange(opReduceSum, root); err != nil {
		return err
	}
	if len(send) == 0 {
		return commErrorf(opReduceSum, m.Rank(), ErrNilBuffer)
	}
	if m.Rank() != root {
		recv = make([]float64, len(send))
	} else if len(recv) != len(send) {
		return commErrorf(opReduceSum, m.Rank(), ErrLengthMismatch)
	}
	m.c.ReduceFloat64s(recv, send, mpi.OpSum, root)

	return nil
}

// Sub creates the communicator of the listed ranks via gompi.NewCommunicator.
func (m *MPI) Sub(ranks []int) (Comm, error) {
	if m.freed {
		return nil, commErrorf(opSub, m.Rank(), ErrFreed)
	}
	if len(ranks) == 0 {
		return nil, commErrorf(opSub, m.Rank(), ErrInvalidGroup)
	}
	world := make([]int, len(ranks))
	member := false
	for i, r := range ranks {
		if err := m.inRange(opSub, r); err != nil {
			return nil, err
		}
		world[i] = m.members[r]
		member = member || r == m.Rank()
	}
	if !member {
		return nil, commErrorf(opSub, m.Rank(), ErrNotMember)
	}

	return &MPI{c: mpi.NewCommunicator(world), members: world}, nil
}

// Free marks the handle unusable. gompi keeps the underlying communicator
// alive until StopMPI.
func (m *MPI) Free() error {
	if m.freed {
		return commErrorf(opFree, m.Rank(), ErrFreed)
	}
	m.freed = true

	return nil
}
