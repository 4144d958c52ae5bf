// SPDX-License-Identifier: MIT

package comm

import "context"

// Comm is a handle on one process group as seen by one of its members.
//
// Ranks are group-local: 0 <= Rank() < Size(). A handle is owned by a single
// goroutine (its rank) and must not be shared across ranks.
type Comm interface {
	// Rank returns the caller's rank inside the group.
	Rank() int

	// Size returns the number of processes in the group.
	Size() int

	// Send delivers a copy of buf to dst with the given tag (tag >= 0).
	Send(ctx context.Context, dst, tag int, buf []float64) error

	// Recv receives the next message from src with the given tag into buf.
	// The message length must equal len(buf).
	Recv(ctx context.Context, src, tag int, buf []float64) error

	// Bcast replicates root's buf into buf on every other member.
	Bcast(ctx context.Context, buf []float64, root int) error

	// ReduceSum adds send element-wise across all members and writes the sum
	// into recv on root. recv is ignored (and may be nil) on other members.
	ReduceSum(ctx context.Context, send, recv []float64, root int) error

	// Sub creates the sub-group made of the listed parent ranks, in that
	// order. Every listed rank must call Sub with the same list; the caller
	// must be one of them.
	Sub(ranks []int) (Comm, error)

	// Free releases the handle. Further calls return ErrFreed.
	Free() error
}

// Reserved tags for collective traffic; user tags must be >= 0.
const (
	tagBcast  = -1
	tagReduce = -2
)
