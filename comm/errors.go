// SPDX-License-Identifier: MIT

package comm

import (
	"errors"
	"fmt"
)

// Sentinel errors for comm operations.
var (
	// ErrBadSize indicates a world or group with no processes was requested.
	ErrBadSize = errors.New("comm: group size must be > 0")

	// ErrRankOutOfRange indicates a peer, root or member rank outside [0, Size()).
	ErrRankOutOfRange = errors.New("comm: rank out of range")

	// ErrBadTag indicates a negative user tag (negative tags are reserved).
	ErrBadTag = errors.New("comm: tag must be >= 0")

	// ErrNilBuffer indicates a nil buffer where data must be sent or received.
	ErrNilBuffer = errors.New("comm: nil buffer")

	// ErrLengthMismatch indicates a message or buffer whose length differs from the peer's.
	ErrLengthMismatch = errors.New("comm: buffer length mismatch")

	// ErrInvalidGroup indicates an empty or duplicated member list in Sub.
	ErrInvalidGroup = errors.New("comm: invalid group member list")

	// ErrNotMember indicates Sub was called by a rank that is not in the member list.
	ErrNotMember = errors.New("comm: caller is not a member of the group")

	// ErrFreed indicates use of a handle after Free.
	ErrFreed = errors.New("comm: handle already freed")
)

// Operation tags for error wrapping.
const (
	opSend      = "Send"
	opRecv      = "Recv"
	opBcast     = "Bcast"
	opReduceSum = "ReduceSum"
	opSub       = "Sub"
	opFree      = "Free"
	opWorld     = "NewLocalWorld"
	opRun       = "Run"
)

// commErrorf wraps err with the operation tag and the caller's group rank.
func commErrorf(op string, rank int, err error) error {
	return fmt.Errorf("comm.%s[rank %d]: %w", op, rank, err)
}
