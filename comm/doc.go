// SPDX-License-Identifier: MIT

// Package comm provides process-group handles with blocking point-to-point and
// collective operations, the message-passing substrate of the distributed
// matrix-vector product.
//
// What:
//
//   - Comm: a group handle exposing Rank, Size, Send, Recv, Bcast(root),
//     ReduceSum(root), Sub and Free.
//   - LocalWorld: an in-memory substrate where every rank is a goroutine and
//     every (context, src, dst, tag) route is a buffered channel.
//   - Run: spawns p ranks on a fresh LocalWorld and waits for all of them.
//   - MPI (build tag "mpi"): the same interface over a real MPI installation.
//
// Semantics:
//
//   - Every operation blocks until its local part is complete.
//   - Data is shared by copy: Send copies out, Recv copies in; ranks never
//     alias each other's buffers.
//   - Collectives must be invoked by every member of the group, in the same
//     order. A missing call stalls the group; pass a context with a deadline
//     to observe that as context.DeadlineExceeded instead of a hang.
//   - ReduceSum adds contributions at the root in group-rank order starting
//     from 0.0, so the result is reproducible.
//   - Sub creates a group with its own communication context: traffic of
//     different groups never mixes, even between the same pair of ranks.
//
// Errors:
//
//   - ErrBadSize, ErrRankOutOfRange, ErrBadTag, ErrNilBuffer,
//     ErrLengthMismatch, ErrInvalidGroup, ErrNotMember, ErrFreed.
package comm
