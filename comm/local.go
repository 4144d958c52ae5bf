// SPDX-License-Identifier: MIT

package comm

import (
	"context"
	"fmt"
	"sync"

	"github.com/pion/logging"
)

// worldContext is the communication context of the world group.
const worldContext = "world"

// route identifies one ordered, tagged channel between two world ranks inside
// one communication context.
type route struct {
	ctx      string
	src, dst int // world ranks
	tag      int
}

// LocalWorld is an in-memory process world of fixed size. Each rank is driven
// by its own goroutine through the handle returned by Comm(rank).
//
// Mailboxes are created lazily under mu, so handles of different ranks may be
// used concurrently.
type LocalWorld struct {
	size  int
	depth int
	log   logging.LeveledLogger

	mu    sync.Mutex
	boxes map[route]chan []float64
}

// NewLocalWorld creates a world of p ranks. Returns ErrBadSize when p <= 0.
func NewLocalWorld(p int, opts ...Option) (*LocalWorld, error) {
	if p <= 0 {
		return nil, fmt.Errorf("comm.%s(%d): %w", opWorld, p, ErrBadSize)
	}
	o := gatherOptions(opts...)

	return &LocalWorld{
		size:  p,
		depth: o.mailboxDepth,
		log:   o.loggerFactory.NewLogger(LoggerScope),
		boxes: make(map[route]chan []float64),
	}, nil
}

// Size returns the number of ranks in the world.
func (w *LocalWorld) Size() int { return w.size }

// Comm returns the world handle of the given rank. Each call returns a fresh
// handle; a rank should obtain its handle once and keep it.
func (w *LocalWorld) Comm(rank int) (Comm, error) {
	if rank < 0 || rank >= w.size {
		return nil, fmt.Errorf("comm.World(%d): %w", rank, ErrRankOutOfRange)
	}
	members := make([]int, w.size)
	for i := range members {
		members[i] = i
	}

	return &localComm{
		world:   w,
		id:      worldContext,
		rank:    rank,
		members: members,
		subSeq:  make(map[string]int),
	}, nil
}

// mailbox returns the channel of r, creating it on first use.
func (w *LocalWorld) mailbox(r route) chan []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	ch, ok := w.boxes[r]
	if !ok {
		ch = make(chan []float64, w.depth)
		w.boxes[r] = ch
	}

	return ch
}

// release drops every mailbox of context id addressed to world rank dst.
func (w *LocalWorld) release(id string, dst int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for r := range w.boxes {
		if r.ctx == id && r.dst == dst {
			delete(w.boxes, r)
		}
	}
}

// localComm is one rank's handle on a group of a LocalWorld.
type localComm struct {
	world   *LocalWorld
	id      string         // communication context shared by all members
	rank    int            // caller's rank in the group
	members []int          // world rank of every group rank
	subSeq  map[string]int // Sub calls per member list, for context naming
	freed   bool
}

var _ Comm = (*localComm)(nil)

func (c *localComm) Rank() int { return c.rank }

func (c *localComm) Size() int { return len(c.members) }

// Send validates the user tag and delivers a copy of buf.
func (c *localComm) Send(ctx context.Context, dst, tag int, buf []float64) error {
	if tag < 0 {
		return commErrorf(opSend, c.rank, ErrBadTag)
	}
	if err := c.send(ctx, dst, tag, buf); err != nil {
		return commErrorf(opSend, c.rank, err)
	}

	return nil
}

// Recv validates the user tag and receives into buf.
func (c *localComm) Recv(ctx context.Context, src, tag int, buf []float64) error {
	if tag < 0 {
		return commErrorf(opRecv, c.rank, ErrBadTag)
	}
	if err := c.recv(ctx, src, tag, buf); err != nil {
		return commErrorf(opRecv, c.rank, err)
	}

	return nil
}

// send is the unchecked-tag transfer shared by Send and the collectives.
func (c *localComm) send(ctx context.Context, dst, tag int, buf []float64) error {
	if c.freed {
		return ErrFreed
	}
	if dst < 0 || dst >= len(c.members) {
		return fmt.Errorf("dst %d: %w", dst, ErrRankOutOfRange)
	}
	if buf == nil {
		return ErrNilBuffer
	}
	msg := make([]float64, len(buf))
	copy(msg, buf)

	ch := c.world.mailbox(route{ctx: c.id, src: c.members[c.rank], dst: c.members[dst], tag: tag})
	c.world.log.Tracef("%s: %d -> %d tag=%d len=%d", c.id, c.rank, dst, tag, len(msg))
	select {
	case ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// recv is the unchecked-tag receive shared by Recv and the collectives.
func (c *localComm) recv(ctx context.Context, src, tag int, buf []float64) error {
	if c.freed {
		return ErrFreed
	}
	if src < 0 || src >= len(c.members) {
		return fmt.Errorf("src %d: %w", src, ErrRankOutOfRange)
	}
	if buf == nil {
		return ErrNilBuffer
	}

	ch := c.world.mailbox(route{ctx: c.id, src: c.members[src], dst: c.members[c.rank], tag: tag})
	var msg []float64
	select {
	case msg = <-ch:
	case <-ctx.Done():
		return ctx.Err()
	}
	if len(msg) != len(buf) {
		return fmt.Errorf("from %d: got %d, want %d: %w", src, len(msg), len(buf), ErrLengthMismatch)
	}
	copy(buf, msg)
	c.world.log.Tracef("%s: %d <- %d tag=%d len=%d", c.id, c.rank, src, tag, len(msg))

	return nil
}

// Bcast is linear: root sends to every other member in group-rank order.
func (c *localComm) Bcast(ctx context.Context, buf []float64, root int) error {
	if c.freed {
		return commErrorf(opBcast, c.rank, ErrFreed)
	}
	if root < 0 || root >= len(c.members) {
		return commErrorf(opBcast, c.rank, fmt.Errorf("root %d: %w", root, ErrRankOutOfRange))
	}
	if c.rank != root {
		if err := c.recv(ctx, root, tagBcast, buf); err != nil {
			return commErrorf(opBcast, c.rank, err)
		}

		return nil
	}
	var r int
	for r = 0; r < len(c.members); r++ {
		if r == root {
			continue
		}
		if err := c.send(ctx, r, tagBcast, buf); err != nil {
			return commErrorf(opBcast, c.rank, err)
		}
	}

	return nil
}

// ReduceSum gathers every contribution at root and adds them in group-rank
// order into a zeroed accumulator, then copies the sum into recv.
func (c *localComm) ReduceSum(ctx context.Context, send, recv []float64, root int) error {
	if c.freed {
		return commErrorf(opReduceSum, c.rank, ErrFreed)
	}
	if root < 0 || root >= len(c.members) {
		return commErrorf(opReduceSum, c.rank, fmt.Errorf("root %d: %w", root, ErrRankOutOfRange))
	}
	if send == nil {
		return commErrorf(opReduceSum, c.rank, ErrNilBuffer)
	}
	if c.rank != root {
		if err := c.send(ctx, root, tagReduce, send); err != nil {
			return commErrorf(opReduceSum, c.rank, err)
		}

		return nil
	}
	if recv == nil {
		return commErrorf(opReduceSum, c.rank, ErrNilBuffer)
	}
	if len(recv) != len(send) {
		return commErrorf(opReduceSum, c.rank, ErrLengthMismatch)
	}

	acc := make([]float64, len(send))
	part := make([]float64, len(send))
	var r, i int
	for r = 0; r < len(c.members); r++ {
		contrib := send
		if r != root {
			if err := c.recv(ctx, r, tagReduce, part); err != nil {
				return commErrorf(opReduceSum, c.rank, err)
			}
			contrib = part
		}
		for i = range acc {
			acc[i] += contrib[i]
		}
	}
	copy(recv, acc) // acc decouples recv from send even if they alias

	return nil
}

// Sub derives a group with a fresh communication context. The context name is
// built from the parent context, the member list and how many times this list
// was used before, so every member computes the same name independently.
func (c *localComm) Sub(ranks []int) (Comm, error) {
	if c.freed {
		return nil, commErrorf(opSub, c.rank, ErrFreed)
	}
	if len(ranks) == 0 {
		return nil, commErrorf(opSub, c.rank, ErrInvalidGroup)
	}
	seen := make(map[int]struct{}, len(ranks))
	members := make([]int, len(ranks))
	self := -1
	for i, r := range ranks {
		if r < 0 || r >= len(c.members) {
			return nil, commErrorf(opSub, c.rank, fmt.Errorf("member %d: %w", r, ErrRankOutOfRange))
		}
		if _, dup := seen[r]; dup {
			return nil, commErrorf(opSub, c.rank, fmt.Errorf("member %d repeated: %w", r, ErrInvalidGroup))
		}
		seen[r] = struct{}{}
		members[i] = c.members[r]
		if r == c.rank {
			self = i
		}
	}
	if self < 0 {
		return nil, commErrorf(opSub, c.rank, ErrNotMember)
	}

	key := fmt.Sprint(ranks)
	seq := c.subSeq[key]
	c.subSeq[key] = seq + 1
	id := fmt.Sprintf("%s/%s#%d", c.id, key, seq)
	c.world.log.Debugf("%s: rank %d joins %s as %d/%d", c.id, c.rank, id, self, len(members))

	return &localComm{
		world:   c.world,
		id:      id,
		rank:    self,
		members: members,
		subSeq:  make(map[string]int),
	}, nil
}

// Free marks the handle unusable and drops the mailboxes addressed to it.
func (c *localComm) Free() error {
	if c.freed {
		return commErrorf(opFree, c.rank, ErrFreed)
	}
	c.freed = true
	c.world.release(c.id, c.members[c.rank])

	return nil
}
