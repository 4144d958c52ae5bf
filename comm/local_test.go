// Package comm_test verifies the in-memory substrate: point-to-point copy
// semantics, collectives, group isolation and failure behavior.
package comm_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/gridmv/comm"
	"github.com/stretchr/testify/require"
)

// testTimeout bounds every collective test so a protocol bug fails instead of hanging.
const testTimeout = 5 * time.Second

func withTimeout(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)

	return ctx
}

// TestNewLocalWorld_Errors rejects empty worlds and out-of-range handles.
func TestNewLocalWorld_Errors(t *testing.T) {
	_, err := comm.NewLocalWorld(0)
	require.ErrorIs(t, err, comm.ErrBadSize)

	w, err := comm.NewLocalWorld(2)
	require.NoError(t, err)
	require.Equal(t, 2, w.Size())
	_, err = w.Comm(2)
	require.ErrorIs(t, err, comm.ErrRankOutOfRange)
}

// TestWithMailboxDepth_Panics guards the option constructor.
func TestWithMailboxDepth_Panics(t *testing.T) {
	require.PanicsWithValue(t, "comm: WithMailboxDepth: depth must be >= 0", func() {
		comm.WithMailboxDepth(-1)
	})
}

// TestSendRecv_Copies checks that the receiver gets a copy that later sender
// mutations do not reach.
func TestSendRecv_Copies(t *testing.T) {
	ctx := withTimeout(t)
	w, err := comm.NewLocalWorld(2)
	require.NoError(t, err)
	c0, _ := w.Comm(0)
	c1, _ := w.Comm(1)

	src := []float64{1, 2, 3}
	require.NoError(t, c0.Send(ctx, 1, 7, src)) // depth 1: eager, does not block
	src[0] = 99

	got := make([]float64, 3)
	require.NoError(t, c1.Recv(ctx, 0, 7, got))
	require.Equal(t, []float64{1, 2, 3}, got)
}

// TestSendRecv_Validation covers tags, ranks, nil buffers and length mismatch.
func TestSendRecv_Validation(t *testing.T) {
	ctx := withTimeout(t)
	w, _ := comm.NewLocalWorld(2)
	c0, _ := w.Comm(0)
	c1, _ := w.Comm(1)

	require.ErrorIs(t, c0.Send(ctx, 1, -1, []float64{1}), comm.ErrBadTag)
	require.ErrorIs(t, c0.Recv(ctx, 1, -3, []float64{1}), comm.ErrBadTag)
	require.ErrorIs(t, c0.Send(ctx, 2, 0, []float64{1}), comm.ErrRankOutOfRange)
	require.ErrorIs(t, c0.Recv(ctx, -1, 0, []float64{1}), comm.ErrRankOutOfRange)
	require.ErrorIs(t, c0.Send(ctx, 1, 0, nil), comm.ErrNilBuffer)

	require.NoError(t, c0.Send(ctx, 1, 0, []float64{1, 2}))
	require.ErrorIs(t, c1.Recv(ctx, 0, 0, make([]float64, 3)), comm.ErrLengthMismatch)
}

// TestSendRecv_TagsDoNotMix sends on two tags and receives them in reverse order.
func TestSendRecv_TagsDoNotMix(t *testing.T) {
	ctx := withTimeout(t)
	w, _ := comm.NewLocalWorld(2)
	c0, _ := w.Comm(0)
	c1, _ := w.Comm(1)

	require.NoError(t, c0.Send(ctx, 1, 1, []float64{1}))
	require.NoError(t, c0.Send(ctx, 1, 2, []float64{2}))

	got := make([]float64, 1)
	require.NoError(t, c1.Recv(ctx, 0, 2, got))
	require.Equal(t, 2.0, got[0])
	require.NoError(t, c1.Recv(ctx, 0, 1, got))
	require.Equal(t, 1.0, got[0])
}

// TestBcast replicates the root's buffer for several sizes and every root.
func TestBcast(t *testing.T) {
	for _, p := range []int{1, 2, 3, 5} {
		for root := 0; root < p; root++ {
			p, root := p, root
			t.Run(fmt.Sprintf("p=%d/root=%d", p, root), func(t *testing.T) {
				ctx := withTimeout(t)
				var mu sync.Mutex
				got := make([][]float64, p)
				err := comm.Run(ctx, p, func(ctx context.Context, c comm.Comm) error {
					buf := []float64{-1, -1}
					if c.Rank() == root {
						buf = []float64{float64(root), 42}
					}
					if err := c.Bcast(ctx, buf, root); err != nil {
						return err
					}
					mu.Lock()
					got[c.Rank()] = buf
					mu.Unlock()

					return nil
				})
				require.NoError(t, err)
				for r := 0; r < p; r++ {
					require.Equal(t, []float64{float64(root), 42}, got[r], "p=%d root=%d rank=%d", p, root, r)
				}
			})
		}
	}
}

// TestReduceSum sums rank-dependent vectors at every possible root and
// leaves non-root receive buffers untouched.
func TestReduceSum(t *testing.T) {
	const p = 4
	for root := 0; root < p; root++ {
		root := root
		ctx := withTimeout(t)
		var mu sync.Mutex
		results := make([][]float64, p)
		err := comm.Run(ctx, p, func(ctx context.Context, c comm.Comm) error {
			r := float64(c.Rank())
			send := []float64{r, 10 * r, 1}
			recv := []float64{-7, -7, -7}
			if err := c.ReduceSum(ctx, send, recv, root); err != nil {
				return err
			}
			mu.Lock()
			results[c.Rank()] = recv
			mu.Unlock()

			return nil
		})
		require.NoError(t, err)
		for r := 0; r < p; r++ {
			if r == root {
				require.Equal(t, []float64{6, 60, 4}, results[r])
			} else {
				require.Equal(t, []float64{-7, -7, -7}, results[r])
			}
		}
	}
}

// TestReduceSum_SingleContribution: all contributions zero except one yields
// that contribution exactly.
func TestReduceSum_SingleContribution(t *testing.T) {
	ctx := withTimeout(t)
	want := []float64{0.1, -3.3e-12, 7e300}
	var got []float64
	err := comm.Run(ctx, 3, func(ctx context.Context, c comm.Comm) error {
		send := make([]float64, 3)
		if c.Rank() == 1 {
			copy(send, want)
		}
		var recv []float64
		if c.Rank() == 2 {
			recv = make([]float64, 3)
		}
		if err := c.ReduceSum(ctx, send, recv, 2); err != nil {
			return err
		}
		if c.Rank() == 2 {
			got = recv
		}

		return nil
	})
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reduce mismatch (-want +got):\n%s", diff)
	}
}

// TestReduceSum_RootValidation covers root range and buffer checks.
func TestReduceSum_RootValidation(t *testing.T) {
	ctx := withTimeout(t)
	w, _ := comm.NewLocalWorld(1)
	c, _ := w.Comm(0)

	require.ErrorIs(t, c.ReduceSum(ctx, []float64{1}, []float64{0}, 1), comm.ErrRankOutOfRange)
	require.ErrorIs(t, c.ReduceSum(ctx, []float64{1}, nil, 0), comm.ErrNilBuffer)
	require.ErrorIs(t, c.ReduceSum(ctx, []float64{1}, []float64{0, 0}, 0), comm.ErrLengthMismatch)
	require.ErrorIs(t, c.Bcast(ctx, []float64{1}, -1), comm.ErrRankOutOfRange)

	recv := []float64{0}
	require.NoError(t, c.ReduceSum(ctx, []float64{5}, recv, 0))
	require.Equal(t, []float64{5}, recv)
}

// TestSub_Isolation runs a broadcast in two disjoint sub-groups and a world
// broadcast in between; no message may cross contexts.
func TestSub_Isolation(t *testing.T) {
	ctx := withTimeout(t)
	var mu sync.Mutex
	got := make(map[int][]float64)
	err := comm.Run(ctx, 4, func(ctx context.Context, c comm.Comm) error {
		members := []int{0, 1}
		if c.Rank() >= 2 {
			members = []int{3, 2} // order defines sub-ranks: world 3 is sub-rank 0
		}
		sub, err := c.Sub(members)
		if err != nil {
			return err
		}
		defer func() { _ = sub.Free() }()

		world := []float64{0}
		if c.Rank() == 0 {
			world[0] = 1000
		}
		if err := c.Bcast(ctx, world, 0); err != nil {
			return err
		}

		buf := []float64{0}
		if sub.Rank() == 0 {
			buf[0] = float64(100 + c.Rank())
		}
		if err := sub.Bcast(ctx, buf, 0); err != nil {
			return err
		}
		mu.Lock()
		got[c.Rank()] = []float64{world[0], buf[0], float64(sub.Rank())}
		mu.Unlock()

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []float64{1000, 100, 0}, got[0])
	require.Equal(t, []float64{1000, 100, 1}, got[1])
	require.Equal(t, []float64{1000, 103, 1}, got[2])
	require.Equal(t, []float64{1000, 103, 0}, got[3])
}

// TestSub_RepeatedGroupsGetFreshContexts creates the same group twice; a
// message left in the first context must not be seen by the second.
func TestSub_RepeatedGroupsGetFreshContexts(t *testing.T) {
	ctx := withTimeout(t)
	w, _ := comm.NewLocalWorld(2)
	c0, _ := w.Comm(0)
	c1, _ := w.Comm(1)

	a0, err := c0.Sub([]int{0, 1})
	require.NoError(t, err)
	a1, err := c1.Sub([]int{0, 1})
	require.NoError(t, err)
	require.NoError(t, a0.Send(ctx, 1, 0, []float64{1}))

	b0, err := c0.Sub([]int{0, 1})
	require.NoError(t, err)
	b1, err := c1.Sub([]int{0, 1})
	require.NoError(t, err)
	require.NoError(t, b0.Send(ctx, 1, 0, []float64{2}))

	got := make([]float64, 1)
	require.NoError(t, b1.Recv(ctx, 0, 0, got))
	require.Equal(t, 2.0, got[0])
	require.NoError(t, a1.Recv(ctx, 0, 0, got))
	require.Equal(t, 1.0, got[0])
}

// TestSub_Errors covers membership and list validation.
func TestSub_Errors(t *testing.T) {
	w, _ := comm.NewLocalWorld(3)
	c, _ := w.Comm(0)

	_, err := c.Sub(nil)
	require.ErrorIs(t, err, comm.ErrInvalidGroup)
	_, err = c.Sub([]int{0, 0})
	require.ErrorIs(t, err, comm.ErrInvalidGroup)
	_, err = c.Sub([]int{1, 2})
	require.ErrorIs(t, err, comm.ErrNotMember)
	_, err = c.Sub([]int{0, 3})
	require.ErrorIs(t, err, comm.ErrRankOutOfRange)
}

// TestFree makes every later call fail with ErrFreed.
func TestFree(t *testing.T) {
	ctx := withTimeout(t)
	w, _ := comm.NewLocalWorld(2)
	c, _ := w.Comm(0)
	sub, err := c.Sub([]int{0})
	require.NoError(t, err)
	require.Equal(t, 1, sub.Size())

	require.NoError(t, sub.Free())
	require.ErrorIs(t, sub.Free(), comm.ErrFreed)
	require.ErrorIs(t, sub.Bcast(ctx, []float64{1}, 0), comm.ErrFreed)
	require.ErrorIs(t, sub.Send(ctx, 0, 0, []float64{1}), comm.ErrFreed)
	require.ErrorIs(t, sub.ReduceSum(ctx, []float64{1}, []float64{0}, 0), comm.ErrFreed)
	_, err = sub.Sub([]int{0})
	require.ErrorIs(t, err, comm.ErrFreed)
}

// TestMissingCollective shows that a member skipping a collective stalls its
// peers; with a deadline the stall surfaces as DeadlineExceeded.
func TestMissingCollective(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := comm.Run(ctx, 2, func(ctx context.Context, c comm.Comm) error {
		if c.Rank() == 1 {
			return nil // never joins the broadcast
		}

		return c.Bcast(ctx, []float64{1}, 1)
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestRun_FirstErrorCancelsPeers checks errgroup propagation.
func TestRun_FirstErrorCancelsPeers(t *testing.T) {
	boom := errors.New("boom")
	err := comm.Run(withTimeout(t), 3, func(ctx context.Context, c comm.Comm) error {
		if c.Rank() == 2 {
			return boom
		}
		buf := make([]float64, 1)

		return c.Recv(ctx, 2, 0, buf) // would block forever without cancellation
	})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "rank 2")

	require.ErrorIs(t, comm.Run(context.Background(), 0, nil), comm.ErrBadSize)
}
