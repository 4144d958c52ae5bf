// SPDX-License-Identifier: MIT

package grid

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Operation tags for error wrapping.
const (
	opNewTopology = "NewTopology"
	opCoords      = "Coords"
	opRank        = "Rank"
	opRowGroup    = "RowGroup"
	opColGroup    = "ColGroup"
	opNewCart     = "NewCart"
	opSub         = "Cart.Sub"
)

// Topology is the k×k grid geometry. It is immutable once built and holds no
// communication state, so every process derives an identical value from P.
type Topology struct {
	k int
}

// NewTopology builds the grid for p processes.
// Returns ErrEmptyGrid if p <= 0 and ErrNotPerfectSquare if p != k² for every integer k.
// Complexity: O(1).
func NewTopology(p int) (*Topology, error) {
	if p <= 0 {
		return nil, gridErrorf(opNewTopology, fmt.Errorf("p=%d: %w", p, ErrEmptyGrid))
	}
	k := isqrt(p)
	if k*k != p {
		return nil, gridErrorf(opNewTopology, fmt.Errorf("p=%d: %w", p, ErrNotPerfectSquare))
	}

	return &Topology{k: k}, nil
}

// isqrt returns floor(sqrt(p)) for p > 0, correcting float rounding.
func isqrt(p int) int {
	k := int(math.Sqrt(float64(p)))
	for k*k > p {
		k--
	}
	for (k+1)*(k+1) <= p {
		k++
	}

	return k
}

// Dims returns k, the number of rows (and columns).
func (t *Topology) Dims() int { return t.k }

// Size returns P = k².
func (t *Topology) Size() int { return t.k * t.k }

// InBounds reports whether c lies on the grid.
// Complexity: O(1).
func (t *Topology) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < t.k && c.Col >= 0 && c.Col < t.k
}

// Coords converts a row-major rank back to (row, col).
// Complexity: O(1).
func (t *Topology) Coords(rank int) (Coord, error) {
	if rank < 0 || rank >= t.Size() {
		return Coord{}, gridErrorf(opCoords, fmt.Errorf("rank %d: %w", rank, ErrOutOfRange))
	}

	return Coord{Row: rank / t.k, Col: rank % t.k}, nil
}

// Rank maps (row, col) to its row-major rank: row*k + col.
// Complexity: O(1).
func (t *Topology) Rank(c Coord) (int, error) {
	if !t.InBounds(c) {
		return 0, gridErrorf(opRank, fmt.Errorf("coord %s: %w", c, ErrOutOfRange))
	}

	return t.index(c), nil
}

func (t *Topology) index(c Coord) int {
	return c.Row*t.k + c.Col
}

// RowGroup returns the ranks of (row, 0..k-1) in column order; the caller's
// position in it is its column.
// Complexity: O(k).
func (t *Topology) RowGroup(rank int) ([]int, error) {
	c, err := t.Coords(rank)
	if err != nil {
		return nil, gridErrorf(opRowGroup, err)
	}

	return lo.Map(lo.Range(t.k), func(col, _ int) int {
		return t.index(Coord{Row: c.Row, Col: col})
	}), nil
}

// ColGroup returns the ranks of (0..k-1, col) in row order; the caller's
// position in it is its row.
// Complexity: O(k).
func (t *Topology) ColGroup(rank int) ([]int, error) {
	c, err := t.Coords(rank)
	if err != nil {
		return nil, gridErrorf(opColGroup, err)
	}

	return lo.Map(lo.Range(t.k), func(row, _ int) int {
		return t.index(Coord{Row: row, Col: c.Col})
	}), nil
}

// Diagonal reports whether c is a diagonal process (row == col).
func (t *Topology) Diagonal(c Coord) bool { return c.Row == c.Col }

// LastColumn reports whether c is in column k-1, where x and y fragments live.
func (t *Topology) LastColumn(c Coord) bool { return c.Col == t.k-1 }
