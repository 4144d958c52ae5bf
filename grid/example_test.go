package grid_test

import (
	"fmt"

	"github.com/katalvlaran/gridmv/grid"
)

// ExampleRolesOf prints the role table of a 2×2 grid in rank order.
func ExampleRolesOf() {
	topo, _ := grid.NewTopology(4)
	for rank := 0; rank < topo.Size(); rank++ {
		c, _ := topo.Coords(rank)
		fmt.Println(rank, c, grid.RolesOf(c, topo.Dims()))
	}
	// Output:
	// 0 (0,0) redistribute=receiver broadcast=root reduce=member
	// 1 (0,1) redistribute=sender broadcast=member reduce=root
	// 2 (1,0) redistribute=none broadcast=member reduce=member
	// 3 (1,1) redistribute=none broadcast=root reduce=root
}

// ExampleTopology_RowGroup shows the groups of rank 5 on a 3×3 grid.
func ExampleTopology_RowGroup() {
	topo, _ := grid.NewTopology(9)
	row, _ := topo.RowGroup(5)
	col, _ := topo.ColGroup(5)
	fmt.Println("row:", row)
	fmt.Println("col:", col)
	// Output:
	// row: [3 4 5]
	// col: [2 5 8]
}
