package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/gridmv/matrix"
)

// ExampleMatVecInto computes the partial dot products of one 2×2 block.
func ExampleMatVecInto() {
	blk, _ := matrix.NewDenseFrom(2, 2, []float64{
		1, 2,
		5, 6,
	})
	py := make([]float64, 2)
	_ = matrix.MatVecInto(py, blk, []float64{1, 1})
	fmt.Println(py)

	// Output:
	// [3 11]
}

// ExampleDense_Block cuts the top-right block out of a 4×4 matrix.
func ExampleDense_Block() {
	data := make([]float64, 16)
	for i := range data {
		data[i] = float64(i + 1)
	}
	a, _ := matrix.NewDenseFrom(4, 4, data)
	b, _ := a.Block(0, 1, 2)
	fmt.Print(b)

	// Output:
	// [3, 4]
	// [7, 8]
}
