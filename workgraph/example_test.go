package workgraph_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/halo/workgraph"
)

// ExampleTraverse walks a small binary tree rooted at 1.
func ExampleTraverse() {
	g := workgraph.Func{StartVertex: 1, Do: func(v int) []int {
		if v < 4 {
			return []int{2 * v, 2*v + 1}
		}
		return nil
	}}
	res, _ := workgraph.Traverse(context.Background(), g, workgraph.WithWorkers(2))
	fmt.Println(res.Order, res.Levels)
	// Output: [1 2 3 4 5 6 7] 3
}
