package matmul_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/halo/matmul"
)

func BenchmarkMultiply(b *testing.B) {
	a, m, err := matmul.Fill(256)
	if err != nil {
		b.Fatal(err)
	}
	for _, threads := range []int{1, 4} {
		b.Run(fmt.Sprintf("threads=%d", threads), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := matmul.Multiply(a, m, threads); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
