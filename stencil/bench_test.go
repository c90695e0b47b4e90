package stencil_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/halo/stencil"
)

// BenchmarkStretch measures a 256×256 RGB image for 5 steps across worker counts.
func BenchmarkStretch(b *testing.B) {
	img := randomImage(b, 256, 256, 3, 1)
	for _, workers := range []int{1, 2, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(img.Len()))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _, _ = stencil.Stretch(context.Background(), img,
					stencil.WithSteps(5), stencil.WithWorkers(workers))
			}
		})
	}
}
