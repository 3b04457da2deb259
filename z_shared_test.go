//go:build !floatrand_noshared

package floatrand

import (
	"sync"
	"testing"

	"github.com/zintix-labs/floatrand/sdk/sampler"
)

func TestSharedSeedReplays(t *testing.T) {
	iv := sampler.LeftClosed(0.0, 1.0)
	Seed(123)
	first := make([]float64, 50)
	for i := range first {
		first[i] = Float64Range(iv)
	}
	Seed(123)
	for i := range first {
		if x := Float64Range(iv); x != first[i] {
			t.Fatalf("reseed should replay, diff at %d", i)
		}
	}
}

func TestSharedConcurrent(t *testing.T) {
	iv := sampler.Open[float32](-1, 1)
	var wg sync.WaitGroup
	errc := make(chan float32, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if x := Float32Range(iv); !iv.Contains(x) {
					errc <- x
					return
				}
				_ = Float32NormalApprox(0, 1)
				_ = Float64NormalApprox(0, 1)
				_ = Float64Range(sampler.Full[float64]())
			}
		}()
	}
	wg.Wait()
	close(errc)
	for x := range errc {
		t.Fatalf("shared sample %v outside (-1,1)", x)
	}
}
