package testutil

import (
	"testing"
	"time"
)

func TestContextCarriesDeadline(t *testing.T) {
	ctx := Context(t, 2*time.Second)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("context has no deadline")
	}
	if remaining := time.Until(deadline); remaining > 2*time.Second {
		t.Fatalf("deadline %v exceeds requested timeout", remaining)
	}
}

func TestContextDefaultsTimeout(t *testing.T) {
	ctx := Context(t, 0)
	if _, ok := ctx.Deadline(); !ok {
		t.Fatalf("context has no deadline")
	}
}

// Context must accept any testing.TB, including benchmarks, which lack
// a Deadline method.
func TestContextAcceptsBenchmarkTB(t *testing.T) {
	result := testing.Benchmark(func(b *testing.B) {
		ctx := Context(b, time.Second)
		for i := 0; i < b.N; i++ {
			if ctx.Err() != nil {
				b.Fatalf("context expired: %v", ctx.Err())
			}
		}
	})
	if result.N == 0 {
		t.Fatalf("benchmark did not run")
	}
}
