package deblur

import (
	"testing"

	"github.com/planetlabs/deblur/rimg"
)

// recordingSink counts dumps and remembers the iteration indices seen,
// to check AlternatingLoop's caller-supplied counter never repeats.
type recordingSink struct {
	seen []int
}

func (r *recordingSink) Dump(iteration int, v, u, k *rimg.Image[float32]) {
	r.seen = append(r.seen, iteration)
}

func TestLambdaScheduleHitsFloorAtIteration4(t *testing.T) {
	// Spec scenario 4: lambda=1e-2, lambda_ratio=0.5, lambda_min=1e-3,
	// iterations=10 -- final lambda equals the floor, hit at iteration 4.
	lambda := float32(1e-2)
	const ratio, min = float32(0.5), float32(1e-3)

	hitAt := -1
	for i := 1; i <= 10; i++ {
		lambda *= ratio
		if lambda < min {
			lambda = min
		}
		if hitAt == -1 && lambda == min {
			hitAt = i
		}
	}
	if hitAt != 4 {
		t.Fatalf("lambda floor reached at iteration %d, want 4", hitAt)
	}
	if lambda != min {
		t.Fatalf("final lambda = %v, want %v", lambda, min)
	}
}

func TestAlternatingLoopRunsRequestedIterations(t *testing.T) {
	v := seededImage(24, 24)
	opts := DefaultOptions()
	opts.KS = 5
	opts.Iterations = 2

	sink := &recordingSink{}
	k, u, err := AlternatingLoop(v, v, &opts, sink, 0)
	if err != nil {
		t.Fatalf("AlternatingLoop: %v", err)
	}
	if k.W != 5 || k.H != 5 {
		t.Fatalf("kernel size = %dx%d, want 5x5", k.W, k.H)
	}
	if !u.SameSize(v) {
		t.Fatalf("u size = %dx%dx%d, want %dx%dx%d", u.W, u.H, u.D, v.W, v.H, v.D)
	}
	if len(sink.seen) != opts.Iterations {
		t.Fatalf("DebugSink saw %d dumps, want %d", len(sink.seen), opts.Iterations)
	}
	for i, it := range sink.seen {
		if it != i+1 {
			t.Fatalf("dump iteration sequence = %v, want 1..%d", sink.seen, opts.Iterations)
		}
	}
}
