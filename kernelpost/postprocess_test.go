package kernelpost

import (
	"math"
	"testing"

	"github.com/planetlabs/deblur/rimg"
)

func TestThresholdPrunesSecondCluster(t *testing.T) {
	// A 5x5 kernel: a dominant cluster around the center with mass
	// 0.95, plus an isolated corner pixel at value 0.05 * max, exactly
	// at the threshold boundary described in spec scenario 3.
	k := rimg.New[float32](5, 5, 1)
	k.Set(2, 2, 0, 1.0) // max
	k.Set(0, 0, 0, 0.05)

	Threshold(k, 0.05)
	// Values strictly below the threshold are zeroed; values at or
	// above survive threshold (0.05 is not < 0.05*max=0.05).
	if k.At(0, 0, 0) == 0 {
		t.Fatalf("value exactly at threshold should survive Threshold alone")
	}

	RemoveIsolatedComponents(k)
	if k.At(0, 0, 0) != 0 {
		t.Fatalf("isolated low-mass cluster should be pruned by RemoveIsolatedComponents")
	}
	if k.At(2, 2, 0) == 0 {
		t.Fatalf("dominant cluster should survive")
	}
}

func TestRemoveIsolatedLeavesAtMostOneComponent(t *testing.T) {
	k := rimg.New[float32](7, 7, 1)
	k.Set(3, 3, 0, 10)
	k.Set(0, 0, 0, 0.01)
	k.Set(6, 6, 0, 0.01)

	RemoveIsolatedComponents(k)
	if got := CountComponents(k); got > 1 {
		t.Fatalf("CountComponents() = %d, want <= 1", got)
	}
}

func TestCenterMovesCentroidToMiddle(t *testing.T) {
	k := rimg.New[float32](5, 5, 1)
	k.Set(4, 4, 0, 1) // all mass in the corner, off-center

	Center(k)

	var sx, sy, sum float64
	for y := 0; y < k.H; y++ {
		for x := 0; x < k.W; x++ {
			v := float64(k.At(x, y, 0))
			sx += v * float64(x)
			sy += v * float64(y)
			sum += v
		}
	}
	if sum == 0 {
		t.Fatalf("kernel lost all mass during centering")
	}
	cx, cy := sx/sum, sy/sum
	wantX, wantY := float64(k.W-1)/2, float64(k.H-1)/2
	if math.Abs(cx-wantX) > 0.5 || math.Abs(cy-wantY) > 0.5 {
		t.Fatalf("centroid (%v,%v) not within 0.5px of center (%v,%v)", cx, cy, wantX, wantY)
	}
}

func TestNormalizeDegenerateKernelUnchanged(t *testing.T) {
	k := rimg.New[float32](3, 3, 1)
	Normalize(k)
	for _, v := range k.Pix {
		if v != 0 {
			t.Fatalf("degenerate kernel should remain all zero, not renormalized")
		}
	}
}

func TestNormalizeSumsToOne(t *testing.T) {
	k := rimg.New[float32](3, 3, 1)
	k.Set(0, 0, 0, 2)
	k.Set(1, 1, 0, 3)
	Normalize(k)
	var sum float32
	for _, v := range k.Pix {
		sum += v
	}
	if math.Abs(float64(sum-1)) > 1e-6 {
		t.Fatalf("Sum after Normalize = %v, want 1", sum)
	}
}

func TestProcessAllNonNegative(t *testing.T) {
	k := rimg.New[float32](5, 5, 1)
	k.Set(2, 2, 0, 1)
	k.Set(0, 0, 0, -0.3)
	k.Set(4, 4, 0, 0.02)

	Process(k, Options{ThresholdMax: 0.05, RemoveIsolated: true})
	for _, v := range k.Pix {
		if v < 0 {
			t.Fatalf("Process left a negative entry: %v", v)
		}
	}
}
